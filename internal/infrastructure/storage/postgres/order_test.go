package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderBy(t *testing.T) {
	cols := []string{"id", "date", "name"}

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{"empty falls back", "", "id DESC", false},
		{"bare column", "date", "date ASC", false},
		{"minus prefix", "-date", "date DESC", false},
		{"explicit desc", "name DESC", "name DESC", false},
		{"explicit asc", "name ASC", "name ASC", false},
		{"lowercase desc", "name desc", "name DESC", false},
		{"unknown column", "password", "", true},
		{"injection attempt", "id; DROP TABLE purchases", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOrderBy(tt.orderBy, "id DESC", cols)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
