package backup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain/expense"
	"github.com/PnBafon/viten-backend/internal/domain/inventory"
)

type noopTxManager struct{}

func (noopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	snapshot *Snapshot
	restored *Snapshot
}

func (f *fakeRepo) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	cp := *f.snapshot
	return &cp, nil
}

func (f *fakeRepo) ReplaceAll(ctx context.Context, snap *Snapshot) error {
	f.restored = snap
	return nil
}

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		Purchases: []*inventory.PurchaseLot{
			{ID: 1, Date: "2026-08-01", Name: "sugar 1kg", Pcs: 20, AvailableStock: 17, UnitPrice: types.MustMoney("12.50")},
		},
		Expenses: []*expense.Expense{
			{ID: 1, Date: "2026-08-03", Description: "transport", Amount: types.MustMoney("30")},
		},
	}
}

func TestExportRestoreRoundTrip(t *testing.T) {
	repo := &fakeRepo{snapshot: sampleSnapshot()}
	svc := NewService(repo, noopTxManager{})

	data, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, zstdMagic, data[:4], "export is zstd compressed")

	require.NoError(t, svc.Restore(context.Background(), data))
	require.NotNil(t, repo.restored)
	require.Len(t, repo.restored.Purchases, 1)
	assert.Equal(t, "sugar 1kg", repo.restored.Purchases[0].Name)
	assert.Equal(t, int64(17), repo.restored.Purchases[0].AvailableStock)
	require.Len(t, repo.restored.Expenses, 1)
	assert.True(t, repo.restored.Expenses[0].Amount.Equal(types.MustMoney("30")))
}

func TestRestoreAcceptsPlainJSON(t *testing.T) {
	repo := &fakeRepo{snapshot: sampleSnapshot()}
	svc := NewService(repo, noopTxManager{})

	err := svc.Restore(context.Background(), []byte(`{"version":1,"createdAt":"2026-08-20T00:00:00Z"}`))
	require.NoError(t, err)
	assert.NotNil(t, repo.restored)
}

func TestRestoreRejectsBadInput(t *testing.T) {
	svc := NewService(&fakeRepo{snapshot: sampleSnapshot()}, noopTxManager{})

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not json", []byte("garbage")},
		{"wrong version", []byte(`{"version":99}`)},
		{"truncated zstd", append(append([]byte{}, zstdMagic...), 0x00)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, svc.Restore(context.Background(), tt.data))
		})
	}
}
