package receipt

import (
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		id     int64
		want   string
	}{
		{"repayment padded", PrefixRepayment, 1, "REPAY-000001"},
		{"repayment mid", PrefixRepayment, 400, "REPAY-000400"},
		{"sale", PrefixSale, 42, "SALE-000042"},
		{"debt", PrefixDebt, 7, "DEBT-000007"},
		{"wide id keeps all digits", PrefixSale, 1234567, "SALE-1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.prefix, tt.id); got != tt.want {
				t.Errorf("Format(%q, %d) = %q, want %q", tt.prefix, tt.id, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	prefix, id, err := Parse("REPAY-000400")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefix != PrefixRepayment || id != 400 {
		t.Errorf("Parse = (%q, %d), want (REPAY, 400)", prefix, id)
	}

	for _, malformed := range []string{"", "REPAY", "REPAY-", "-42", "REPAY-xyz"} {
		if _, _, err := Parse(malformed); err == nil {
			t.Errorf("Parse(%q) expected error", malformed)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, id := range []int64{1, 99, 1000000} {
		prefix, parsed, err := Parse(Repayment(id))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if prefix != PrefixRepayment || parsed != id {
			t.Errorf("round trip lost id %d", id)
		}
	}
}
