package debt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain"
	"github.com/PnBafon/viten-backend/internal/domain/inventory"
)

// noopTxManager runs fn directly. The balance engine is pure service logic;
// transactional behavior is covered by the postgres tx manager itself.
type noopTxManager struct{}

func (noopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeStock struct {
	deducted  int64
	restored  int64
	deductErr error
}

func (f *fakeStock) DeductForSale(ctx context.Context, name string, pcs int64) (*inventory.PurchaseLot, error) {
	if f.deductErr != nil {
		return nil, f.deductErr
	}
	f.deducted += pcs
	return &inventory.PurchaseLot{Name: name}, nil
}

func (f *fakeStock) RestoreForSale(ctx context.Context, name string, pcs int64) error {
	f.restored += pcs
	return nil
}

type fakeRepo struct {
	debts      map[int64]*Debt
	repayments map[int64]*Repayment
	nextDebt   int64
	nextRep    int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		debts:      make(map[int64]*Debt),
		repayments: make(map[int64]*Repayment),
	}
}

func (f *fakeRepo) Create(ctx context.Context, d *Debt) error {
	f.nextDebt++
	d.ID = f.nextDebt
	cp := *d
	f.debts[d.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*Debt, error) {
	d, ok := f.debts[id]
	if !ok {
		return nil, apperror.NewNotFound("debt", id)
	}
	cp := *d
	return &cp, nil
}

func (f *fakeRepo) GetByIDForUpdate(ctx context.Context, id int64) (*Debt, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeRepo) Update(ctx context.Context, d *Debt) error {
	if _, ok := f.debts[d.ID]; !ok {
		return apperror.NewNotFound("debt", d.ID)
	}
	cp := *d
	f.debts[d.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateBalances(ctx context.Context, id int64, balanceOwed, amountPayableNow types.Money) error {
	d, ok := f.debts[id]
	if !ok {
		return apperror.NewNotFound("debt", id)
	}
	d.BalanceOwed = balanceOwed
	d.AmountPayableNow = amountPayableNow
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	delete(f.debts, id)
	for rid, r := range f.repayments {
		if r.DebtID == id {
			delete(f.repayments, rid)
		}
	}
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Debt], error) {
	out := domain.ListResult[*Debt]{Limit: filter.Limit, Offset: filter.Offset}
	for _, d := range f.debts {
		cp := *d
		out.Items = append(out.Items, &cp)
	}
	out.TotalCount = int64(len(out.Items))
	return out, nil
}

func (f *fakeRepo) SetReceiptNumber(ctx context.Context, id int64, number string) error {
	d, ok := f.debts[id]
	if !ok {
		return apperror.NewNotFound("debt", id)
	}
	d.ReceiptNumber = number
	return nil
}

func (f *fakeRepo) SetRepaymentReceiptNumber(ctx context.Context, id int64, number string) error {
	r, ok := f.repayments[id]
	if !ok {
		return apperror.NewNotFound("repayment", id)
	}
	r.ReceiptNumber = number
	return nil
}

func (f *fakeRepo) CreateRepayment(ctx context.Context, r *Repayment) error {
	f.nextRep++
	r.ID = f.nextRep
	cp := *r
	f.repayments[r.ID] = &cp
	return nil
}

func (f *fakeRepo) GetRepaymentByID(ctx context.Context, id int64) (*Repayment, error) {
	r, ok := f.repayments[id]
	if !ok {
		return nil, apperror.NewNotFound("repayment", id)
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) UpdateRepayment(ctx context.Context, r *Repayment) error {
	if _, ok := f.repayments[r.ID]; !ok {
		return apperror.NewNotFound("repayment", r.ID)
	}
	cp := *r
	f.repayments[r.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteRepayment(ctx context.Context, id int64) error {
	delete(f.repayments, id)
	return nil
}

func (f *fakeRepo) ListRepayments(ctx context.Context, debtID int64) ([]*Repayment, error) {
	var out []*Repayment
	for id := int64(1); id <= f.nextRep; id++ {
		if r, ok := f.repayments[id]; ok && r.DebtID == debtID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func money(s string) types.Money {
	return types.MustMoney(s)
}

func newTestService(t *testing.T) (*Service, *fakeRepo, *fakeStock) {
	t.Helper()
	repo := newFakeRepo()
	stock := &fakeStock{}
	return NewService(repo, stock, noopTxManager{}), repo, stock
}

func seedDebt(t *testing.T, svc *Service, totalPcs int64, unitPrice, payableNow string) *Debt {
	t.Helper()
	d := &Debt{
		Date:             "2026-08-01",
		Name:             "rice 25kg",
		Pcs:              totalPcs,
		UnitPrice:        money(unitPrice),
		AmountPayableNow: money(payableNow),
		ClientName:       "Amina",
	}
	require.NoError(t, svc.Create(context.Background(), d))
	return d
}

func TestCreateDerivesBalance(t *testing.T) {
	svc, _, stock := newTestService(t)

	d := seedDebt(t, svc, 10, "100", "400")

	assert.True(t, d.TotalPrice.Equal(money("1000")))
	assert.True(t, d.BalanceOwed.Equal(money("600")))
	assert.Equal(t, "DEBT-000001", d.ReceiptNumber)
	assert.Equal(t, int64(10), stock.deducted)
	assert.Equal(t, StatusPartiallyPaid, d.Status())
}

func TestCreateRejectsOverpayment(t *testing.T) {
	svc, _, _ := newTestService(t)

	d := &Debt{
		Date:             "2026-08-01",
		Name:             "rice 25kg",
		Pcs:              2,
		UnitPrice:        money("100"),
		AmountPayableNow: money("500"),
	}
	err := svc.Create(context.Background(), d)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCreateRepaymentShiftsBalances(t *testing.T) {
	svc, repo, _ := newTestService(t)
	d := seedDebt(t, svc, 10, "100", "0")

	rep := &Repayment{DebtID: d.ID, PaymentDate: "2026-08-05", Amount: money("400")}
	require.NoError(t, svc.CreateRepayment(context.Background(), rep))

	assert.Equal(t, "REPAY-000001", rep.ReceiptNumber)

	got, err := repo.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.True(t, got.BalanceOwed.Equal(money("600")))
	assert.True(t, got.AmountPayableNow.Equal(money("400")))
	// balance_owed + amount_payable_now stays pinned to total_price
	assert.True(t, got.BalanceOwed.Add(got.AmountPayableNow).Equal(got.TotalPrice))
	assert.Equal(t, StatusPartiallyPaid, got.Status())
}

func TestCreateRepaymentExceedsBalance(t *testing.T) {
	svc, repo, _ := newTestService(t)
	d := seedDebt(t, svc, 10, "100", "800")

	rep := &Repayment{DebtID: d.ID, PaymentDate: "2026-08-05", Amount: money("300")}
	err := svc.CreateRepayment(context.Background(), rep)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeExceedsBalance, appErr.Code)

	// rejected repayment leaves the debt untouched
	got, err := repo.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.True(t, got.BalanceOwed.Equal(money("200")))
	assert.True(t, got.AmountPayableNow.Equal(money("800")))
	assert.Empty(t, repo.repayments)
}

func TestCreateRepaymentDebtNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	rep := &Repayment{DebtID: 99, PaymentDate: "2026-08-05", Amount: money("10")}
	err := svc.CreateRepayment(context.Background(), rep)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateRepaymentRejectsNonPositiveAmount(t *testing.T) {
	svc, _, _ := newTestService(t)
	d := seedDebt(t, svc, 10, "100", "0")

	for _, amount := range []string{"0", "-50"} {
		rep := &Repayment{DebtID: d.ID, PaymentDate: "2026-08-05", Amount: money(amount)}
		err := svc.CreateRepayment(context.Background(), rep)
		require.Error(t, err, "amount %s", amount)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	}
}

func TestUpdateRepaymentAppliesDiff(t *testing.T) {
	svc, repo, _ := newTestService(t)
	d := seedDebt(t, svc, 10, "100", "0")

	rep := &Repayment{DebtID: d.ID, PaymentDate: "2026-08-05", Amount: money("400")}
	require.NoError(t, svc.CreateRepayment(context.Background(), rep))

	rep.Amount = money("250")
	require.NoError(t, svc.UpdateRepayment(context.Background(), rep))

	got, err := repo.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.True(t, got.BalanceOwed.Equal(money("750")))
	assert.True(t, got.AmountPayableNow.Equal(money("250")))
	assert.True(t, got.BalanceOwed.Add(got.AmountPayableNow).Equal(got.TotalPrice))
}

func TestUpdateRepaymentNegativeBalance(t *testing.T) {
	svc, repo, _ := newTestService(t)
	d := seedDebt(t, svc, 10, "100", "0")

	rep := &Repayment{DebtID: d.ID, PaymentDate: "2026-08-05", Amount: money("900")}
	require.NoError(t, svc.CreateRepayment(context.Background(), rep))

	// raising 900 to 1200 would push balance_owed to -200
	rep.Amount = money("1200")
	err := svc.UpdateRepayment(context.Background(), rep)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNegativeBalance, appErr.Code)

	got, err := repo.GetRepaymentByID(context.Background(), rep.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(money("900")))

	gotDebt, err := repo.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.True(t, gotDebt.BalanceOwed.Equal(money("100")))
}

func TestDeleteRepaymentReversesEffect(t *testing.T) {
	svc, repo, _ := newTestService(t)
	d := seedDebt(t, svc, 10, "100", "0")

	rep := &Repayment{DebtID: d.ID, PaymentDate: "2026-08-05", Amount: money("400")}
	require.NoError(t, svc.CreateRepayment(context.Background(), rep))
	require.NoError(t, svc.DeleteRepayment(context.Background(), rep.ID))

	got, err := repo.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.True(t, got.BalanceOwed.Equal(money("1000")))
	assert.True(t, got.AmountPayableNow.Equal(money("0")))
	assert.Equal(t, StatusOpen, got.Status())
}

func TestDeleteRepaymentFloorsPayableOnly(t *testing.T) {
	svc, repo, _ := newTestService(t)
	d := seedDebt(t, svc, 10, "100", "0")

	rep := &Repayment{DebtID: d.ID, PaymentDate: "2026-08-05", Amount: money("400")}
	require.NoError(t, svc.CreateRepayment(context.Background(), rep))

	// simulate an out-of-band edit that drained the paid column
	require.NoError(t, repo.UpdateBalances(context.Background(), d.ID, money("600"), money("100")))

	require.NoError(t, svc.DeleteRepayment(context.Background(), rep.ID))

	got, err := repo.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	// payable is floored at zero, balance gets the full amount back
	assert.True(t, got.AmountPayableNow.Equal(money("0")))
	assert.True(t, got.BalanceOwed.Equal(money("1000")))
}

func TestSettledDebtStatus(t *testing.T) {
	svc, repo, _ := newTestService(t)
	d := seedDebt(t, svc, 10, "100", "0")

	rep := &Repayment{DebtID: d.ID, PaymentDate: "2026-08-05", Amount: money("1000")}
	require.NoError(t, svc.CreateRepayment(context.Background(), rep))

	got, err := repo.GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSettled, got.Status())
	assert.True(t, got.BalanceOwed.IsZero())
}

func TestDeleteDebtRestoresStock(t *testing.T) {
	svc, repo, stock := newTestService(t)
	d := seedDebt(t, svc, 10, "100", "0")

	require.NoError(t, svc.Delete(context.Background(), d.ID))

	assert.Equal(t, int64(10), stock.restored)
	_, err := repo.GetByID(context.Background(), d.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateFailsWhenStockInsufficient(t *testing.T) {
	svc, repo, stock := newTestService(t)
	stock.deductErr = apperror.NewInsufficientStock("rice 25kg", 10, 3)

	d := &Debt{
		Date:      "2026-08-01",
		Name:      "rice 25kg",
		Pcs:       10,
		UnitPrice: money("100"),
	}
	err := svc.Create(context.Background(), d)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Empty(t, repo.debts)
}
