package currency

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/core/types"
)

type noopTxManager struct{}

func (noopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	nextID     int64
	currencies map[int64]*Currency
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{currencies: make(map[int64]*Currency)}
}

func (f *fakeRepo) Create(ctx context.Context, c *Currency) error {
	f.nextID++
	c.ID = f.nextID
	cp := *c
	f.currencies[c.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*Currency, error) {
	c, ok := f.currencies[id]
	if !ok {
		return nil, apperror.NewNotFound("currency", id)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) GetByCode(ctx context.Context, code string) (*Currency, error) {
	for _, c := range f.currencies {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("currency", code)
}

func (f *fakeRepo) GetBase(ctx context.Context) (*Currency, error) {
	for _, c := range f.currencies {
		if c.IsBase {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("currency", "base")
}

func (f *fakeRepo) Update(ctx context.Context, c *Currency) error {
	if _, ok := f.currencies[c.ID]; !ok {
		return apperror.NewNotFound("currency", c.ID)
	}
	cp := *c
	f.currencies[c.ID] = &cp
	return nil
}

func (f *fakeRepo) ClearBase(ctx context.Context) error {
	for _, c := range f.currencies {
		c.IsBase = false
	}
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	delete(f.currencies, id)
	return nil
}

func (f *fakeRepo) List(ctx context.Context) ([]*Currency, error) {
	out := make([]*Currency, 0, len(f.currencies))
	for _, c := range f.currencies {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, noopTxManager{}), repo
}

func TestCreateUppercasesCode(t *testing.T) {
	svc, repo := newTestService()

	c := &Currency{Code: "xaf", RateToBase: types.MoneyFromInt(1), IsBase: true}
	require.NoError(t, svc.Create(context.Background(), c))

	assert.Equal(t, "XAF", repo.currencies[c.ID].Code)
	assert.True(t, repo.currencies[c.ID].IsBase)
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	svc, _ := newTestService()

	require.NoError(t, svc.Create(context.Background(), &Currency{Code: "XAF", RateToBase: types.MoneyFromInt(1), IsBase: true}))

	err := svc.Create(context.Background(), &Currency{Code: "XAF", RateToBase: types.MustMoney("0.5")})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestCreateNewBaseDemotesOldBase(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	old := &Currency{Code: "XAF", RateToBase: types.MoneyFromInt(1), IsBase: true}
	require.NoError(t, svc.Create(ctx, old))

	require.NoError(t, svc.Create(ctx, &Currency{Code: "EUR", RateToBase: types.MoneyFromInt(1), IsBase: true}))

	assert.False(t, repo.currencies[old.ID].IsBase)

	base, err := repo.GetBase(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EUR", base.Code)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		c    Currency
	}{
		{"bad code", Currency{Code: "US", RateToBase: types.MoneyFromInt(1)}},
		{"zero rate", Currency{Code: "USD", RateToBase: types.Zero()}},
		{"base with rate != 1", Currency{Code: "USD", RateToBase: types.MustMoney("2"), IsBase: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(ctx, &tt.c)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestUpdateCannotDemoteBase(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	base := &Currency{Code: "XAF", RateToBase: types.MoneyFromInt(1), IsBase: true}
	require.NoError(t, svc.Create(ctx, base))

	demoted := *base
	demoted.IsBase = false
	err := svc.Update(ctx, &demoted)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)
}

func TestDeleteRejectsBase(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	base := &Currency{Code: "XAF", RateToBase: types.MoneyFromInt(1), IsBase: true}
	require.NoError(t, svc.Create(ctx, base))
	other := &Currency{Code: "USD", RateToBase: types.MustMoney("600")}
	require.NoError(t, svc.Create(ctx, other))

	err := svc.Delete(ctx, base.ID)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)

	require.NoError(t, svc.Delete(ctx, other.ID))
	assert.Len(t, repo.currencies, 1)
}

func TestConvertThroughBase(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &Currency{Code: "XAF", RateToBase: types.MoneyFromInt(1), IsBase: true}))
	require.NoError(t, svc.Create(ctx, &Currency{Code: "USD", RateToBase: types.MustMoney("600")}))
	require.NoError(t, svc.Create(ctx, &Currency{Code: "EUR", RateToBase: types.MustMoney("650")}))

	// 13 USD = 7800 XAF = 12 EUR
	got, err := svc.Convert(ctx, types.MoneyFromInt(13), "usd", "eur")
	require.NoError(t, err)
	assert.True(t, got.Equal(types.MoneyFromInt(12)), "got %s", got)

	// same code is a no-op
	same, err := svc.Convert(ctx, types.MoneyFromInt(42), "USD", "usd")
	require.NoError(t, err)
	assert.True(t, same.Equal(types.MoneyFromInt(42)))
}

func TestConvertUnknownCurrency(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Convert(context.Background(), types.MoneyFromInt(1), "USD", "EUR")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
