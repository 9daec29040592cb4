package insights

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneta/internal/core/types"
)

func TestGrowth(t *testing.T) {
	pct := Growth(types.MustMoney("150.00"), types.MustMoney("100.00"))
	require.NotNil(t, pct)
	assert.True(t, pct.Equal(types.MustMoney("50")), "got %s", pct)

	pct = Growth(types.MustMoney("80.00"), types.MustMoney("100.00"))
	require.NotNil(t, pct)
	assert.True(t, pct.Equal(types.MustMoney("-20")))
}

func TestGrowth_NearZeroPrevious(t *testing.T) {
	// both near zero: flat
	pct := Growth(types.Zero(), types.Zero())
	require.NotNil(t, pct)
	assert.True(t, pct.Equal(types.Zero()))

	pct = Growth(types.MustMoney("0.000001"), types.MustMoney("0.000004"))
	require.NotNil(t, pct)
	assert.True(t, pct.Equal(types.Zero()))

	// something from nothing reads as 100%
	pct = Growth(types.MustMoney("500.00"), types.Zero())
	require.NotNil(t, pct)
	assert.True(t, pct.Equal(types.MustMoney("100")))
}

func TestMargin(t *testing.T) {
	pct := Margin(types.MustMoney("250.00"), types.MustMoney("1000.00"))
	require.NotNil(t, pct)
	assert.True(t, pct.Equal(types.MustMoney("25")))

	assert.Nil(t, Margin(types.MustMoney("250.00"), types.Zero()))
	assert.Nil(t, Margin(types.Zero(), types.MustMoney("0.0000099")))
}

type stubRepo struct {
	totals map[time.Time]PeriodTotals
}

func (s *stubRepo) PeriodTotals(_ context.Context, from, _ time.Time) (PeriodTotals, error) {
	return s.totals[from], nil
}

func TestCompare(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	prevFrom := from.Add(-to.Sub(from))

	repo := &stubRepo{totals: map[time.Time]PeriodTotals{
		from: {
			Revenue: types.MustMoney("2000.00"),
			Expense: types.MustMoney("1500.00"),
		},
		prevFrom: {
			Revenue: types.MustMoney("1000.00"),
			Expense: types.MustMoney("1500.00"),
		},
	}}
	svc := NewService(repo)

	cmp, err := svc.Compare(context.Background(), from, to)
	require.NoError(t, err)

	require.NotNil(t, cmp.RevenueGrowth)
	assert.True(t, cmp.RevenueGrowth.Equal(types.MustMoney("100")))
	require.NotNil(t, cmp.ExpenseGrowth)
	assert.True(t, cmp.ExpenseGrowth.Equal(types.Zero()))

	// previous profit was −500: growth anchors on its magnitude
	require.NotNil(t, cmp.ProfitGrowth)
	assert.True(t, cmp.ProfitGrowth.Equal(types.MustMoney("200")), "got %s", cmp.ProfitGrowth)

	require.NotNil(t, cmp.Current.Margin)
	assert.True(t, cmp.Current.Margin.Equal(types.MustMoney("25")))

	_, err = svc.Summarize(context.Background(), to, from)
	require.Error(t, err)
}
