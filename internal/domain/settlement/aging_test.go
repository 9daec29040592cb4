package settlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"moneta/internal/core/types"
)

func day(offset int) time.Time {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestOutstanding(t *testing.T) {
	assert.True(t, Outstanding(types.MustMoney("500.00"), types.MustMoney("200.00")).
		Equal(types.MustMoney("300.00")))
	assert.True(t, Outstanding(types.MustMoney("500.00"), types.Zero()).
		Equal(types.MustMoney("500.00")))

	// over-payment floors at zero, never negative
	assert.True(t, Outstanding(types.MustMoney("500.00"), types.MustMoney("600.00")).
		Equal(types.Zero()))
	assert.True(t, Outstanding(types.MustMoney("500.00"), types.MustMoney("500.00")).
		Equal(types.Zero()))
}

func TestAgingBuckets_Thresholds(t *testing.T) {
	amount := types.MustMoney("500.00")

	tests := []struct {
		name   string
		days   int
		bucket func(Schedule) types.Money
	}{
		{"0 days", 0, func(s Schedule) types.Money { return s.Lt30 }},
		{"29 days", 29, func(s Schedule) types.Money { return s.Lt30 }},
		{"30 days", 30, func(s Schedule) types.Money { return s.Between30And60 }},
		{"40 days", 40, func(s Schedule) types.Money { return s.Between30And60 }},
		{"59 days", 59, func(s Schedule) types.Money { return s.Between30And60 }},
		{"60 days", 60, func(s Schedule) types.Money { return s.Between60And90 }},
		{"89 days", 89, func(s Schedule) types.Money { return s.Between60And90 }},
		{"90 days", 90, func(s Schedule) types.Money { return s.Gt90 }},
		{"365 days", 365, func(s Schedule) types.Money { return s.Gt90 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := AgingBuckets(day(0), day(tt.days), amount)
			assert.True(t, tt.bucket(s).Equal(amount))
			// one bucket holds the full amount, the rest stay zero
			assert.True(t, s.Sum().Equal(amount))
		})
	}
}

func TestAgingBuckets_NonPositiveAmount(t *testing.T) {
	for _, amount := range []types.Money{types.Zero(), types.MustMoney("-10.00")} {
		s := AgingBuckets(day(0), day(45), amount)
		assert.True(t, s.Lt30.Equal(types.Zero()))
		assert.True(t, s.Between30And60.Equal(types.Zero()))
		assert.True(t, s.Between60And90.Equal(types.Zero()))
		assert.True(t, s.Gt90.Equal(types.Zero()))
	}
}

func TestAllocationAging_KeepsNegativeSign(t *testing.T) {
	// payment of 300 made 100 days after the invoice date lands in the
	// oldest bucket, negated
	s := AllocationAging(day(0), day(100), types.MustMoney("300.00"))
	assert.True(t, s.Gt90.Equal(types.MustMoney("-300.00")), "gt90: %s", s.Gt90)
	assert.True(t, s.Lt30.Equal(types.Zero()))
	assert.True(t, s.Between30And60.Equal(types.Zero()))
	assert.True(t, s.Between60And90.Equal(types.Zero()))
	assert.True(t, s.Sum().Equal(types.MustMoney("-300.00")))
}

func TestScheduleAdd(t *testing.T) {
	invoice := AgingBuckets(day(0), day(100), types.MustMoney("500.00"))
	payment := AllocationAging(day(0), day(100), types.MustMoney("300.00"))
	net := invoice.Add(payment)
	assert.True(t, net.Gt90.Equal(types.MustMoney("200.00")))
}
