// Package settlement derives paid, outstanding and aging figures for
// invoices and their payment allocations. Everything here is a pure
// read: no stored state is mutated.
package settlement

import (
	"time"

	"moneta/internal/core/types"
)

// Schedule splits an amount across the four aging buckets. Exactly one
// bucket holds the full amount; the others stay zero.
type Schedule struct {
	Lt30           types.Money `json:"lt30"`
	Between30And60 types.Money `json:"between30And60"`
	Between60And90 types.Money `json:"between60And90"`
	Gt90           types.Money `json:"gt90"`
}

// ZeroSchedule returns a schedule with all buckets at zero.
func ZeroSchedule() Schedule {
	return Schedule{
		Lt30:           types.Zero(),
		Between30And60: types.Zero(),
		Between60And90: types.Zero(),
		Gt90:           types.Zero(),
	}
}

// Sum returns the total across all buckets.
func (s Schedule) Sum() types.Money {
	return s.Lt30.Add(s.Between30And60).Add(s.Between60And90).Add(s.Gt90)
}

// Add merges another schedule bucket by bucket.
func (s Schedule) Add(other Schedule) Schedule {
	return Schedule{
		Lt30:           s.Lt30.Add(other.Lt30),
		Between30And60: s.Between30And60.Add(other.Between30And60),
		Between60And90: s.Between60And90.Add(other.Between60And90),
		Gt90:           s.Gt90.Add(other.Gt90),
	}
}

// Outstanding is the unpaid remainder of an invoice, floored at zero.
// Over-payment and rounding can push paid above total; the remainder
// never goes negative.
func Outstanding(total, paid types.Money) types.Money {
	remainder := total.Sub(paid)
	if remainder.IsNegative() {
		return types.Zero()
	}
	return remainder
}

// AgingBuckets places a positive amount in the bucket matching the age
// of the reference date as of the given date. Zero and negative amounts
// produce an all-zero schedule.
func AgingBuckets(reference, asOf time.Time, amount types.Money) Schedule {
	if !amount.IsPositive() {
		return ZeroSchedule()
	}
	return placeInBucket(daysBetween(reference, asOf), amount)
}

// AllocationAging places a payment allocation against its invoice: the
// amount enters the schedule negated, aged from the invoice date to the
// payment date. The sign is kept so allocation schedules net against
// the invoice's own aging.
func AllocationAging(invoiceDate, paymentDate time.Time, amount types.Money) Schedule {
	return placeInBucket(daysBetween(invoiceDate, paymentDate), amount.Neg())
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func placeInBucket(days int, amount types.Money) Schedule {
	s := ZeroSchedule()
	switch {
	case days < 30:
		s.Lt30 = amount
	case days < 60:
		s.Between30And60 = amount
	case days < 90:
		s.Between60And90 = amount
	default:
		s.Gt90 = amount
	}
	return s
}
