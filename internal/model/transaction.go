package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DateLayout is the on-disk and prompt layout for a transaction date.
	DateLayout = "2006-01-02"
	// TimeLayout is the on-disk and prompt layout for a time of day (24-hour).
	TimeLayout = "15:04:05"
)

// Transaction is one line of the ledger file. Deposits carry a non-negative
// Amount and payments a negative one; there is no separate type field.
type Transaction struct {
	Date        time.Time       // midnight UTC
	Time        time.Time       // time of day on 0000-01-01 UTC
	Description string          //nolint:revive // plain field name is clearest
	Vendor      string          //nolint:revive
	Amount      decimal.Decimal // negative = payment
}

// NewTransaction splits at into its date and time-of-day parts, truncated to
// whole seconds.
func NewTransaction(at time.Time, description, vendor string, amount decimal.Decimal) Transaction {
	return Transaction{
		Date:        DateOf(at),
		Time:        TimeOf(at),
		Description: description,
		Vendor:      vendor,
		Amount:      amount,
	}
}

// IsDeposit reports whether the amount is zero or positive.
func (t Transaction) IsDeposit() bool {
	return !t.Amount.IsNegative()
}

// IsPayment reports whether the amount is negative.
func (t Transaction) IsPayment() bool {
	return t.Amount.IsNegative()
}

// Timestamp combines Date and Time into a single instant (UTC).
func (t Transaction) Timestamp() time.Time {
	return time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(),
		t.Time.Hour(), t.Time.Minute(), t.Time.Second(), 0, time.UTC)
}

// Equal reports whether every field of t and o matches. Amounts are compared
// numerically, so 1.5 and 1.50 are equal.
func (t Transaction) Equal(o Transaction) bool {
	return t.Date.Equal(o.Date) &&
		t.Time.Equal(o.Time) &&
		t.Description == o.Description &&
		t.Vendor == o.Vendor &&
		t.Amount.Equal(o.Amount)
}

// DateOf returns the calendar date of at as midnight UTC.
func DateOf(at time.Time) time.Time {
	return time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
}

// TimeOf returns the time of day of at, in whole seconds, anchored on year 0.
func TimeOf(at time.Time) time.Time {
	return time.Date(0, 1, 1, at.Hour(), at.Minute(), at.Second(), 0, time.UTC)
}
