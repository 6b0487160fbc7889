// Package report holds the read-only views over a transaction list. Every
// function returns matches in input order and never modifies its input.
package report

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tracker/internal/model"
)

// Filter returns the transactions for which keep reports true.
func Filter(txns []model.Transaction, keep func(model.Transaction) bool) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if keep(txn) {
			out = append(out, txn)
		}
	}
	return out
}

// Deposits returns transactions with an amount of zero or more.
func Deposits(txns []model.Transaction) []model.Transaction {
	return Filter(txns, model.Transaction.IsDeposit)
}

// Payments returns transactions with a negative amount.
func Payments(txns []model.Transaction) []model.Transaction {
	return Filter(txns, model.Transaction.IsPayment)
}

// ByDateRange returns transactions dated strictly after start and strictly
// before end. Both boundary dates are excluded, so start == end is always empty.
func ByDateRange(txns []model.Transaction, start, end time.Time) []model.Transaction {
	s, e := model.DateOf(start), model.DateOf(end)
	return Filter(txns, func(txn model.Transaction) bool {
		return txn.Date.After(s) && txn.Date.Before(e)
	})
}

// ByVendor returns transactions whose vendor equals name, ignoring case.
func ByVendor(txns []model.Transaction, name string) []model.Transaction {
	return Filter(txns, func(txn model.Transaction) bool {
		return strings.EqualFold(txn.Vendor, name)
	})
}

// Criteria selects transactions for Search. A nil field matches everything.
type Criteria struct {
	Start       *time.Time // inclusive
	End         *time.Time // inclusive
	Description *string    // case-insensitive exact match
	Vendor      *string    // case-insensitive exact match
	Amount      *decimal.Decimal
}

// IsEmpty reports whether no field is set.
func (c Criteria) IsEmpty() bool {
	return c.Start == nil && c.End == nil && c.Description == nil && c.Vendor == nil && c.Amount == nil
}

// Match reports whether txn satisfies every set field of c.
//
// Unlike ByDateRange, the date bounds here are inclusive: a transaction on
// Start or End matches.
func (c Criteria) Match(txn model.Transaction) bool {
	if c.Start != nil && txn.Date.Before(model.DateOf(*c.Start)) {
		return false
	}
	if c.End != nil && txn.Date.After(model.DateOf(*c.End)) {
		return false
	}
	if c.Description != nil && !strings.EqualFold(*c.Description, txn.Description) {
		return false
	}
	if c.Vendor != nil && !strings.EqualFold(*c.Vendor, txn.Vendor) {
		return false
	}
	if c.Amount != nil && !c.Amount.Equal(txn.Amount) {
		return false
	}
	return true
}

// Search returns the transactions matching c.
func Search(txns []model.Transaction, c Criteria) []model.Transaction {
	return Filter(txns, c.Match)
}

// NewestFirst returns a copy of txns sorted by date then time, latest first.
// Ties keep their input order.
func NewestFirst(txns []model.Transaction) []model.Transaction {
	out := slices.Clone(txns)
	slices.SortStableFunc(out, func(a, b model.Transaction) int {
		return b.Timestamp().Compare(a.Timestamp())
	})
	return out
}
