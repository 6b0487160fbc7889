package report

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tracker/internal/model"
)

// Totals summarizes a list of transactions.
type Totals struct {
	Count    int
	Deposits decimal.Decimal // sum of non-negative amounts
	Payments decimal.Decimal // sum of negative amounts (<= 0)
}

// Net is deposits plus payments.
func (t Totals) Net() decimal.Decimal {
	return t.Deposits.Add(t.Payments)
}

// Summarize totals txns by sign.
func Summarize(txns []model.Transaction) Totals {
	t := Totals{Count: len(txns), Deposits: decimal.Zero, Payments: decimal.Zero}
	for _, txn := range txns {
		if txn.IsDeposit() {
			t.Deposits = t.Deposits.Add(txn.Amount)
		} else {
			t.Payments = t.Payments.Add(txn.Amount)
		}
	}
	return t
}
