package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction represents a parsed bank CSV row.
type BankTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = payment, positive = deposit
}

// Transaction converts the bank row into a ledger transaction at midnight,
// using vendor as the counterparty.
func (b BankTransaction) Transaction(vendor string) Transaction {
	return NewTransaction(DateOf(b.Date), b.Description, vendor, b.Amount)
}
