package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tracker/internal/model"
)

func TestValidate(t *testing.T) {
	ok := model.NewTransaction(at(2024, 1, 5, 10, 0, 0), "Coffee", "Cafe", dec("-4.50"))

	tests := []struct {
		name    string
		mutate  func(*model.Transaction)
		wantErr string
	}{
		{"valid", func(*model.Transaction) {}, ""},
		{"missing date", func(txn *model.Transaction) { txn.Date = time.Time{} }, "date is required"},
		{"three decimals", func(txn *model.Transaction) { txn.Amount = dec("1.005") }, "more than 2 decimal places"},
		{"trailing zeros ok", func(txn *model.Transaction) { txn.Amount = dec("1.500") }, ""},
		{"multiline description", func(txn *model.Transaction) { txn.Description = "a\nb" }, "description must be a single line"},
		{"multiline vendor", func(txn *model.Transaction) { txn.Vendor = "a\r\nb" }, "vendor must be a single line"},
		{"pipe in description", func(txn *model.Transaction) { txn.Description = "Monitor | desk" }, `description must not contain "|"`},
		{"pipe in vendor", func(txn *model.Transaction) { txn.Vendor = "A|B" }, `vendor must not contain "|"`},
		{"quotes ok", func(txn *model.Transaction) { txn.Description = `12" Sub` }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := ok
			tt.mutate(&txn)
			err := Validate(txn)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
