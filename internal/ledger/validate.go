package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cleared-dev/tracker/internal/model"
)

// ErrInvalid marks a transaction rejected before it reaches the ledger file.
var ErrInvalid = errors.New("invalid transaction")

// Validate checks that txn can be written as a single ledger line and read
// back unchanged.
func Validate(txn model.Transaction) error {
	var errs []error

	if txn.Date.IsZero() {
		errs = append(errs, errors.New("date is required"))
	}

	// No more than 2 decimal places.
	if !txn.Amount.Equal(txn.Amount.Round(2)) {
		errs = append(errs, fmt.Errorf("amount %s has more than 2 decimal places", txn.Amount))
	}

	if err := checkText("description", txn.Description); err != nil {
		errs = append(errs, err)
	}
	if err := checkText("vendor", txn.Vendor); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

func checkText(field, s string) error {
	if strings.ContainsAny(s, "\r\n") {
		return fmt.Errorf("%s must be a single line", field)
	}
	if strings.Contains(s, delimiter) {
		return fmt.Errorf("%s must not contain %q", field, delimiter)
	}
	return nil
}
