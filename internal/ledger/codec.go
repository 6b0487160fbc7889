package ledger

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tracker/internal/model"
)

// A ledger line is five plain fields joined by '|'. There is no quoting, so
// neither text field may contain the delimiter or a line break.
const (
	numFields = 5
	delimiter = "|"
	colDate   = 0
	colTime   = 1
	colDesc   = 2
	colVendor = 3
	colAmount = 4
)

// maxLineSize bounds a single ledger line.
const maxLineSize = 1 << 20

// ReadTransactions reads every record from r in file order. Blank lines are
// skipped. The first bad record aborts the read; the error names its line.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var txns []model.Transaction
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		txn, err := UnmarshalTransaction(strings.Split(text, delimiter))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txns = append(txns, txn)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	return txns, nil
}

// WriteTransactions writes one line per transaction. There is no header.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	bw := bufio.NewWriter(w)
	for i, txn := range txns {
		if _, err := bw.WriteString(strings.Join(MarshalTransaction(txn), delimiter) + "\n"); err != nil {
			return fmt.Errorf("writing record %d: %w", i+1, err)
		}
	}
	return bw.Flush()
}

// MarshalTransaction converts a Transaction to its five fields.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colDate] = txn.Date.Format(model.DateLayout)
	row[colTime] = txn.Time.Format(model.TimeLayout)
	row[colDesc] = txn.Description
	row[colVendor] = txn.Vendor
	row[colAmount] = txn.Amount.String()
	return row
}

// UnmarshalTransaction converts five fields to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("wrong number of fields: expected %d, got %d", numFields, len(record))
	}

	date, err := time.Parse(model.DateLayout, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	tod, err := time.Parse(model.TimeLayout, record[colTime])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing time %q: %w", record[colTime], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Transaction{
		Date:        date,
		Time:        model.TimeOf(tod),
		Description: record[colDesc],
		Vendor:      record[colVendor],
		Amount:      amount,
	}, nil
}
