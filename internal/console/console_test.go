package console

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tracker/internal/ledger"
	"github.com/cleared-dev/tracker/internal/model"
)

var fixedNow = time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)

type memLedger struct {
	txns    []model.Transaction
	failing bool
}

func (m *memLedger) Transactions() []model.Transaction {
	return append([]model.Transaction(nil), m.txns...)
}

func (m *memLedger) Append(txn model.Transaction) error {
	if m.failing {
		return errors.New("disk full")
	}
	m.txns = append(m.txns, txn)
	return nil
}

func entry(day, clock, desc, vendor, amount string) model.Transaction {
	at, err := time.Parse(dateTimeLayout, day+" "+clock)
	if err != nil {
		panic(err)
	}
	return model.NewTransaction(at, desc, vendor, decimal.RequireFromString(amount))
}

func sampleLedger() *memLedger {
	return &memLedger{txns: []model.Transaction{
		entry("2024-01-05", "10:00:00", "Coffee", "Cafe", "-4.50"),
		entry("2024-01-06", "09:00:00", "Paycheck", "Employer", "1500.00"),
		entry("2023-06-01", "08:00:00", "Rent", "Landlord", "-900.00"),
	}}
}

// run feeds lines to a console and returns everything it printed.
func run(t *testing.T, l Ledger, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	c := New(l, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, Options{
		Now: func() time.Time { return fixedNow },
	})
	require.NoError(t, c.Run())
	return out.String()
}

func TestRun_ExitAndEOF(t *testing.T) {
	out := run(t, sampleLedger(), "x")
	assert.Contains(t, out, "Home")
	assert.Contains(t, out, "X) Exit")

	// No input at all ends cleanly.
	var buf bytes.Buffer
	require.NoError(t, New(sampleLedger(), strings.NewReader(""), &buf, Options{}).Run())
}

func TestRun_InvalidOptionReprintsMenu(t *testing.T) {
	out := run(t, sampleLedger(), "q", " x ")
	assert.Contains(t, out, "Invalid option")
	assert.Equal(t, 2, strings.Count(out, "Choose an option:"))
}

func TestLedgerViews(t *testing.T) {
	out := run(t, sampleLedger(), "L", "d", "H", "X")
	assert.Contains(t, out, "Paycheck")
	assert.NotContains(t, out, "Coffee")
	assert.Contains(t, out, "$1,500.00")

	out = run(t, sampleLedger(), "l", "p", "h", "x")
	assert.Contains(t, out, "Coffee")
	assert.Contains(t, out, "Rent")
	assert.NotContains(t, out, "Paycheck")
	assert.Contains(t, out, "-$4.50")

	out = run(t, sampleLedger(), "l", "a", "h", "x")
	assert.Less(t, strings.Index(out, "Coffee"), strings.Index(out, "Rent"), "All keeps store order")
	assert.Contains(t, out, "3 transaction(s)")
}

func TestLedgerAllNewestFirst(t *testing.T) {
	var out bytes.Buffer
	c := New(sampleLedger(), strings.NewReader("l\na\nh\nx\n"), &out, Options{NewestFirst: true})
	require.NoError(t, c.Run())

	s := out.String()
	assert.Less(t, strings.Index(s, "Paycheck"), strings.Index(s, "Coffee"))
	assert.Less(t, strings.Index(s, "Coffee"), strings.Index(s, "Rent"))
}

func TestAddDeposit(t *testing.T) {
	l := &memLedger{}
	out := run(t, l, "D", "2024-01-06 09:00:00", "Paycheck", "Employer", "1500", "X")

	require.Len(t, l.txns, 1)
	got := l.txns[0]
	assert.True(t, got.Equal(entry("2024-01-06", "09:00:00", "Paycheck", "Employer", "1500")))
	assert.Contains(t, out, "Deposit of $1,500.00 recorded.")
}

func TestAddPaymentIsNegated(t *testing.T) {
	l := &memLedger{}
	run(t, l, "p", "", "Coffee", "Cafe", "4.40+0.10", "x")

	require.Len(t, l.txns, 1)
	got := l.txns[0]
	assert.True(t, got.IsPayment())
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("-4.50")), "amount %s", got.Amount)
	assert.Equal(t, fixedNow.Format(dateTimeLayout), got.Timestamp().Format(dateTimeLayout), "blank date means now")
}

func TestAddEntryErrorsKeepLooping(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		wantErr string
	}{
		{"bad date", []string{"d", "yesterday", "x", "y", "1"}, "parsing date and time"},
		{"zero amount", []string{"d", "", "x", "y", "0"}, "amount must be positive"},
		{"negative amount", []string{"p", "", "x", "y", "-3"}, "amount must be positive"},
		{"missing amount", []string{"p", "", "x", "y", ""}, "amount is required"},
		{"too many decimals", []string{"d", "", "x", "y", "1.005"}, "more than 2 decimal places"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			store, err := ledger.Load(filepath.Join(dir, ledger.DefaultFile))
			require.NoError(t, err)

			out := run(t, store, append(tt.lines, "x")...)
			assert.Contains(t, out, "Error: ")
			assert.Contains(t, out, tt.wantErr)
			assert.Zero(t, store.Len())
		})
	}
}

func TestAddEntryLongLine(t *testing.T) {
	l := &memLedger{}
	desc := strings.Repeat("a", 100_000)
	out := run(t, l, "d", "2024-01-06 09:00:00", desc, "Employer", "5", "x")

	assert.NotContains(t, out, "Error: ")
	require.Len(t, l.txns, 1)
	assert.Equal(t, desc, l.txns[0].Description)
}

func TestRun_LastLineWithoutNewline(t *testing.T) {
	l := &memLedger{}
	var out bytes.Buffer
	c := New(l, strings.NewReader("d\r\n2024-01-06 09:00:00\r\nGift\r\nAunt\r\n20"), &out, Options{})
	require.NoError(t, c.Run())
	require.Len(t, l.txns, 1)
	assert.Equal(t, "Aunt", l.txns[0].Vendor)
}

func TestAddEntryWriteFailure(t *testing.T) {
	l := &memLedger{failing: true}
	out := run(t, l, "d", "", "Gift", "Aunt", "20", "x")
	assert.Contains(t, out, "Error: disk full")
	assert.Empty(t, l.txns)
}

func TestAddEntryPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), ledger.DefaultFile)
	store, err := ledger.Load(path)
	require.NoError(t, err)

	run(t, store, "p", "2024-01-05 10:00:00", "Coffee", "Cafe", "4.50", "x")

	reloaded, err := ledger.Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.Len())
	assert.True(t, reloaded.Transactions()[0].Equal(entry("2024-01-05", "10:00:00", "Coffee", "Cafe", "-4.50")))
}

func TestReports(t *testing.T) {
	// fixedNow is 2024-01-08; month-to-date excludes the 1st and the 8th.
	out := run(t, sampleLedger(), "l", "r", "1", "0", "h", "x")
	assert.Contains(t, out, "Month To Date (2024-01-01 .. 2024-01-08, bounds excluded)")
	assert.Contains(t, out, "Coffee")
	assert.Contains(t, out, "Paycheck")
	assert.NotContains(t, out, "Rent")

	out = run(t, sampleLedger(), "l", "r", "4", "0", "h", "x")
	assert.Contains(t, out, "Previous Year (2023-01-01 .. 2023-12-31, bounds excluded)")
	assert.Contains(t, out, "Rent")
	assert.NotContains(t, out, "Coffee")
}

func TestReportsVendorSearch(t *testing.T) {
	out := run(t, sampleLedger(), "l", "r", "5", "EMPLOYER", "0", "h", "x")
	assert.Contains(t, out, "Paycheck")
	assert.NotContains(t, out, "Coffee")
}

func TestReportsCustomSearch(t *testing.T) {
	out := run(t, sampleLedger(), "l", "r", "6", "", "", "", "Employer", "", "0", "h", "x")
	assert.Contains(t, out, "\nCustom Search\n")
	assert.Contains(t, out, "Paycheck")
	assert.NotContains(t, out, "Coffee")
	assert.NotContains(t, out, "Rent")

	// Inclusive bounds: both the 5th and the 6th match.
	out = run(t, sampleLedger(), "l", "r", "6", "2024-01-05", "2024-01-06", "", "", "", "0", "h", "x")
	assert.Contains(t, out, "Coffee")
	assert.Contains(t, out, "Paycheck")
	assert.NotContains(t, out, "Rent")

	out = run(t, sampleLedger(), "l", "r", "6", "05/01/2024", "", "", "", "", "0", "h", "x")
	assert.Contains(t, out, "Error: parsing start date")
}

func TestReportsCustomSearchNoCriteria(t *testing.T) {
	out := run(t, sampleLedger(), "l", "r", "6", "", "", "", "", "", "0", "h", "x")
	assert.Contains(t, out, "\nAll Transactions\n")
	assert.NotContains(t, out, "\nCustom Search\n")
	assert.Contains(t, out, "3 transaction(s)")
}

func TestEOFInsideSubmenu(t *testing.T) {
	var out bytes.Buffer
	c := New(sampleLedger(), strings.NewReader("l\nr\n6\n2024-01-01\n"), &out, Options{})
	assert.NoError(t, c.Run())
}

func TestParseCriteria(t *testing.T) {
	crit, err := parseCriteria("", "", "", "", "")
	require.NoError(t, err)
	assert.True(t, crit.IsEmpty())

	crit, err = parseCriteria("2024-01-01", "2024-01-31", "Coffee", "Cafe", "-4.5")
	require.NoError(t, err)
	require.NotNil(t, crit.Start)
	require.NotNil(t, crit.End)
	assert.Equal(t, "Coffee", *crit.Description)
	assert.Equal(t, "Cafe", *crit.Vendor)
	assert.True(t, crit.Amount.Equal(decimal.RequireFromString("-4.50")))

	_, err = parseCriteria("", "2024-02-30", "", "", "")
	assert.ErrorContains(t, err, "parsing end date")
}

func TestParseAmount(t *testing.T) {
	tests := []struct{ in, want string }{
		{"12.40", "12.4"},
		{"12.40+3", "15.4"},
		{"10/3", "3.33"},
		{"2*(4.5)", "9"},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "parseAmount(%q) = %s", tt.in, got)
	}
}
