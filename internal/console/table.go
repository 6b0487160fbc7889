package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/Rhymond/go-money"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/shopspring/decimal"
	"golang.org/x/term"

	"github.com/cleared-dev/tracker/internal/model"
	"github.com/cleared-dev/tracker/internal/report"
)

const (
	defaultWidth  = 80
	dateWidth     = 10
	timeWidth     = 8
	vendorWidth   = 20
	amountWidth   = 14
	minDescWidth  = 16
	maxDescWidth  = 40
	columnPadding = 4 // one space between each of the five columns
)

// Table prints transactions in fixed columns.
type Table struct {
	currency  *money.Currency
	descWidth int
	deposit   *color.Color
	payment   *color.Color
	heading   *color.Color
}

// NewTable creates a Table. width is the terminal width (0 for the default);
// the description column absorbs whatever the fixed columns leave.
func NewTable(currencyCode string, colored bool, width int) *Table {
	cur := money.GetCurrency(currencyCode)
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}
	if width <= 0 {
		width = defaultWidth
	}
	desc := width - dateWidth - timeWidth - vendorWidth - amountWidth - columnPadding
	desc = max(minDescWidth, min(desc, maxDescWidth))

	t := &Table{
		currency:  cur,
		descWidth: desc,
		deposit:   color.New(color.FgGreen),
		payment:   color.New(color.FgRed),
		heading:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{t.deposit, t.payment, t.heading} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return t
}

// Render writes a title, a header, one row per transaction and a totals line.
func (t *Table) Render(w io.Writer, title string, txns []model.Transaction) {
	fmt.Fprintln(w)
	t.heading.Fprintln(w, title)
	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %*s",
		dateWidth, "Date", timeWidth, "Time", t.descWidth, "Description",
		vendorWidth, "Vendor", amountWidth, "Amount")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", utf8.RuneCountInString(header)))

	for _, txn := range txns {
		fmt.Fprintf(w, "%-*s %-*s %s %s %s\n",
			dateWidth, txn.Date.Format(model.DateLayout),
			timeWidth, txn.Time.Format(model.TimeLayout),
			fit(txn.Description, t.descWidth),
			fit(txn.Vendor, vendorWidth),
			t.amount(txn.Amount))
	}

	if len(txns) == 0 {
		fmt.Fprintln(w, "No transactions.")
		return
	}

	tot := report.Summarize(txns)
	fmt.Fprintf(w, "%d transaction(s)  deposits %s  payments %s  net %s\n",
		tot.Count, t.Format(tot.Deposits), t.Format(tot.Payments), t.Format(tot.Net()))
}

// Format renders an amount in the table's currency, e.g. "-$4.50". The sign
// always leads the currency symbol.
func (t *Table) Format(d decimal.Decimal) string {
	minor := d.Abs().Shift(int32(t.currency.Fraction)).Round(0).IntPart()
	s := money.New(minor, t.currency.Code).Display()
	if d.IsNegative() {
		return "-" + s
	}
	return s
}

func (t *Table) amount(d decimal.Decimal) string {
	s := fmt.Sprintf("%*s", amountWidth, t.Format(d))
	if d.IsNegative() {
		return t.payment.Sprint(s)
	}
	return t.deposit.Sprint(s)
}

// fit pads or truncates s to exactly n runes.
func fit(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s + strings.Repeat(" ", n-len(r))
}

// ColorEnabled resolves a display.color setting ("auto", "always", "never")
// for f.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// TerminalWidth returns the column count of f, or 0 if f is not a terminal.
func TerminalWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
