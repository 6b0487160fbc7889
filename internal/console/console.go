// Package console runs the interactive menus over a ledger.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alfredxing/calc/compute"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tracker/internal/model"
	"github.com/cleared-dev/tracker/internal/report"
)

// dateTimeLayout is what the entry prompts accept.
const dateTimeLayout = model.DateLayout + " " + model.TimeLayout

// errEndOfInput unwinds every open menu when stdin is exhausted.
var errEndOfInput = errors.New("end of input")

// Ledger is the store the menus read from and append to.
type Ledger interface {
	Transactions() []model.Transaction
	Append(txn model.Transaction) error
}

// Options configures a Console. Zero values fall back to defaults.
type Options struct {
	Now         func() time.Time
	Table       *Table
	NewestFirst bool // sort the "All" view latest first
	Logger      *log.Logger
}

type handler func() error

// Console reads menu choices from in and writes everything to out.
type Console struct {
	ledger      Ledger
	in          *bufio.Reader
	out         io.Writer
	now         func() time.Time
	table       *Table
	newestFirst bool
	log         *log.Logger
	handlers    map[Command]handler
}

// New creates a Console over l.
func New(l Ledger, in io.Reader, out io.Writer, opts Options) *Console {
	c := &Console{
		ledger:      l,
		in:          bufio.NewReader(in),
		out:         out,
		now:         opts.Now,
		table:       opts.Table,
		newestFirst: opts.NewestFirst,
		log:         opts.Logger,
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.table == nil {
		c.table = NewTable("USD", false, 0)
	}
	if c.log == nil {
		c.log = log.New(io.Discard)
	}

	c.handlers = map[Command]handler{
		CmdDeposit:       func() error { return c.addEntry(false) },
		CmdPayment:       func() error { return c.addEntry(true) },
		CmdLedger:        func() error { return c.loop(ledgerMenu) },
		CmdAll:           c.showAll,
		CmdDeposits:      func() error { return c.show("Deposits", report.Deposits(c.ledger.Transactions())) },
		CmdPayments:      func() error { return c.show("Payments", report.Payments(c.ledger.Transactions())) },
		CmdReports:       func() error { return c.loop(reportsMenu) },
		CmdMonthToDate:   func() error { return c.showPreset(report.MonthToDate) },
		CmdPreviousMonth: func() error { return c.showPreset(report.PreviousMonth) },
		CmdYearToDate:    func() error { return c.showPreset(report.YearToDate) },
		CmdPreviousYear:  func() error { return c.showPreset(report.PreviousYear) },
		CmdByVendor:      c.searchVendor,
		CmdCustomSearch:  c.customSearch,
	}
	return c
}

// Run shows the home menu until the user exits or input ends.
func (c *Console) Run() error {
	err := c.loop(homeMenu)
	if errors.Is(err, errEndOfInput) {
		fmt.Fprintln(c.out)
		return nil
	}
	return err
}

// loop prints m and dispatches choices until m's leave command. Handler
// errors are printed and the loop goes on.
func (c *Console) loop(m menu) error {
	for {
		m.print(c.out)
		input, err := c.readLine()
		if err != nil {
			return err
		}

		cmd, ok := m.lookup(input)
		if !ok {
			fmt.Fprintln(c.out, "Invalid option")
			continue
		}
		if cmd == m.leave {
			return nil
		}

		if err := c.handlers[cmd](); err != nil {
			if errors.Is(err, errEndOfInput) {
				return err
			}
			c.log.Debug("command failed", "menu", m.title, "input", input, "err", err)
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
	}
}

// readLine returns the next line without its line ending. A final line with
// no newline still counts; after it, reads return errEndOfInput.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if line == "" {
			return "", errEndOfInput
		}
		err = nil
	}
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.readLine()
	return strings.TrimSpace(line), err
}

// addEntry prompts for a deposit or payment. The amount is always typed as a
// positive number; payments are stored negated.
func (c *Console) addEntry(payment bool) error {
	when, err := c.prompt("Date & Time (yyyy-MM-dd HH:mm:ss, blank = now): ")
	if err != nil {
		return err
	}
	desc, err := c.prompt("Description: ")
	if err != nil {
		return err
	}
	vendor, err := c.prompt("Vendor: ")
	if err != nil {
		return err
	}
	rawAmount, err := c.prompt("Amount (positive): ")
	if err != nil {
		return err
	}

	at := c.now()
	if when != "" {
		at, err = time.Parse(dateTimeLayout, when)
		if err != nil {
			return fmt.Errorf("parsing date and time %q: %w", when, err)
		}
	}

	amount, err := parseAmount(rawAmount)
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", amount)
	}

	kind := "Deposit"
	if payment {
		amount = amount.Neg()
		kind = "Payment"
	}

	txn := model.NewTransaction(at, desc, vendor, amount)
	if err := c.ledger.Append(txn); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s of %s recorded.\n", kind, c.table.Format(amount.Abs()))
	return nil
}

func (c *Console) showAll() error {
	txns := c.ledger.Transactions()
	if c.newestFirst {
		txns = report.NewestFirst(txns)
	}
	return c.show("All Transactions", txns)
}

func (c *Console) showPreset(p report.Preset) error {
	now := c.now()
	r := p.Range(now)
	return c.show(fmt.Sprintf("%s (%s, bounds excluded)", p, r), p.Run(c.ledger.Transactions(), now))
}

func (c *Console) searchVendor() error {
	vendor, err := c.prompt("Vendor name: ")
	if err != nil {
		return err
	}
	return c.show("Vendor: "+vendor, report.ByVendor(c.ledger.Transactions(), vendor))
}

func (c *Console) customSearch() error {
	var answers [5]string
	labels := [5]string{
		"Start date (yyyy-MM-dd, blank = none): ",
		"End date (yyyy-MM-dd, blank = none): ",
		"Description (blank = any): ",
		"Vendor (blank = any): ",
		"Amount (blank = any): ",
	}
	for i, label := range labels {
		v, err := c.prompt(label)
		if err != nil {
			return err
		}
		answers[i] = v
	}

	crit, err := parseCriteria(answers[0], answers[1], answers[2], answers[3], answers[4])
	if err != nil {
		return err
	}
	if crit.IsEmpty() {
		return c.show("All Transactions", c.ledger.Transactions())
	}
	return c.show("Custom Search", report.Search(c.ledger.Transactions(), crit))
}

func (c *Console) show(title string, txns []model.Transaction) error {
	c.log.Debug("listing", "title", title, "rows", len(txns))
	c.table.Render(c.out, title, txns)
	return nil
}

// parseCriteria builds search criteria from prompt answers; blank answers
// leave the field unset.
func parseCriteria(start, end, desc, vendor, amount string) (report.Criteria, error) {
	var crit report.Criteria
	if start != "" {
		d, err := time.Parse(model.DateLayout, start)
		if err != nil {
			return crit, fmt.Errorf("parsing start date %q: %w", start, err)
		}
		crit.Start = &d
	}
	if end != "" {
		d, err := time.Parse(model.DateLayout, end)
		if err != nil {
			return crit, fmt.Errorf("parsing end date %q: %w", end, err)
		}
		crit.End = &d
	}
	if desc != "" {
		crit.Description = &desc
	}
	if vendor != "" {
		crit.Vendor = &vendor
	}
	if amount != "" {
		a, err := parseAmount(amount)
		if err != nil {
			return crit, err
		}
		crit.Amount = &a
	}
	return crit, nil
}

// parseAmount accepts a decimal ("12.40") or simple arithmetic ("12.40+3").
// Expression results are rounded to cents.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, errors.New("amount is required")
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d, nil
	}
	v, err := compute.Evaluate(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return decimal.NewFromFloat(v).Round(2), nil
}
