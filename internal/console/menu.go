package console

import (
	"fmt"
	"io"
	"strings"
)

// Command is one choice offered by a menu.
type Command int

const (
	CmdDeposit Command = iota + 1
	CmdPayment
	CmdLedger
	CmdExit

	CmdAll
	CmdDeposits
	CmdPayments
	CmdReports
	CmdHome

	CmdMonthToDate
	CmdPreviousMonth
	CmdYearToDate
	CmdPreviousYear
	CmdByVendor
	CmdCustomSearch
	CmdBack
)

type option struct {
	key   string
	label string
	cmd   Command
}

// menu is a titled list of options. Choosing the leave command returns to the
// caller's menu.
type menu struct {
	title   string
	options []option
	leave   Command
}

var (
	homeMenu = menu{
		title: "Home",
		options: []option{
			{"D", "Add Deposit", CmdDeposit},
			{"P", "Make Payment (Debit)", CmdPayment},
			{"L", "Ledger", CmdLedger},
			{"X", "Exit", CmdExit},
		},
		leave: CmdExit,
	}

	ledgerMenu = menu{
		title: "Ledger",
		options: []option{
			{"A", "All", CmdAll},
			{"D", "Deposits", CmdDeposits},
			{"P", "Payments", CmdPayments},
			{"R", "Reports", CmdReports},
			{"H", "Home", CmdHome},
		},
		leave: CmdHome,
	}

	reportsMenu = menu{
		title: "Reports",
		options: []option{
			{"1", "Month To Date", CmdMonthToDate},
			{"2", "Previous Month", CmdPreviousMonth},
			{"3", "Year To Date", CmdYearToDate},
			{"4", "Previous Year", CmdPreviousYear},
			{"5", "Search by Vendor", CmdByVendor},
			{"6", "Custom Search", CmdCustomSearch},
			{"0", "Back", CmdBack},
		},
		leave: CmdBack,
	}
)

// lookup maps trimmed, case-insensitive input to a command.
func (m menu) lookup(input string) (Command, bool) {
	input = strings.TrimSpace(input)
	for _, o := range m.options {
		if strings.EqualFold(o.key, input) {
			return o.cmd, true
		}
	}
	return 0, false
}

func (m menu) print(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, m.title)
	fmt.Fprintln(w, "Choose an option:")
	for _, o := range m.options {
		fmt.Fprintf(w, "  %s) %s\n", o.key, o.label)
	}
	fmt.Fprint(w, "> ")
}
