package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tracker/internal/model"
)

// Parser converts a bank CSV file into BankTransactions.
type Parser interface {
	Parse(r io.Reader) ([]model.BankTransaction, error)
	Format() string
}

// Ledger receives imported transactions; *ledger.Store satisfies it.
type Ledger interface {
	Transactions() []model.Transaction
	Append(txn model.Transaction) error
}

// Result counts what one Import did.
type Result struct {
	Imported int
	Skipped  int // rows already in the ledger
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	return r
}

// Import parses r with p and appends every new row to dst in file order.
// A row is already present when dst holds an entry with the same date,
// description and amount; each existing entry absorbs at most one row, so
// identical rows in one export are all kept the first time. Nothing is
// appended if parsing fails. On an append failure the rows already written
// stay written and are counted in the returned Result.
func Import(r io.Reader, p Parser, dst Ledger) (Result, error) {
	var res Result
	rows, err := p.Parse(r)
	if err != nil {
		return res, err
	}

	seen := make(map[string]int)
	for _, txn := range dst.Transactions() {
		seen[dedupKey(txn.Date, txn.Description, txn.Amount)]++
	}

	for _, row := range rows {
		key := dedupKey(row.Date, row.Description, row.Amount)
		if seen[key] > 0 {
			seen[key]--
			res.Skipped++
			continue
		}
		if err := dst.Append(row.Transaction(VendorFromDescription(row.Description))); err != nil {
			return res, fmt.Errorf("appending %q: %w", row.Description, err)
		}
		res.Imported++
	}
	return res, nil
}

func dedupKey(date time.Time, desc string, amount decimal.Decimal) string {
	return date.Format(model.DateLayout) + "|" + desc + "|" + amount.StringFixed(2)
}

// VendorFromDescription guesses a vendor from a bank description: the text
// before the first '*' or '#', or else its first word, without trailing
// punctuation. "GITHUB *PRO SUBSCRIPTION" -> "GITHUB".
func VendorFromDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	if i := strings.IndexAny(desc, "*#"); i > 0 {
		desc = desc[:i]
	} else if fields := strings.Fields(desc); len(fields) > 0 {
		desc = fields[0]
	}
	return strings.TrimRightFunc(desc, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
}

// Scan returns the CSV files directly inside dir. A missing dir is empty.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves dir/fileName into dir/processed/.
func MarkProcessed(dir, fileName string) error {
	dstDir := filepath.Join(dir, "processed")
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	src := filepath.Join(dir, fileName)
	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
