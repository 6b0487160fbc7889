package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/cleared-dev/tracker/internal/model"
)

// DefaultFile is the ledger file name used when none is configured.
const DefaultFile = "transactions.csv"

// Store owns the in-memory transaction list and the file backing it.
// Transactions are kept in file order; appended ones go at the end.
type Store struct {
	path string
	txns []model.Transaction
}

// Load reads every transaction from path. A missing file is created empty.
// Any malformed line fails the whole load.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := create(path); err != nil {
			return nil, err
		}
		return &Store{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("loading ledger %s: %w", path, err)
	}
	return &Store{path: path, txns: txns}, nil
}

// NewStore creates a Store over an already-loaded list, without touching disk
// until Append is called.
func NewStore(path string, txns []model.Transaction) *Store {
	return &Store{path: path, txns: slices.Clone(txns)}
}

func create(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating ledger dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("creating ledger %s: %w", path, err)
	}
	return f.Close()
}

// Path returns the ledger file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of transactions held.
func (s *Store) Len() int {
	return len(s.txns)
}

// Transactions returns a copy of the list in store order.
func (s *Store) Transactions() []model.Transaction {
	return slices.Clone(s.txns)
}

// Append validates txn, writes it as one line at the end of the ledger file
// and, only once the write succeeded, adds it to the in-memory list.
func (s *Store) Append(txn model.Transaction) error {
	if err := Validate(txn); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}

	if err := WriteTransactions(f, []model.Transaction{txn}); err != nil {
		f.Close()
		return fmt.Errorf("appending transaction: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing ledger: %w", err)
	}

	s.txns = append(s.txns, txn)
	return nil
}
