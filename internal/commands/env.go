package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tracker/internal/config"
	"github.com/cleared-dev/tracker/internal/console"
	"github.com/cleared-dev/tracker/internal/gitops"
	"github.com/cleared-dev/tracker/internal/ledger"
	"github.com/cleared-dev/tracker/internal/model"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	configPath string
	ledgerFile string
}

// environment is everything a command needs once flags, config and the
// ledger file have been read.
type environment struct {
	cfg   *config.Config
	log   *log.Logger
	store *ledger.Store
	dir   string // directory holding the config file
}

// loadConfig reads the config file (defaults if missing), then .env and
// TRACKER_* variables, then --file. A relative ledger.file from the config
// file is taken relative to the config file's directory.
func (o *globalOptions) loadConfig(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return nil, nil, err
	}

	dir := filepath.Dir(o.configPath)
	if !filepath.IsAbs(cfg.Ledger.File) {
		cfg.Ledger.File = filepath.Join(dir, cfg.Ledger.File)
	}
	if err := config.ApplyEnv(cfg, filepath.Join(dir, ".env")); err != nil {
		return nil, nil, err
	}
	if o.ledgerFile != "" {
		cfg.Ledger.File = o.ledgerFile
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	logger.Debug("config loaded", "path", o.configPath, "ledger", cfg.Ledger.File)
	return cfg, logger, nil
}

// open loads config and the ledger file.
func (o *globalOptions) open(cmd *cobra.Command) (*environment, error) {
	cfg, logger, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	store, err := ledger.Load(cfg.Ledger.File)
	if err != nil {
		return nil, err
	}
	logger.Debug("ledger loaded", "path", store.Path(), "transactions", store.Len())

	return &environment{cfg: cfg, log: logger, store: store, dir: filepath.Dir(o.configPath)}, nil
}

func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "tracker"})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", level)
		lvl = log.WarnLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// entryLedger returns the store, wrapped to commit each write when git auto-commit
// is on and the ledger lives in a work tree.
func (e *environment) entryLedger() console.Ledger {
	if !e.cfg.Git.AutoCommit {
		return e.store
	}
	if !gitops.IsRepo(filepath.Dir(e.store.Path())) {
		e.log.Warn("git.auto_commit is set but the ledger is not in a git repository", "path", e.store.Path())
		return e.store
	}
	author := gitops.Author{Name: e.cfg.Git.AuthorName, Email: e.cfg.Git.AuthorEmail}
	e.log.Debug("git auto-commit on", "author", author.String())
	return &committingLedger{Store: e.store, author: author, log: e.log}
}

// table builds a renderer for w, enabling color and terminal width only when
// w is a terminal.
func (e *environment) table(w io.Writer) *console.Table {
	f, isFile := w.(*os.File)
	mode := e.cfg.Display.Color
	colored := mode == "always" || (isFile && console.ColorEnabled(mode, f))

	width := 0
	if isFile {
		width = console.TerminalWidth(f)
	}
	return console.NewTable(e.cfg.Display.Currency, colored, width)
}

// committingLedger commits the ledger file after every successful append.
// Commit failures are logged and do not fail the append.
type committingLedger struct {
	*ledger.Store
	author gitops.Author
	log    *log.Logger
}

func (c *committingLedger) Append(txn model.Transaction) error {
	if err := c.Store.Append(txn); err != nil {
		return err
	}
	hash, err := gitops.CommitFile(c.Path(), commitMessage(txn), c.author)
	if err != nil {
		c.log.Warn("git commit failed", "err", err)
		return nil
	}
	c.log.Debug("ledger committed", "hash", hash)
	return nil
}

// commitMessage is like "payment: Coffee (Cafe) -4.5".
func commitMessage(txn model.Transaction) string {
	kind := "deposit"
	if txn.IsPayment() {
		kind = "payment"
	}
	return fmt.Sprintf("%s: %s (%s) %s", kind, txn.Description, txn.Vendor, txn.Amount)
}
