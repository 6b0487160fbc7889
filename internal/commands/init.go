package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tracker/internal/config"
	"github.com/cleared-dev/tracker/internal/gitops"
	"github.com/cleared-dev/tracker/internal/ledger"
)

func newInitCommand() *cobra.Command {
	var useGit bool
	var currency string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a config file and an empty ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, currency, useGit)
		},
	}

	cmd.Flags().BoolVar(&useGit, "git", false, "initialize a git repository and commit every ledger change")
	cmd.Flags().StringVar(&currency, "currency", "USD", "currency code used to display amounts")

	return cmd
}

func runInit(out io.Writer, dir, currency string, useGit bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, config.DefaultPath)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default()
	cfg.Display.Currency = currency
	cfg.Git.AutoCommit = useGit
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Load creates the file when missing and validates it when present.
	store, err := ledger.Load(filepath.Join(dir, cfg.Ledger.File))
	if err != nil {
		return err
	}

	if useGit {
		if !gitops.IsRepo(dir) {
			if err := gitops.Init(dir); err != nil {
				return fmt.Errorf("git init: %w", err)
			}
		}
		author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
		hash, err := gitops.CommitFile(store.Path(), "init: ledger", author)
		if err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
		fmt.Fprintf(out, "Initialized ledger at %s (%s, committed as %s)\n", store.Path(), hash, author)
		return nil
	}

	fmt.Fprintf(out, "Initialized ledger at %s\n", store.Path())
	return nil
}
