package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tracker/internal/importer"
)

// importDir is scanned when import is given no files.
const importDir = "import"

func newImportCommand(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import [file.csv]...",
		Short: "Append bank CSV exports to the ledger",
		Long: `Import appends every new row of each bank export to the ledger. Rows whose
date, description and amount already appear in the ledger are skipped.

With no files, every CSV in the import/ directory next to the config file is
imported and then moved to import/processed/.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format %q", format)
			}

			env, err := opts.open(cmd)
			if err != nil {
				return err
			}
			dst := env.entryLedger()

			if len(args) > 0 {
				for _, path := range args {
					if err := importFile(cmd, path, parser, dst); err != nil {
						return err
					}
				}
				return nil
			}

			dir := filepath.Join(env.dir, importDir)
			files, err := importer.Scan(dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Nothing to import in %s\n", dir)
				return nil
			}
			for _, f := range files {
				if err := importFile(cmd, f.Path, parser, dst); err != nil {
					return err
				}
				if err := importer.MarkProcessed(dir, f.Name); err != nil {
					return err
				}
				env.log.Debug("import processed", "file", f.Name, "bytes", f.Size)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "chase", "bank export format")

	return cmd
}

func importFile(cmd *cobra.Command, path string, p importer.Parser, dst importer.Ledger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	res, err := importer.Import(f, p, dst)
	if err != nil {
		return fmt.Errorf("importing %s (%d row(s) written): %w", path, res.Imported, err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %d transaction(s) from %s", res.Imported, filepath.Base(path))
	if res.Skipped > 0 {
		fmt.Fprintf(out, ", skipped %d already in the ledger", res.Skipped)
	}
	fmt.Fprintln(out)
	return nil
}
