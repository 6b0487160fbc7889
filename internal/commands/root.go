package commands

import (
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tracker/internal/buildinfo"
	"github.com/cleared-dev/tracker/internal/config"
	"github.com/cleared-dev/tracker/internal/console"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
// Without a subcommand it runs the interactive menu.
func NewRootCommand() *cobra.Command {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:   "tracker",
		Short: "Personal finance ledger",
		Long: `Tracker records deposits and payments in a pipe-delimited ledger file
and lists them by type, date range, vendor or a custom search.

Run without a command to open the interactive menu.`,
		Version: buildinfo.String(),
		Args:    cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := opts.open(cmd)
			if err != nil {
				return err
			}
			c := console.New(env.entryLedger(), cmd.InOrStdin(), cmd.OutOrStdout(), console.Options{
				Table:       env.table(cmd.OutOrStdout()),
				NewestFirst: env.cfg.Display.NewestFirst,
				Logger:      env.log,
			})
			return c.Run()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", config.DefaultPath, "config file")
	pf.StringVarP(&opts.ledgerFile, "file", "f", "", "ledger file (overrides the config)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand(&opts))

	cc.Init(&cc.Config{
		RootCmd:  rootCmd,
		Headings: cc.HiCyan + cc.Bold + cc.Underline,
		Commands: cc.HiYellow + cc.Bold,
		Example:  cc.Italic,
		ExecName: cc.Bold,
		Flags:    cc.Bold,
	})

	return rootCmd
}
