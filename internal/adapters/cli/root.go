package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	userFlag   string
	levelFlag  int
	verbose    bool
	jsonOutput bool
)

// unsetLevel marks --level as not given; 0 is a valid level id
const unsetLevel = -1

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lthgame",
		Short: "LTH supply chain game - run the burger restaurant simulation from the terminal",
		Long: `lthgame plays the supply chain simulation against the configured database.
Every day you order raw materials, produce meals and ship them to customers.

Examples:
  lthgame level list
  lthgame level show 1 --tree
  lthgame game start --user team-7 --level 1
  lthgame game advance --buy meat-market:patty:40 --produce 20 --sell campus-diner:20
  lthgame game status
  lthgame results list
  lthgame ledger report profit-loss`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "",
		"User (team) id; defaults to 'lthgame config set-user'")
	rootCmd.PersistentFlags().IntVarP(&levelFlag, "level", "l", unsetLevel,
		"Level id; defaults to 'lthgame config set-level'")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log engine activity to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Print results as JSON")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewLevelCommand())
	rootCmd.AddCommand(NewGameCommand())
	rootCmd.AddCommand(NewResultsCommand())
	rootCmd.AddCommand(NewLedgerCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
