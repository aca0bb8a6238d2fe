package cmd

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"meezy.GO/config"
)

var rootCmd = &cobra.Command{
	Use:   "meezy",
	Short: "Meezy POS register tooling",
	Long:  "Command-line tooling for the Meezy POS register: cron jobs, daily stats and the terminal register.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadAppConfig()
	},
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewFigure("Meezy POS", "", true)
		banner.Print()
		fmt.Println()
		cmd.Help()
	},
}

// Execute runs the CLI. Custom packages register their commands during init;
// Apply locks the command registry before dispatch.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
