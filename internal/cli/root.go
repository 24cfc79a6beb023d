package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "execdash",
	Short: "Executive analytics dashboard over the e-commerce warehouse",
	Long: `execdash serves the executive dashboard API over a BigQuery warehouse
(or a local libsql sample warehouse) and renders dashboard snapshots in the
terminal.

Configuration is read from .env.local, .env and EXECDASH_* environment
variables.`,
	SilenceUsage: true,
}

var envFiles []string

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Env files to load (default .env.local,.env)")
}
