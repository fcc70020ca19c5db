package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	// Skips service wiring so version works without a config directory.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("incentiva version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
