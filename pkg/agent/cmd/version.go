package cmd

import (
	"github.com/spf13/cobra"

	"github.com/conntrail/conntrail/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "show the agent version",
	Run: func(cmd *cobra.Command, args []string) {
		version.PrintVersion()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
