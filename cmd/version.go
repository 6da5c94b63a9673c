package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tristendillon/promify/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of Promify",
	Long:  `Displays the version of Promify.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Promify %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
