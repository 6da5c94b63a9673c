package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tristendillon/promify/core/config"
)

var (
	force bool
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default " + config.FileName,
	Long:  `Creates a ` + config.FileName + ` holding the default settings in dir (the current directory by default).`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appLogger.Debug("init called")
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		path := filepath.Join(dir, config.FileName)
		if err := config.Default().Write(path, force); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "Force overwrite an existing config")
}
