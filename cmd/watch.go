package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tristendillon/promify/core/generator"
	"github.com/tristendillon/promify/core/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate interfaces whenever a source file changes",
	Long: `Runs a full generation, then watches the source root and regenerates the
interfaces of every source file that is written or created.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appLogger.Debug("watch called")
		gen := generator.NewInterfaceGenerator(appConfig, appLogger)

		summary, err := gen.RunAll(cmd.Context())
		printSummary(cmd.OutOrStdout(), summary)
		if err != nil {
			appLogger.Error("Initial generation failed: %v", err)
		}

		fw, err := watcher.NewFileWatcher(appConfig, appLogger, func(paths []string) {
			for _, path := range paths {
				if _, err := gen.GenerateFile(path); err != nil {
					if errors.Is(err, os.ErrNotExist) {
						appLogger.Debug("Skipping vanished file: %s", path)
						continue
					}
					appLogger.Error("Failed to process %s: %v", path, err)
				}
			}
		})
		if err != nil {
			return err
		}

		if err := fw.Watch(cmd.Context()); err != nil {
			return fmt.Errorf("watcher stopped: %w", err)
		}
		appLogger.Info("Stopped watching")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
