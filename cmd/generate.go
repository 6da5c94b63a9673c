package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tristendillon/promify/core/generator"
	"github.com/tristendillon/promify/core/models"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates promise and remote interfaces",
	Long: `Generates promise and remote interfaces for every source file under the
source root, or only for --file. This is also what running promify without a
subcommand does.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&file, "file", "", "Name of a single source file under the source root, without extension")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	appLogger.Debug("generate called")

	gen := generator.NewInterfaceGenerator(appConfig, appLogger)
	summary, err := gen.Run(cmd.Context(), file)
	if errors.Is(err, generator.ErrSourceNotFound) {
		// a missing --file target is reported, not fatal
		appLogger.Error("%v", err)
		return nil
	}

	printSummary(cmd.OutOrStdout(), summary)
	if err != nil {
		return fmt.Errorf("failed to generate interfaces: %w", err)
	}
	return nil
}

func printSummary(w io.Writer, summary *models.RunSummary) {
	if summary == nil {
		return
	}

	ok := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(w, "%s Scanned %d file(s): %d generated, %d skipped, %d patched\n",
		ok("✓"), summary.Scanned, summary.Generated, summary.Skipped, summary.Patched)

	if summary.Failed > 0 {
		fail := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(w, "%s %d file(s) failed, see log above\n", fail("✗"), summary.Failed)
	}
}
