package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/tristendillon/promify/core/config"
	"github.com/tristendillon/promify/core/logger"
)

var rootCmd = &cobra.Command{
	Use:   "promify",
	Short: "Generates promise interfaces for async contract functions",
	Long: `Promify scans contract sources for "external async" functions and generates
Remote<Name>.sol files holding a <fn>Promise interface per function and a
Remote<Contract> interface per contract, then imports them into the source.

Run without a subcommand to process every source file, or pass --file to
process a single one.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
	RunE:              runGenerate,
}

var (
	logfile    string
	verbose    bool
	configPath string
	file       string

	appConfig *config.Config
	appLogger *logger.Logger
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to "+config.FileName+" (default: ./"+config.FileName+")")
	rootCmd.Flags().StringVar(&file, "file", "", "Name of a single source file under the source root, without extension")
}

func setup(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	log, err := logger.New(logger.Options{
		Writer:  out,
		Verbose: verbose,
		Color:   color,
		LogFile: logfile,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger = log

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg
	return nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		appLogger.Debug("Using config file: %s", configPath)
		return config.LoadFile(configPath)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, path, err := config.Load(wd)
	if err != nil {
		return nil, err
	}
	if path == "" {
		appLogger.Debug("No config file found, using default config")
	} else {
		appLogger.Debug("Config file found: %s", path)
	}
	appLogger.Debug("Config: %+v", *cfg)
	return cfg, nil
}

func teardown(cmd *cobra.Command, args []string) {
	if appLogger != nil {
		_ = appLogger.Close()
	}
}
