package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-filemeta/internal/cli"
	"github.com/deploymenttheory/go-filemeta/internal/config"
	"github.com/deploymenttheory/go-filemeta/internal/fileanalyzer"
	"github.com/deploymenttheory/go-filemeta/internal/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "filemeta [flags] <path>...",
		Short: "Detect file types and extract their metadata",
		Long: `Detects the type of each file from its leading magic bytes and extracts
filesystem attributes and format specific metadata for PDF, text, JPEG, PNG,
BMP, GIF, ZIP and WAV files.`,
		Args:              requirePaths,
		PersistentPreRunE: setupLogging,
		RunE:              runFilemeta,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./filemeta.yaml)")

	// Logging flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose debugging output")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("log-file", "", "log to file instead of stderr")

	// Extraction flags
	rootCmd.Flags().StringP("mode", "m", "", "metadata to extract: basic, specialized or both (prompts when omitted)")

	// Batch flags
	rootCmd.Flags().StringP("output", "o", "", "write a report to this file instead of printing")
	rootCmd.Flags().StringP("format", "f", "json", "report format: json or plist")
	rootCmd.Flags().IntP("workers", "w", 4, "number of concurrent workers in report mode")
	rootCmd.Flags().Bool("hash", false, "add the SHA3-256 digest of each file to the report")

	// Execute
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrFilesFailed) {
			logger.Errorf("Error executing command: %v", err)
		}
		os.Exit(1)
	}
}

// requirePaths rejects an invocation without input files
func requirePaths(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		cmd.Usage()
		return errors.New("no input files given")
	}
	return nil
}

// setupLogging loads the configuration and configures the logger from it
func setupLogging(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	if cfg.Verbose {
		logger.SetLevel(logger.LevelDebug)
		logger.Debugf("Debug logging enabled")
	} else {
		logger.SetLevel(logger.LevelWarning)
	}

	if cfg.NoColor {
		logger.DisableColors()
	}

	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logger.Errorf("Failed to open log file: %v", err)
		} else {
			// Disable colors when logging to file
			logger.DisableColors()
			logger.Initialize(file, file, file, file)
			logger.Infof("Logging to file: %s", cfg.LogFile)
		}
	}

	return nil
}

func runFilemeta(cmd *cobra.Command, args []string) error {
	manager := fileanalyzer.NewManager()
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	mode := fileanalyzer.ModeBoth
	if cfg.Mode != "" {
		parsed, err := fileanalyzer.ParseMode(cfg.Mode)
		if err != nil {
			return err
		}
		mode = parsed
	}

	if cfg.Batch() {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return cli.RunBatch(ctx, manager, cli.BatchOptions{
			Output:  cfg.Output,
			Format:  cfg.Format,
			Workers: cfg.Workers,
			Mode:    mode,
			Hash:    cfg.Hash,
		}, args)
	}

	var prompter cli.Prompter = cli.FixedMode(mode)
	if cfg.Mode == "" && interactive {
		prompter = cli.NewSurveyPrompter()
	}

	colors := !cfg.NoColor && isatty.IsTerminal(os.Stdout.Fd())
	runner := cli.NewRunner(manager, prompter, cli.NewRenderer(cmd.OutOrStdout(), colors))
	if err := runner.Run(args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}
	return nil
}
