package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/yildizm/facemood/internal/config"
	"github.com/yildizm/facemood/internal/emoji"
	"github.com/yildizm/facemood/internal/logger"
	"github.com/yildizm/facemood/internal/ui"
)

var (
	cfgFile     string
	endpointURL string
	verbose     bool
	noColor     bool
	noEmoji     bool
	outputFmt   string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "facemood",
		Short: "Facial emotion analysis from the terminal",
		Long: `facemood sends a face image to an emotion classification server and shows
the emotions it detected, strongest first.

Run it without arguments for the interactive interface, or use the analyze
command for scripted output.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)
			if noColor {
				ui.ApplyColorMode("never")
			}
		},
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runUI,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&endpointURL, "endpoint", "e", "", "prediction server base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, markdown)")

	addUIFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(newUICommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newHealthCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "facemood %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// GetGlobalConfig loads the configuration once per process and applies the
// global flag overrides on top of it
func GetGlobalConfig() (*config.Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	if endpointURL != "" {
		cfg.Endpoint.BaseURL = endpointURL
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid --endpoint: %w", err)
		}
	}

	globalConfig = cfg
	return globalConfig, nil
}

// Global helpers
func isVerbose() bool {
	if verbose {
		return true
	}
	return globalConfig != nil && globalConfig.Output.Verbose
}

func getOutputFormat(cfg *config.Config) string {
	if outputFmt != "" {
		return outputFmt
	}
	return cfg.Output.DefaultFormat
}

func isEmojiDisabled() bool {
	return noEmoji
}

func useColor(cfg *config.Config) bool {
	if noColor || ui.IsColorDisabled() {
		return false
	}
	return cfg.UI.ColorMode != "never"
}

// newLogger creates a component logger gated by the verbose setting
func newLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}

// commandContext returns the command's context, or a background one when the
// command runs outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
