package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yildizm/facemood/internal/config"
	"github.com/yildizm/facemood/internal/logger"
	"github.com/yildizm/facemood/internal/predict"
	"github.com/yildizm/facemood/internal/ui"
	"github.com/yildizm/facemood/internal/watch"
)

var (
	uiDropDir   string
	uiTheme     string
	uiNoPreview bool
)

func newUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui [image]",
		Short: "Open the interactive interface",
		Long: `Open the interactive interface. An image path given as argument is selected
on start. Paste a path into the terminal (or drag a file onto it) to drop an
image, press o to type a path, a to analyze.

Examples:
  facemood ui
  facemood ui face.jpg
  facemood ui --drop-dir ~/Pictures/inbox`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUI,
	}

	addUIFlags(cmd)
	return cmd
}

func addUIFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&uiDropDir, "drop-dir", "", "watch a directory and treat new image files as drops")
	cmd.Flags().StringVar(&uiTheme, "theme", "", "color theme (default, high-contrast, minimal)")
	cmd.Flags().BoolVar(&uiNoPreview, "no-preview", false, "do not draw image thumbnails")
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}

	log := newLogger("facemood")
	closeLog, err := redirectUILog(log, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := predict.New(cfg.PredictConfig(), log)
	if err != nil {
		return fmt.Errorf("invalid endpoint configuration: %w", err)
	}

	theme := cfg.UI.Theme
	if uiTheme != "" {
		theme = uiTheme
	}
	if !ui.SetThemeByName(theme) {
		return fmt.Errorf("unknown theme: %s", theme)
	}
	ui.ApplyColorMode(colorMode(cfg))

	opts := ui.Options{
		Predictor:     client,
		Endpoint:      client.Endpoint(),
		Preview:       cfg.UI.Preview && !uiNoPreview,
		PreviewWidth:  cfg.UI.PreviewWidth,
		PreviewHeight: cfg.UI.PreviewHeight,
		Logger:        log,
	}
	if len(args) == 1 {
		opts.InitialImage = args[0]
	}

	dropDir := cfg.UI.DropDir
	if uiDropDir != "" {
		dropDir = uiDropDir
	}
	if dropDir != "" {
		drop, err := watch.NewDropDir(config.ExpandPath(dropDir), log)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(commandContext(cmd))
		defer cancel()
		opts.Drops = drop.Run(ctx)
		log.Info("watching %s for dropped images", drop.Dir())
	}

	return ui.Run(opts)
}

// redirectUILog keeps diagnostics off the alternate screen
func redirectUILog(log *logger.Logger, cfg *config.Config) (func(), error) {
	if cfg.Log.File == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	file, err := os.OpenFile(config.ExpandPath(cfg.Log.File), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(file)

	return func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
	}, nil
}

func colorMode(cfg *config.Config) string {
	if noColor {
		return "never"
	}
	return cfg.UI.ColorMode
}
