package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/facemood/internal/config"
	"github.com/yildizm/facemood/internal/formatter"
	"github.com/yildizm/facemood/internal/logger"
	"github.com/yildizm/facemood/internal/monitor"
	"github.com/yildizm/facemood/internal/predict"
	"github.com/yildizm/facemood/internal/watch"
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Analyze every image dropped into a directory",
		Long: `Watch a directory and analyze each file that appears in it.

Each new file is handled like a drop onto the interface: non-images are
rejected with the usual message and failures do not stop the watch. The
directory defaults to ui.drop_dir from the configuration. Press Ctrl+C to stop.

Examples:
  facemood watch ~/Pictures/inbox
  facemood watch --output json ./drops`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runWatch,
	}

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}

	dir := cfg.UI.DropDir
	if len(args) > 0 {
		dir = args[0]
	}
	if err := validateWatchDir(dir); err != nil {
		return fmt.Errorf("invalid drop directory: %w", err)
	}

	f, err := formatter.New(getOutputFormat(cfg), useColor(cfg))
	if err != nil {
		return err
	}

	log := newLogger("facemood")
	client, err := predict.New(cfg.PredictConfig(), log)
	if err != nil {
		return fmt.Errorf("invalid endpoint configuration: %w", err)
	}

	drop, err := watch.NewDropDir(filepath.Clean(config.ExpandPath(dir)), log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "%s Watching %s\n", GetEmoji("drop"), drop.Dir())
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
	}

	tracker := monitor.NewTracker()
	watchLoop(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), drop.Run(ctx), client, f, tracker, log)

	if snap := tracker.Snapshot(); snap.Total() > 0 || isVerbose() {
		fmt.Fprintf(cmd.ErrOrStderr(), "\n%s Stopped watching %s: %s\n", GetEmoji("info"), drop.Dir(), snap)
	}
	return nil
}

// watchLoop analyzes each path until the channel closes. A failed file is
// reported and the loop moves on.
func watchLoop(ctx context.Context, out, errOut io.Writer, paths <-chan string, client *predict.Client, f formatter.Formatter, tracker *monitor.Tracker, log *logger.Logger) {
	for path := range paths {
		start := time.Now()
		report, err := analyzeImage(ctx, client, path, log)
		switch {
		case err == nil:
			tracker.Record(monitor.OutcomeAnalyzed, report.Elapsed)
		case isRejected(err):
			tracker.Record(monitor.OutcomeRejected, 0)
		default:
			tracker.Record(monitor.OutcomeFailed, time.Since(start))
		}
		if err != nil {
			fmt.Fprintf(errOut, "%s %s: %v\n", GetEmoji("error"), filepath.Base(path), err)
			continue
		}

		output, err := f.Format(report)
		if err != nil {
			fmt.Fprintf(errOut, "%s %s: failed to format output: %v\n", GetEmoji("error"), filepath.Base(path), err)
			continue
		}

		if err := writeOutput(out, output); err != nil {
			log.Warn("%v", err)
		}
	}
}

// validateWatchDir validates that a path is a directory that can be watched
func validateWatchDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("no directory given and ui.drop_dir is not set")
	}

	info, err := os.Stat(filepath.Clean(config.ExpandPath(path)))
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}

	return nil
}
