package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/facemood/internal/config"
	"github.com/yildizm/facemood/internal/formatter"
	"github.com/yildizm/facemood/internal/logger"
	"github.com/yildizm/facemood/internal/media"
	"github.com/yildizm/facemood/internal/predict"
	"github.com/yildizm/facemood/internal/view"
)

var (
	analyzeOutputFile string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Analyze one image and print the detected emotions",
		Long: `Send one image to the prediction server and print the result.

The same rules as the interactive interface apply: the file must be an image,
and any server or network failure is reported as a failed analysis.

Examples:
  facemood analyze face.jpg
  facemood analyze --output json face.png
  facemood analyze --output markdown --output-file report.md face.webp`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runAnalyze,
	}

	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}

	f, err := formatter.New(getOutputFormat(cfg), useColor(cfg) && analyzeOutputFile == "")
	if err != nil {
		return err
	}

	log := newLogger("facemood")
	client, err := predict.New(cfg.PredictConfig(), log)
	if err != nil {
		return fmt.Errorf("invalid endpoint configuration: %w", err)
	}

	report, err := analyzeImage(commandContext(cmd), client, args[0], log)
	if err != nil {
		return err
	}

	output, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if analyzeOutputFile != "" {
		if err := writeOutputBytesToFile(output, analyzeOutputFile); err != nil {
			return err
		}
		if isVerbose() {
			fmt.Fprintf(os.Stderr, "%s Output written to %s\n", GetEmoji("success"), analyzeOutputFile)
		}
		return nil
	}

	return writeOutput(cmd.OutOrStdout(), output)
}

// analyzeImage drives the view through select, analyze and completion so
// headless runs follow the same rules as the interface. Failures carry the
// user-facing message.
func analyzeImage(ctx context.Context, client *predict.Client, path string, log *logger.Logger) (*formatter.Report, error) {
	session := view.NewSession(client, nil, log)

	img, err := media.Load(path)
	if err != nil {
		session.Dispatch(view.SelectionFailed{Err: err, Source: view.SourcePicker})
		return nil, userError(session.State(), err)
	}

	session.Dispatch(view.ImageSelected{Image: img, Source: view.SourcePicker})
	if session.State().HasError() {
		return nil, userError(session.State(), fmt.Errorf("%s has media type %s", img.Name, img.MediaType))
	}

	req := session.Dispatch(view.AnalyzeRequested{})
	if req == nil {
		return nil, &analysisError{message: view.MsgAnalysisFailed}
	}

	start := time.Now()
	ev := session.Run(ctx, *req)
	elapsed := time.Since(start)
	session.Dispatch(ev)

	st := session.State()
	if st.HasError() {
		var cause error
		if failed, ok := ev.(view.AnalysisFailed); ok {
			cause = failed.Err
		}
		return nil, userError(st, cause)
	}

	return &formatter.Report{
		Image:       img.Name,
		MediaType:   img.MediaType,
		Endpoint:    client.Endpoint(),
		Predictions: st.Predictions,
		Elapsed:     elapsed,
	}, nil
}

// analysisError carries the message the view settled on. The underlying
// cause is shown only in verbose mode.
type analysisError struct {
	message string
	cause   error
}

func (e *analysisError) Error() string {
	if e.cause != nil && isVerbose() {
		return fmt.Sprintf("%s (%v)", e.message, e.cause)
	}
	return e.message
}

func (e *analysisError) Unwrap() error {
	return e.cause
}

func userError(st view.State, cause error) error {
	return &analysisError{message: st.Error, cause: cause}
}

// isRejected reports whether err is a refused selection rather than a failed
// analysis
func isRejected(err error) bool {
	var ae *analysisError
	return errors.As(err, &ae) && ae.message == view.MsgInvalidSelection
}

func writeOutput(w io.Writer, output []byte) error {
	if _, err := w.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(output) > 0 && output[len(output)-1] != '\n' {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(config.ExpandPath(filePath))

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}
