package formatter

import (
	"fmt"
	"time"

	"github.com/yildizm/facemood/internal/predict"
)

// Report is one analyzed image and what the server said about it
type Report struct {
	Image       string
	MediaType   string
	Endpoint    string
	Predictions []predict.Prediction
	Elapsed     time.Duration
}

// Primary returns the first prediction, if any
func (r *Report) Primary() (predict.Prediction, bool) {
	if len(r.Predictions) == 0 {
		return predict.Prediction{}, false
	}
	return r.Predictions[0], true
}

// Secondary returns every prediction after the primary one, in server order
func (r *Report) Secondary() []predict.Prediction {
	if len(r.Predictions) < 2 {
		return nil
	}
	return r.Predictions[1:]
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// New returns the formatter for a format name
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "text", "":
		return NewTerminal(color), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use text, json or markdown)", format)
	}
}

const noPredictions = "No emotions were returned for this image"
