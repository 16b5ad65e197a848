package formatter

import (
	"encoding/json"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// JSONOutput is the document written by the JSON formatter
type JSONOutput struct {
	Image       ImageOutput        `json:"image"`
	Endpoint    string             `json:"endpoint,omitempty"`
	ElapsedMS   int64              `json:"elapsed_ms"`
	Primary     *PredictionOutput  `json:"primary"`
	Predictions []PredictionOutput `json:"predictions"`
}

// ImageOutput describes the submitted file
type ImageOutput struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
}

// PredictionOutput is one prediction with its raw and scaled probability
type PredictionOutput struct {
	Emotion     string  `json:"emotion"`
	Probability string  `json:"probability"`
	Percent     float64 `json:"percent"`
}

func (f *jsonFormatter) Format(report *Report) ([]byte, error) {
	output := &JSONOutput{
		Image:       ImageOutput{Name: report.Image, MediaType: report.MediaType},
		Endpoint:    report.Endpoint,
		ElapsedMS:   report.Elapsed.Milliseconds(),
		Predictions: make([]PredictionOutput, 0, len(report.Predictions)),
	}

	for _, p := range report.Predictions {
		output.Predictions = append(output.Predictions, PredictionOutput{
			Emotion:     p.Emotion,
			Probability: p.Probability,
			Percent:     p.Percent(),
		})
	}
	if len(output.Predictions) > 0 {
		primary := output.Predictions[0]
		output.Primary = &primary
	}

	return json.MarshalIndent(output, "", "  ")
}
