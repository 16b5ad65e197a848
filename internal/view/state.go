package view

import (
	"github.com/yildizm/facemood/internal/media"
	"github.com/yildizm/facemood/internal/predict"
)

// User-facing messages. These are the only two errors a user ever sees.
const (
	MsgInvalidSelection = "Please upload an image file"
	MsgAnalysisFailed   = "Failed to analyze image. Please try again."
)

// Source tells where a selection came from
type Source int

const (
	SourcePicker Source = iota
	SourceDrop
)

func (s Source) String() string {
	if s == SourceDrop {
		return "drop"
	}
	return "picker"
}

// Preview is a local handle to the selected image's bytes, resolved through
// a preview store. The zero value means no preview.
type Preview struct {
	Seq       uint64
	Name      string
	MediaType string
}

// Valid reports whether the handle refers to an image
func (p Preview) Valid() bool {
	return p.Seq != 0
}

// Request is one prediction submission
type Request struct {
	ID    uint64
	Image *media.Image
}

// State is the whole upload-and-predict view
type State struct {
	Image          *media.Image
	Preview        Preview
	Loading        bool
	Error          string
	ResultsVisible bool
	Predictions    []predict.Prediction

	previewSeq     uint64
	requestSeq     uint64
	inFlight       uint64
	inFlightForSeq uint64
}

// HasImage reports whether an image is selected
func (s State) HasImage() bool {
	return s.Image != nil
}

// CanAnalyze mirrors the Analyze control's enabled state
func (s State) CanAnalyze() bool {
	return s.Image != nil && !s.Loading
}

// HasError reports whether the error dialog is open
func (s State) HasError() bool {
	return s.Error != ""
}

// InFlight returns the outstanding request id, or zero
func (s State) InFlight() uint64 {
	return s.inFlight
}

// Primary returns the prediction rendered with emphasis
func (s State) Primary() (predict.Prediction, bool) {
	if !s.ResultsVisible || len(s.Predictions) == 0 {
		return predict.Prediction{}, false
	}
	return s.Predictions[0], true
}

// Secondary returns every prediction after the primary, in response order
func (s State) Secondary() []predict.Prediction {
	if !s.ResultsVisible || len(s.Predictions) < 2 {
		return nil
	}
	return s.Predictions[1:]
}

// ShowPlaceholder reports whether the results area shows the prompt text
func (s State) ShowPlaceholder() bool {
	return !s.ResultsVisible || len(s.Predictions) == 0
}
