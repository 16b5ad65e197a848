package view

import (
	"github.com/yildizm/facemood/internal/media"
	"github.com/yildizm/facemood/internal/predict"
)

// Event is anything that can change the view
type Event interface {
	isEvent()
}

// ImageSelected is a file chosen with the picker or dropped onto the view
type ImageSelected struct {
	Image  *media.Image
	Source Source
}

// SelectionFailed is a picker or drop that yielded no readable file
type SelectionFailed struct {
	Err    error
	Source Source
}

// DragOver is a drag hovering the drop area
type DragOver struct{}

// AnalyzeRequested is the Analyze control being triggered
type AnalyzeRequested struct{}

// AnalysisSucceeded completes a request with the server's predictions
type AnalysisSucceeded struct {
	RequestID   uint64
	Predictions []predict.Prediction
}

// AnalysisFailed completes a request that could not be analyzed
type AnalysisFailed struct {
	RequestID uint64
	Err       error
}

// ErrorDismissed is the error dialog's close action
type ErrorDismissed struct{}

// Reset clears the selection and results
type Reset struct{}

func (ImageSelected) isEvent()     {}
func (SelectionFailed) isEvent()   {}
func (DragOver) isEvent()          {}
func (AnalyzeRequested) isEvent()  {}
func (AnalysisSucceeded) isEvent() {}
func (AnalysisFailed) isEvent()    {}
func (ErrorDismissed) isEvent()    {}
func (Reset) isEvent()             {}

// Effect lists the side effects an update asks the runtime to perform
type Effect struct {
	// Submit is a prediction request to issue
	Submit *Request

	// Retain is a new preview handle to register for the selected image
	Retain *Preview

	// Release is a superseded preview handle to free
	Release *Preview
}

// None reports whether the effect is empty
func (e Effect) None() bool {
	return e.Submit == nil && e.Retain == nil && e.Release == nil
}

// Update returns the next state for an event. It never performs I/O.
func Update(s State, ev Event) (State, Effect) {
	switch ev := ev.(type) {
	case ImageSelected:
		return selectImage(s, ev.Image)
	case SelectionFailed:
		s.Error = MsgInvalidSelection
		return s, Effect{}
	case DragOver:
		return s, Effect{}
	case AnalyzeRequested:
		return analyze(s)
	case AnalysisSucceeded:
		return complete(s, ev.RequestID, ev.Predictions, nil)
	case AnalysisFailed:
		return complete(s, ev.RequestID, nil, ev.Err)
	case ErrorDismissed:
		s.Error = ""
		return s, Effect{}
	case Reset:
		return reset(s)
	}
	return s, Effect{}
}

// selectImage keeps everything from the previous selection when the new one
// is rejected
func selectImage(s State, img *media.Image) (State, Effect) {
	if img == nil || !img.IsImage() {
		s.Error = MsgInvalidSelection
		return s, Effect{}
	}

	var eff Effect
	if s.Preview.Valid() {
		old := s.Preview
		eff.Release = &old
	}

	s.previewSeq++
	s.Preview = Preview{Seq: s.previewSeq, Name: img.Name, MediaType: img.MediaType}
	retained := s.Preview
	eff.Retain = &retained

	s.Image = img
	s.Error = ""
	s.Predictions = nil
	s.ResultsVisible = false

	return s, eff
}

func analyze(s State) (State, Effect) {
	if !s.CanAnalyze() {
		return s, Effect{}
	}

	s.requestSeq++
	s.inFlight = s.requestSeq
	s.inFlightForSeq = s.Preview.Seq

	s.Loading = true
	s.Error = ""
	s.ResultsVisible = false

	return s, Effect{Submit: &Request{ID: s.inFlight, Image: s.Image}}
}

// complete is the finalizer shared by both outcomes: loading always drops
func complete(s State, id uint64, predictions []predict.Prediction, err error) (State, Effect) {
	if !s.Loading || id != s.inFlight {
		return s, Effect{}
	}

	imageChanged := s.inFlightForSeq != s.Preview.Seq
	s.Loading = false
	s.inFlight = 0
	s.inFlightForSeq = 0

	if err != nil {
		s.Error = MsgAnalysisFailed
		s.ResultsVisible = false
		return s, Effect{}
	}

	// Results for an image that has since been replaced are dropped
	if imageChanged {
		return s, Effect{}
	}

	s.Predictions = append([]predict.Prediction(nil), predictions...)
	s.ResultsVisible = true
	return s, Effect{}
}

func reset(s State) (State, Effect) {
	if s.Loading {
		return s, Effect{}
	}

	var eff Effect
	if s.Preview.Valid() {
		old := s.Preview
		eff.Release = &old
	}

	s.Image = nil
	s.Preview = Preview{}
	s.Error = ""
	s.Predictions = nil
	s.ResultsVisible = false

	return s, eff
}
