package view

import (
	"context"
	"fmt"

	"github.com/yildizm/facemood/internal/logger"
	"github.com/yildizm/facemood/internal/media"
	"github.com/yildizm/facemood/internal/predict"
)

// Predictor performs the network call for a request
type Predictor interface {
	Predict(ctx context.Context, img *media.Image) (*predict.Result, error)
}

// Previews keeps the bytes behind preview handles
type Previews interface {
	Retain(seq uint64, img *media.Image)
	Release(seq uint64)
}

// Session owns a State and applies the effects Update asks for. Dispatch
// must be called from a single goroutine; Run is safe to call from another.
type Session struct {
	state     State
	predictor Predictor
	previews  Previews
	log       *logger.Logger
}

// NewSession creates a session; previews may be nil when nothing is displayed
func NewSession(predictor Predictor, previews Previews, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		predictor: predictor,
		previews:  previews,
		log:       log.WithComponent("view"),
	}
}

// State returns the current view state
func (s *Session) State() State {
	return s.state
}

// Dispatch applies an event and returns the request to run, if any
func (s *Session) Dispatch(ev Event) *Request {
	prevErr := s.state.Error
	next, eff := Update(s.state, ev)
	s.state = next

	s.trace(ev, prevErr)

	if s.previews != nil {
		if eff.Retain != nil {
			s.previews.Retain(eff.Retain.Seq, s.state.Image)
		}
		if eff.Release != nil {
			s.previews.Release(eff.Release.Seq)
		}
	}

	return eff.Submit
}

// Run performs a request and reports its outcome as an event. It always
// returns a completion event so the loading flag is always cleared.
func (s *Session) Run(ctx context.Context, req Request) (ev Event) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("prediction panicked: %v", r)
			ev = AnalysisFailed{RequestID: req.ID, Err: fmt.Errorf("prediction panicked: %v", r)}
		}
	}()

	if s.predictor == nil {
		return AnalysisFailed{RequestID: req.ID, Err: fmt.Errorf("no predictor configured")}
	}

	result, err := s.predictor.Predict(ctx, req.Image)
	if err != nil {
		return AnalysisFailed{RequestID: req.ID, Err: err}
	}
	return AnalysisSucceeded{RequestID: req.ID, Predictions: result.Predictions}
}

func (s *Session) trace(ev Event, prevErr string) {
	switch ev := ev.(type) {
	case ImageSelected:
		if s.state.Error == MsgInvalidSelection {
			mediaType := ""
			if ev.Image != nil {
				mediaType = ev.Image.MediaType
			}
			s.log.DebugWithFields("selection rejected", []logger.Field{
				logger.F("source", ev.Source), logger.F("media_type", mediaType),
			})
			return
		}
		s.log.DebugWithFields("image selected", []logger.Field{
			logger.F("source", ev.Source), logger.F("name", ev.Image.Name), logger.F("preview", s.state.Preview.Seq),
		})
	case SelectionFailed:
		s.log.DebugWithFields("selection unreadable", []logger.Field{logger.F("source", ev.Source), logger.Error(ev.Err)})
	case AnalysisFailed:
		if s.state.Error == MsgAnalysisFailed && prevErr != MsgAnalysisFailed {
			s.log.WarnWithFields("analysis failed", []logger.Field{
				logger.F("request", ev.RequestID), logger.F("kind", predict.KindOf(ev.Err)), logger.Error(ev.Err),
			})
		}
	case AnalysisSucceeded:
		s.log.DebugWithFields("analysis complete", []logger.Field{
			logger.F("request", ev.RequestID), logger.Count(len(ev.Predictions)), logger.F("shown", s.state.ResultsVisible),
		})
	}
}
