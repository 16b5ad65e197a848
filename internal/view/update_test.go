package view

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yildizm/facemood/internal/media"
	"github.com/yildizm/facemood/internal/predict"
)

func jpeg(name string) *media.Image {
	return &media.Image{Name: name, MediaType: "image/jpeg", Data: []byte("img")}
}

func selected(t *testing.T, name string) State {
	t.Helper()
	s, eff := Update(State{}, ImageSelected{Image: jpeg(name)})
	if eff.Retain == nil {
		t.Fatalf("Expected a preview to be retained")
	}
	return s
}

func TestUpdate_RejectsNonImages(t *testing.T) {
	tests := []struct {
		name  string
		image *media.Image
		src   Source
	}{
		{"text via picker", &media.Image{Name: "notes.txt", MediaType: "text/plain"}, SourcePicker},
		{"pdf via drop", &media.Image{Name: "cv.pdf", MediaType: "application/pdf"}, SourceDrop},
		{"unknown type", &media.Image{Name: "blob"}, SourceDrop},
		{"nil image", nil, SourcePicker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, eff := Update(State{}, ImageSelected{Image: tt.image, Source: tt.src})
			if s.Error != MsgInvalidSelection {
				t.Errorf("Expected error %q, got %q", MsgInvalidSelection, s.Error)
			}
			if s.Preview.Valid() {
				t.Error("Expected no preview for a rejected selection")
			}
			if !eff.None() {
				t.Errorf("Expected no effects, got %+v", eff)
			}
		})
	}
}

func TestUpdate_RejectionKeepsPreviousSelection(t *testing.T) {
	s := selected(t, "first.jpg")
	before := s.Preview

	s, eff := Update(s, ImageSelected{Image: &media.Image{Name: "notes.txt", MediaType: "text/plain"}})

	if s.Preview != before {
		t.Errorf("Expected preview %+v to survive, got %+v", before, s.Preview)
	}
	if s.Image == nil || s.Image.Name != "first.jpg" {
		t.Errorf("Expected first.jpg to remain selected")
	}
	if eff.Release != nil {
		t.Error("Expected the existing preview not to be released")
	}
}

func TestUpdate_AcceptsImage(t *testing.T) {
	s := State{Error: MsgAnalysisFailed, Predictions: []predict.Prediction{{Emotion: "sad", Probability: "0.4"}}, ResultsVisible: true}

	s, eff := Update(s, ImageSelected{Image: jpeg("face.jpg"), Source: SourceDrop})

	if s.Error != "" {
		t.Errorf("Expected error cleared, got %q", s.Error)
	}
	if !s.Preview.Valid() || s.Preview.Name != "face.jpg" {
		t.Errorf("Expected preview for face.jpg, got %+v", s.Preview)
	}
	if len(s.Predictions) != 0 || s.ResultsVisible {
		t.Error("Expected predictions cleared and results hidden")
	}
	if eff.Retain == nil || eff.Retain.Seq != s.Preview.Seq {
		t.Errorf("Expected retain effect for the new preview, got %+v", eff)
	}
}

func TestUpdate_NewSelectionReleasesOldPreview(t *testing.T) {
	s := selected(t, "a.jpg")
	first := s.Preview

	s, eff := Update(s, ImageSelected{Image: jpeg("b.jpg")})

	if eff.Release == nil || eff.Release.Seq != first.Seq {
		t.Fatalf("Expected release of preview %d, got %+v", first.Seq, eff.Release)
	}
	if s.Preview.Seq == first.Seq {
		t.Error("Expected a fresh preview handle")
	}
}

func TestUpdate_AnalyzeWithoutImageIsNoop(t *testing.T) {
	s, eff := Update(State{}, AnalyzeRequested{})
	if s.Loading || eff.Submit != nil {
		t.Errorf("Expected no-op, got loading=%v submit=%v", s.Loading, eff.Submit)
	}
}

func TestUpdate_AnalyzeWhileLoadingIsNoop(t *testing.T) {
	s := selected(t, "face.jpg")
	s, eff := Update(s, AnalyzeRequested{})
	if eff.Submit == nil || !s.Loading {
		t.Fatal("Expected first analyze to submit")
	}
	if s.CanAnalyze() {
		t.Error("Expected Analyze disabled while loading")
	}

	s2, eff2 := Update(s, AnalyzeRequested{})
	if eff2.Submit != nil {
		t.Error("Expected no second submission while loading")
	}
	if s2.InFlight() != s.InFlight() {
		t.Error("Expected in-flight request unchanged")
	}
}

func TestUpdate_AnalyzeSuccess(t *testing.T) {
	s := selected(t, "face.jpg")
	s, eff := Update(s, AnalyzeRequested{})

	s, _ = Update(s, AnalysisSucceeded{RequestID: eff.Submit.ID, Predictions: []predict.Prediction{
		{Emotion: "happy", Probability: "0.82"},
		{Emotion: "neutral", Probability: "0.10"},
	}})

	if !s.ResultsVisible || s.Loading {
		t.Fatalf("Expected results visible and not loading, got visible=%v loading=%v", s.ResultsVisible, s.Loading)
	}

	primary, ok := s.Primary()
	if !ok || primary.Emotion != "happy" || primary.ConfidenceText() != "82.0% confidence" {
		t.Errorf("Unexpected primary %+v", primary)
	}

	secondary := s.Secondary()
	if len(secondary) != 1 || secondary[0].Emotion != "neutral" || secondary[0].PercentText() != "10.0%" {
		t.Errorf("Unexpected secondary %+v", secondary)
	}
	if s.ShowPlaceholder() {
		t.Error("Expected no placeholder with results")
	}
}

func TestUpdate_AnalyzeFailure(t *testing.T) {
	s := selected(t, "face.jpg")
	s, eff := Update(s, AnalyzeRequested{})

	s, _ = Update(s, AnalysisFailed{RequestID: eff.Submit.ID, Err: errors.New("status 500")})

	if s.Error != MsgAnalysisFailed {
		t.Errorf("Expected %q, got %q", MsgAnalysisFailed, s.Error)
	}
	if s.ResultsVisible || s.Loading {
		t.Errorf("Expected results hidden and loading false")
	}
	if !s.ShowPlaceholder() {
		t.Error("Expected placeholder after failure")
	}
}

func TestUpdate_EmptyPredictionsShowPlaceholder(t *testing.T) {
	s := selected(t, "face.jpg")
	s, eff := Update(s, AnalyzeRequested{})
	s, _ = Update(s, AnalysisSucceeded{RequestID: eff.Submit.ID})

	if !s.ResultsVisible {
		t.Error("Expected results visible after success")
	}
	if _, ok := s.Primary(); ok {
		t.Error("Expected no primary for empty predictions")
	}
	if !s.ShowPlaceholder() {
		t.Error("Expected placeholder for empty predictions")
	}
}

func TestUpdate_NewImageAfterAnalysisHidesResults(t *testing.T) {
	s := selected(t, "a.jpg")
	s, eff := Update(s, AnalyzeRequested{})
	s, _ = Update(s, AnalysisSucceeded{RequestID: eff.Submit.ID, Predictions: []predict.Prediction{{Emotion: "happy", Probability: "0.9"}}})

	s, _ = Update(s, ImageSelected{Image: jpeg("b.jpg")})

	if s.ResultsVisible || len(s.Predictions) != 0 {
		t.Error("Expected prior predictions cleared and results hidden")
	}
}

func TestUpdate_StaleCompletionIgnored(t *testing.T) {
	s := selected(t, "a.jpg")
	s, _ = Update(s, AnalysisSucceeded{RequestID: 42, Predictions: []predict.Prediction{{Emotion: "happy", Probability: "1"}}})
	if s.ResultsVisible {
		t.Error("Expected completion without an outstanding request to be ignored")
	}

	s, eff := Update(s, AnalyzeRequested{})
	s, _ = Update(s, AnalysisFailed{RequestID: eff.Submit.ID + 1})
	if !s.Loading || s.Error != "" {
		t.Error("Expected completion for another request id to be ignored")
	}
}

func TestUpdate_ResultsForReplacedImageDiscarded(t *testing.T) {
	s := selected(t, "a.jpg")
	s, eff := Update(s, AnalyzeRequested{})

	s, _ = Update(s, ImageSelected{Image: jpeg("b.jpg")})
	if !s.Loading {
		t.Fatal("Expected request to stay outstanding across a new selection")
	}

	s, _ = Update(s, AnalysisSucceeded{RequestID: eff.Submit.ID, Predictions: []predict.Prediction{{Emotion: "happy", Probability: "0.9"}}})

	if s.Loading {
		t.Error("Expected loading cleared")
	}
	if s.ResultsVisible || len(s.Predictions) != 0 {
		t.Error("Expected results for the replaced image to be discarded")
	}
	if !s.CanAnalyze() {
		t.Error("Expected the new image to be analyzable")
	}
}

func TestUpdate_DismissErrorOnlyClearsError(t *testing.T) {
	s := selected(t, "a.jpg")
	s, eff := Update(s, AnalyzeRequested{})
	s, _ = Update(s, AnalysisFailed{RequestID: eff.Submit.ID})
	s, _ = Update(s, ImageSelected{Image: &media.Image{Name: "x.txt", MediaType: "text/plain"}})

	before := s
	s, eff = Update(s, ErrorDismissed{})

	if s.Error != "" {
		t.Errorf("Expected error cleared, got %q", s.Error)
	}
	before.Error = ""
	if s.Image != before.Image || s.Preview != before.Preview || s.Loading != before.Loading ||
		s.ResultsVisible != before.ResultsVisible || len(s.Predictions) != len(before.Predictions) {
		t.Error("Expected only the error to change")
	}
	if !eff.None() {
		t.Error("Expected no effects from dismiss")
	}
}

func TestUpdate_DragOverChangesNothing(t *testing.T) {
	s := selected(t, "a.jpg")
	s.Error = MsgInvalidSelection

	next, eff := Update(s, DragOver{})
	if next.Error != s.Error || next.Preview != s.Preview || !eff.None() {
		t.Error("Expected drag-over to leave state untouched")
	}
}

func TestUpdate_SelectionFailed(t *testing.T) {
	s := selected(t, "a.jpg")
	s, _ = Update(s, SelectionFailed{Err: errors.New("no such file")})

	if s.Error != MsgInvalidSelection {
		t.Errorf("Expected %q, got %q", MsgInvalidSelection, s.Error)
	}
	if s.Image == nil {
		t.Error("Expected previous selection kept")
	}
}

func TestUpdate_Reset(t *testing.T) {
	s := selected(t, "a.jpg")
	seq := s.Preview.Seq

	s, eff := Update(s, Reset{})
	if s.HasImage() || s.Preview.Valid() {
		t.Error("Expected selection cleared")
	}
	if eff.Release == nil || eff.Release.Seq != seq {
		t.Error("Expected preview released on reset")
	}

	s, _ = Update(s, ImageSelected{Image: jpeg("b.jpg")})
	if s.Preview.Seq == seq {
		t.Error("Expected preview handles never reused")
	}

	s, _ = Update(s, AnalyzeRequested{})
	s, eff = Update(s, Reset{})
	if !s.HasImage() || eff.Release != nil {
		t.Error("Expected reset ignored while loading")
	}
}

type fakePreviews struct {
	live map[uint64]bool
}

func (f *fakePreviews) Retain(seq uint64, _ *media.Image) { f.live[seq] = true }
func (f *fakePreviews) Release(seq uint64)                { delete(f.live, seq) }

func TestSession_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"predictions":[{"emotion":"happy","probability":"0.82"},{"emotion":"neutral","probability":"0.10"}]}`))
	}))
	defer server.Close()

	config := predict.DefaultConfig()
	config.BaseURL = server.URL
	client, err := predict.New(config, nil)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	previews := &fakePreviews{live: map[uint64]bool{}}
	session := NewSession(client, previews, nil)

	session.Dispatch(ImageSelected{Image: jpeg("a.jpg")})
	session.Dispatch(ImageSelected{Image: jpeg("b.jpg")})
	if len(previews.live) != 1 {
		t.Errorf("Expected exactly one live preview, got %d", len(previews.live))
	}

	req := session.Dispatch(AnalyzeRequested{})
	if req == nil {
		t.Fatal("Expected a request")
	}
	if !session.State().Loading {
		t.Error("Expected loading while request outstanding")
	}

	session.Dispatch(session.Run(context.Background(), *req))

	state := session.State()
	if !state.ResultsVisible || state.Loading {
		t.Fatalf("Expected results visible and not loading")
	}
	primary, _ := state.Primary()
	if primary.Emotion != "happy" || primary.ConfidenceText() != "82.0% confidence" {
		t.Errorf("Unexpected primary %+v", primary)
	}

	config.PredictPath = "/fail"
	failing, _ := predict.New(config, nil)
	session.predictor = failing

	req = session.Dispatch(AnalyzeRequested{})
	session.Dispatch(session.Run(context.Background(), *req))

	state = session.State()
	if state.Error != MsgAnalysisFailed || state.ResultsVisible || state.Loading {
		t.Errorf("Expected failure state, got error=%q visible=%v loading=%v", state.Error, state.ResultsVisible, state.Loading)
	}
}

type panickingPredictor struct{}

func (panickingPredictor) Predict(context.Context, *media.Image) (*predict.Result, error) {
	panic("boom")
}

func TestSession_RunAlwaysCompletes(t *testing.T) {
	session := NewSession(panickingPredictor{}, nil, nil)
	session.Dispatch(ImageSelected{Image: jpeg("a.jpg")})
	req := session.Dispatch(AnalyzeRequested{})

	ev := session.Run(context.Background(), *req)
	if _, ok := ev.(AnalysisFailed); !ok {
		t.Fatalf("Expected AnalysisFailed, got %T", ev)
	}

	session.Dispatch(ev)
	if session.State().Loading {
		t.Error("Expected loading cleared after a panicking predictor")
	}
}
