package predict

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Prediction is one emotion label with the probability the classifier gave it.
// Probability keeps the server's decimal string as received.
type Prediction struct {
	Emotion     string `json:"emotion"`
	Probability string `json:"probability"`
}

// Value parses the probability. Decoding has already rejected unparsable
// values, so a zero result only comes from hand-built predictions.
func (p Prediction) Value() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(p.Probability), 64)
	if err != nil {
		return 0
	}
	return v
}

// Percent is the probability scaled to 0..100
func (p Prediction) Percent() float64 {
	return p.Value() * 100
}

// BarValue is Percent clamped to the 0..100 range a confidence bar can show
func (p Prediction) BarValue() float64 {
	v := p.Percent()
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// PercentText formats the probability as a percentage with one decimal place
func (p Prediction) PercentText() string {
	return fmt.Sprintf("%.1f%%", p.Percent())
}

// ConfidenceText is the primary prediction caption, e.g. "82.0% confidence"
func (p Prediction) ConfidenceText() string {
	return p.PercentText() + " confidence"
}

// Result is a decoded /predict response. Predictions keep server order and
// the first one is the primary result.
type Result struct {
	Predictions []Prediction  `json:"predictions"`
	Elapsed     time.Duration `json:"-"`
}

// Primary returns the first prediction, if any
func (r *Result) Primary() (Prediction, bool) {
	if r == nil || len(r.Predictions) == 0 {
		return Prediction{}, false
	}
	return r.Predictions[0], true
}

// Health mirrors the model server's /health payload
type Health struct {
	Status         string `json:"status"`
	Hostname       string `json:"hostname,omitempty"`
	Model          string `json:"model,omitempty"`
	Device         string `json:"device,omitempty"`
	CacheHost      string `json:"cache_host,omitempty"`
	CacheConnected bool   `json:"cache_connected"`
}

// Healthy reports whether the server declared itself healthy
func (h *Health) Healthy() bool {
	return strings.EqualFold(h.Status, "healthy")
}
