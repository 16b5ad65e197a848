package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfidenceBar draws a value between 0 and 100 as a fixed-width bar
type ConfidenceBar struct {
	Width  int
	Value  float64
	Filled lipgloss.Style
	Empty  lipgloss.Style
}

// NewConfidenceBar creates a bar with unstyled cells
func NewConfidenceBar(width int) *ConfidenceBar {
	return &ConfidenceBar{
		Width:  width,
		Filled: lipgloss.NewStyle(),
		Empty:  lipgloss.NewStyle(),
	}
}

// SetValue sets the bar value, clamped to 0..100
func (b *ConfidenceBar) SetValue(value float64) *ConfidenceBar {
	if math.IsNaN(value) {
		value = 0
	}
	b.Value = math.Max(0, math.Min(100, value))
	return b
}

// SetStyles sets the filled and empty cell styles
func (b *ConfidenceBar) SetStyles(filled, empty lipgloss.Style) *ConfidenceBar {
	b.Filled = filled
	b.Empty = empty
	return b
}

// FilledCells returns how many cells the current value fills
func (b *ConfidenceBar) FilledCells() int {
	if b.Width <= 0 {
		return 0
	}
	return int(math.Round(float64(b.Width) * b.Value / 100))
}

// Render renders the bar
func (b *ConfidenceBar) Render() string {
	if b.Width <= 0 {
		return ""
	}
	filled := b.FilledCells()
	return b.Filled.Render(strings.Repeat("█", filled)) +
		b.Empty.Render(strings.Repeat("░", b.Width-filled))
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner represents a spinning progress indicator
type Spinner struct {
	Frame int
	Label string
	Style lipgloss.Style
}

// NewSpinner creates a new spinner
func NewSpinner() *Spinner {
	return &Spinner{Style: lipgloss.NewStyle()}
}

// SetLabel sets the spinner label
func (s *Spinner) SetLabel(label string) {
	s.Label = label
}

// Tick advances the spinner animation
func (s *Spinner) Tick() {
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
}

// Render renders the spinner
func (s *Spinner) Render() string {
	spinner := s.Style.Render(spinnerFrames[s.Frame])
	if s.Label != "" {
		return spinner + " " + s.Label
	}
	return spinner
}
