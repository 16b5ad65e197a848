package components

import (
	"github.com/charmbracelet/lipgloss"
)

// CardStyles groups the styles a prediction card needs
type CardStyles struct {
	Box       lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	BarFilled lipgloss.Style
	BarEmpty  lipgloss.Style
}

// PredictionCard shows one emotion label with its probability
type PredictionCard struct {
	Icon     string
	Label    string
	Caption  string
	Percent  float64
	ShowBar  bool
	BarWidth int
	Width    int
	Styles   CardStyles
}

// NewPredictionCard creates a card without a bar
func NewPredictionCard(label, caption string, styles CardStyles) *PredictionCard {
	return &PredictionCard{
		Label:   label,
		Caption: caption,
		Styles:  styles,
	}
}

// SetIcon sets the icon shown before the label
func (c *PredictionCard) SetIcon(icon string) *PredictionCard {
	c.Icon = icon
	return c
}

// SetBar shows a confidence bar of the given width
func (c *PredictionCard) SetBar(percent float64, width int) *PredictionCard {
	c.ShowBar = true
	c.Percent = percent
	c.BarWidth = width
	return c
}

// SetWidth sets the card's outer width
func (c *PredictionCard) SetWidth(width int) *PredictionCard {
	c.Width = width
	return c
}

// Render renders the card. Cards with a bar stack label, bar and caption;
// plain cards put label and caption on one line.
func (c *PredictionCard) Render() string {
	label := c.Styles.Label.Render(c.Label)
	if c.Icon != "" {
		label = c.Icon + " " + label
	}
	caption := c.Styles.Value.Render(c.Caption)

	var content string
	if c.ShowBar {
		bar := NewConfidenceBar(c.BarWidth).
			SetValue(c.Percent).
			SetStyles(c.Styles.BarFilled, c.Styles.BarEmpty)
		content = lipgloss.JoinVertical(lipgloss.Left, label, bar.Render(), caption)
	} else {
		gap := c.Width - lipgloss.Width(label) - lipgloss.Width(caption) - c.Styles.Box.GetHorizontalFrameSize()
		if gap < 1 {
			gap = 1
		}
		content = label + lipgloss.NewStyle().Width(gap).Render("") + caption
	}

	box := c.Styles.Box
	if c.Width > 0 {
		box = box.Width(c.Width - box.GetHorizontalBorderSize())
	}
	return box.Render(content)
}
