package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/facemood/internal/emoji"
	"github.com/yildizm/facemood/internal/predict"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	f.writeImage(&b, report)
	f.writeResults(&b, report)

	return []byte(b.String()), nil
}

// writeHeader writes a boxed title
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Emotion Analysis"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeImage writes what was submitted and where
func (f *terminalFormatter) writeImage(b *strings.Builder, report *Report) {
	b.WriteString(emoji.GetEmoji("image") + " Image\n")

	items := []termfmt.TreeItem{
		{Label: "File", Value: report.Image},
		{Label: "Type", Value: report.MediaType},
	}
	if report.Endpoint != "" {
		items = append(items, termfmt.TreeItem{Label: "Endpoint", Value: report.Endpoint})
	}
	items[len(items)-1].Last = true

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeResults writes the primary prediction and then the rest in server
// order, each with a confidence bar
func (f *terminalFormatter) writeResults(b *strings.Builder, report *Report) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Results\n")

	primary, ok := report.Primary()
	if !ok {
		b.WriteString(noPredictions + "\n")
		return
	}

	fmt.Fprintf(b, "%s\n%s %s\n", f.label(primary), f.bar(primary), primary.ConfidenceText())

	secondary := report.Secondary()
	if len(secondary) == 0 {
		return
	}

	items := make([]termfmt.TreeItem, 0, len(secondary))
	for i, p := range secondary {
		items = append(items, termfmt.TreeItem{
			Label: f.label(p),
			Value: f.bar(p) + " " + p.PercentText(),
			Last:  i == len(secondary)-1,
		})
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}

func (f *terminalFormatter) bar(p predict.Prediction) string {
	return termfmt.CreateConfidenceBar(p.BarValue()/100, f.opts)
}

func (f *terminalFormatter) label(p predict.Prediction) string {
	if e := emoji.ForEmotion(p.Emotion); e != "" {
		return e + " " + p.Emotion
	}
	return p.Emotion
}
