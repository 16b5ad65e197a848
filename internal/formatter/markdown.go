package formatter

import (
	"fmt"
	"strings"
	"time"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct {
	now func() time.Time
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{now: time.Now}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Emotion Analysis Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", f.now().Format("2006-01-02 15:04:05"))

	b.WriteString("## Image\n\n")
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	fmt.Fprintf(&b, "| File | %s |\n", escapeCell(report.Image))
	fmt.Fprintf(&b, "| Type | %s |\n", escapeCell(report.MediaType))
	if report.Endpoint != "" {
		fmt.Fprintf(&b, "| Endpoint | %s |\n", escapeCell(report.Endpoint))
	}
	b.WriteString("\n")

	b.WriteString("## Results\n\n")
	primary, ok := report.Primary()
	if !ok {
		b.WriteString("_" + noPredictions + "_\n")
		return []byte(b.String()), nil
	}

	fmt.Fprintf(&b, "**%s**: %s\n\n", primary.Emotion, primary.ConfidenceText())

	if secondary := report.Secondary(); len(secondary) > 0 {
		b.WriteString("| Emotion | Probability |\n")
		b.WriteString("|---------|-------------|\n")
		for _, p := range secondary {
			fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(p.Emotion), p.PercentText())
		}
	}

	return []byte(b.String()), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
