package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/facemood/internal/media"
	"github.com/yildizm/facemood/internal/view"
)

// predictionDoneMsg carries a completion event back into the loop
type predictionDoneMsg struct {
	ev view.Event
}

// fileLoadedMsg is the outcome of reading a chosen or dropped file
type fileLoadedMsg struct {
	image  *media.Image
	source view.Source
	err    error
}

// dropMsg is a file that appeared in the drop directory
type dropMsg struct {
	path string
}

// Animation message
type tickMsg time.Time

// Animation command
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// runPrediction performs a request off the event loop
func runPrediction(session *view.Session, req view.Request) tea.Cmd {
	return func() tea.Msg {
		return predictionDoneMsg{ev: session.Run(context.Background(), req)}
	}
}

// loadFile reads a file off the event loop
func loadFile(path string, source view.Source) tea.Cmd {
	return func() tea.Msg {
		img, err := media.Load(path)
		return fileLoadedMsg{image: img, source: source, err: err}
	}
}

// waitForDrop blocks until the watcher reports a file. It returns nil once
// the channel is closed, which ends the subscription.
func waitForDrop(drops <-chan string) tea.Cmd {
	if drops == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-drops
		if !ok {
			return nil
		}
		return dropMsg{path: path}
	}
}
