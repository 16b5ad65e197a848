package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/facemood/internal/emoji"
	"github.com/yildizm/facemood/internal/logger"
	"github.com/yildizm/facemood/internal/media"
	"github.com/yildizm/facemood/internal/preview"
	"github.com/yildizm/facemood/internal/ui/components"
	"github.com/yildizm/facemood/internal/view"
)

// Placeholder and control captions
const (
	captionChoose      = "Choose Image"
	captionDrop        = "or drag and drop an image here"
	captionAnalyze     = "Analyze Image"
	captionAnalyzing   = "Analyzing..."
	captionResults     = "Results"
	captionPlaceholder = "Upload and analyze an image to see results"
	captionErrorTitle  = "Error"
	captionClose       = "Close"
)

// Options configures the interface
type Options struct {
	Predictor     view.Predictor
	Endpoint      string
	Preview       bool
	PreviewWidth  int
	PreviewHeight int
	InitialImage  string
	Drops         <-chan string
	Logger        *logger.Logger
}

// Model is the bubbletea model for the upload-and-predict screen
type Model struct {
	session  *view.Session
	previews *preview.Store
	opts     Options
	styles   *Styles
	spinner  *components.Spinner
	log      *logger.Logger

	width    int
	height   int
	ticking  bool
	quitting bool
	showHelp bool
	notice   string

	// Path prompt
	prompting bool
	input     []rune
}

// NewModel creates the model and its view session
func NewModel(opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	if opts.PreviewWidth <= 0 {
		opts.PreviewWidth = 32
	}
	if opts.PreviewHeight <= 0 {
		opts.PreviewHeight = 16
	}

	previews := preview.NewStore()
	styles := GetStyles()

	spinner := components.NewSpinner()
	spinner.SetLabel(captionAnalyzing)
	spinner.Style = styles.Spinner

	return &Model{
		session:  view.NewSession(opts.Predictor, previews, log),
		previews: previews,
		opts:     opts,
		styles:   styles,
		spinner:  spinner,
		log:      log.WithComponent("ui"),
	}
}

// State exposes the view state
func (m *Model) State() view.State {
	return m.session.State()
}

// Init loads the initial image and subscribes to the drop directory
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.opts.InitialImage != "" {
		cmds = append(cmds, loadFile(m.opts.InitialImage, view.SourcePicker))
	}
	cmds = append(cmds, waitForDrop(m.opts.Drops))
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case fileLoadedMsg:
		m.handleLoaded(msg)

	case dropMsg:
		m.log.Debug("drop directory delivered %s", msg.path)
		return m, tea.Batch(m.drop(msg.path), waitForDrop(m.opts.Drops))

	case predictionDoneMsg:
		m.session.Dispatch(msg.ev)

	case tickMsg:
		if !m.session.State().Loading {
			m.ticking = false
			return m, nil
		}
		m.spinner.Tick()
		return m, tick()
	}

	return m, nil
}

// handleKeyPress routes keys. While the error dialog is open only its
// dismiss keys and ctrl+c are honoured.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.session.State().HasError() {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc, tea.KeySpace:
			m.session.Dispatch(view.ErrorDismissed{})
		}
		return m, nil
	}

	if m.prompting {
		return m.handlePromptKey(msg)
	}

	if msg.Paste {
		return m, m.drop(string(msg.Runes))
	}

	m.notice = ""

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
	case "esc":
		m.showHelp = false
	case "o":
		m.showHelp = false
		m.prompting = true
		m.input = m.input[:0]
	case "a", "enter":
		m.showHelp = false
		return m, m.analyze()
	case "r":
		m.session.Dispatch(view.Reset{})
	case "t":
		name := NextTheme()
		m.styles = GetStyles()
		m.spinner.Style = m.styles.Spinner
		m.notice = "Theme: " + name
	}

	return m, nil
}

// handlePromptKey edits the path prompt. An empty submission is a
// cancelled picker and changes nothing.
func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompting = false
		m.input = m.input[:0]
	case tea.KeyEnter:
		path := media.CleanDroppedPath(string(m.input))
		m.prompting = false
		m.input = m.input[:0]
		if path == "" {
			return m, nil
		}
		return m, loadFile(path, view.SourcePicker)
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

// drop handles a path delivered by paste or the drop directory
func (m *Model) drop(raw string) tea.Cmd {
	m.session.Dispatch(view.DragOver{})
	path := media.CleanDroppedPath(raw)
	if path == "" {
		return nil
	}
	return loadFile(path, view.SourceDrop)
}

func (m *Model) handleLoaded(msg fileLoadedMsg) {
	if msg.err != nil {
		m.session.Dispatch(view.SelectionFailed{Err: msg.err, Source: msg.source})
		return
	}
	m.session.Dispatch(view.ImageSelected{Image: msg.image, Source: msg.source})
}

// analyze submits the selected image and starts the spinner
func (m *Model) analyze() tea.Cmd {
	req := m.session.Dispatch(view.AnalyzeRequested{})
	if req == nil {
		return nil
	}

	cmds := []tea.Cmd{runPrediction(m.session, *req)}
	if !m.ticking {
		m.ticking = true
		cmds = append(cmds, tick())
	}
	return tea.Batch(cmds...)
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	width, height := m.width, m.height
	if width == 0 {
		width = 100
	}

	st := m.session.State()
	if st.HasError() {
		return m.renderErrorDialog(st.Error, width, height)
	}
	if m.showHelp {
		return m.renderHelp(width, height)
	}

	var body string
	if width >= 96 {
		panelWidth := minInt((width-1)/2, 64)
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderUploadPanel(st, panelWidth),
			" ",
			m.renderResultsPanel(st, panelWidth),
		)
	} else {
		panelWidth := minInt(width, 72)
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.renderUploadPanel(st, panelWidth),
			m.renderResultsPanel(st, panelWidth),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		"",
		body,
		"",
		m.renderFooter(),
	)
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render("facemood")
	if m.opts.Endpoint == "" {
		return title
	}
	return title + m.styles.Muted.Render(m.opts.Endpoint)
}

// panelInner is the content width of a panel of the given outer width
func (m *Model) panelInner(width int) int {
	return maxInt(width-m.styles.Panel.GetHorizontalFrameSize(), 10)
}

func (m *Model) renderUploadPanel(st view.State, width int) string {
	inner := m.panelInner(width)
	lines := []string{m.styles.Header.Render(emoji.GetEmoji("image") + " Upload Image"), ""}

	if st.HasImage() {
		if m.opts.Preview {
			if thumb, ok := m.previews.Thumbnail(st.Preview.Seq, minInt(m.opts.PreviewWidth, inner), m.opts.PreviewHeight); ok {
				lines = append(lines, thumb, "")
			}
		}
		lines = append(lines,
			m.styles.Body.Render(st.Image.Name),
			m.styles.Muted.Render(fmt.Sprintf("%s · %s", st.Image.MediaType, formatBytes(st.Image.Size()))),
		)
	} else {
		zone := m.styles.DropZone.Width(inner - m.styles.DropZone.GetHorizontalBorderSize())
		lines = append(lines, zone.Render(lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Button.Render(captionChoose),
			"",
			m.styles.Muted.Render(captionDrop),
		)))
	}

	lines = append(lines, "", m.renderAnalyzeControl(st))

	return m.styles.Panel.Width(width - m.styles.Panel.GetHorizontalBorderSize()).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}

func (m *Model) renderAnalyzeControl(st view.State) string {
	switch {
	case st.Loading:
		return m.styles.ButtonDisabled.Render(m.spinner.Render())
	case st.CanAnalyze():
		return m.styles.Button.Render(captionAnalyze)
	default:
		return m.styles.ButtonDisabled.Render(captionAnalyze)
	}
}

func (m *Model) renderResultsPanel(st view.State, width int) string {
	inner := m.panelInner(width)
	lines := []string{m.styles.Header.Render(emoji.GetEmoji("results") + " " + captionResults), ""}

	primary, ok := st.Primary()
	if st.ShowPlaceholder() || !ok {
		lines = append(lines, m.styles.Muted.Render(captionPlaceholder))
	} else {
		cardStyles := components.CardStyles{
			Box:       m.styles.PrimaryCard,
			Label:     m.styles.Label,
			Value:     m.styles.Value,
			BarFilled: m.styles.BarFilled,
			BarEmpty:  m.styles.BarEmpty,
		}
		primaryCard := components.NewPredictionCard(primary.Emotion, primary.ConfidenceText(), cardStyles).
			SetIcon(emoji.ForEmotion(primary.Emotion)).
			SetBar(primary.BarValue(), maxInt(inner-m.styles.PrimaryCard.GetHorizontalFrameSize(), 4)).
			SetWidth(inner)
		lines = append(lines, primaryCard.Render())

		cardStyles.Box = m.styles.Card
		barWidth := maxInt(inner-m.styles.Card.GetHorizontalFrameSize(), 4)
		for _, p := range st.Secondary() {
			card := components.NewPredictionCard(p.Emotion, p.PercentText(), cardStyles).
				SetIcon(emoji.ForEmotion(p.Emotion)).
				SetBar(p.BarValue(), barWidth).
				SetWidth(inner)
			lines = append(lines, card.Render())
		}
	}

	return m.styles.Panel.Width(width - m.styles.Panel.GetHorizontalBorderSize()).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}

func (m *Model) renderFooter() string {
	if m.prompting {
		return m.styles.Header.Render("Image path: ") + m.styles.Body.Render(string(m.input)) + m.styles.Muted.Render("█")
	}

	help := m.styles.Muted.Render("o open · a analyze · r reset · t theme · ? help · q quit")
	if m.notice != "" {
		return help + "  " + m.styles.Body.Render(m.notice)
	}
	return help
}

func (m *Model) renderErrorDialog(message string, width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Error.Render(emoji.GetEmoji("error")+" "+captionErrorTitle),
		"",
		m.styles.Body.Render(message),
		"",
		m.styles.Button.Render(captionClose),
	)

	dialog := m.styles.Dialog.Render(content)
	if height == 0 {
		return dialog
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
}

func (m *Model) renderHelp(width, height int) string {
	keys := [][2]string{
		{"o", "choose an image by path"},
		{"paste", "drop an image path"},
		{"a / enter", "analyze the selected image"},
		{"r", "clear image and results"},
		{"t", "cycle theme"},
		{"?", "toggle this help"},
		{"q / ctrl+c", "quit"},
	}

	lines := []string{m.styles.Header.Render(emoji.GetEmoji("help") + " Keys"), ""}
	for _, k := range keys {
		lines = append(lines, m.styles.Label.Render(fmt.Sprintf("%-12s", k[0]))+m.styles.Body.Render(k[1]))
	}
	if m.opts.Endpoint != "" {
		lines = append(lines, "", m.styles.Muted.Render("Endpoint: "+m.opts.Endpoint))
	}

	box := m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	if height == 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	value := float64(n)
	suffixes := []string{"KB", "MB", "GB"}
	i := -1
	for value >= unit && i < len(suffixes)-1 {
		value /= unit
		i++
	}
	return strings.TrimSuffix(fmt.Sprintf("%.1f", value), ".0") + " " + suffixes[i]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run runs the interface until the user quits
func Run(opts Options) error {
	model := NewModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
