// Package tui provides a Bubble Tea terminal user interface for media-fetcher.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/media-fetcher/internal/config"
	"github.com/handiism/media-fetcher/internal/download"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// maxLogs is the number of log lines kept on screen.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateRunning
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	results   []download.Result
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	manager *download.Manager
	events  chan download.ProgressEvent
	runID   int

	receivedBytes int64
	totalBytes    int64
	processedURLs int32
	totalURLs     int32

	// Options
	openFiles bool
	notify    bool
	verbose   bool

	width  int
	height int
}

// NewModel creates a new TUI model. The input is pre-filled with the
// configured URLs.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "https://example.com/video.mp4 (comma-separated for several)"
	ti.SetValue(strings.Join(settings.URLs, ", "))
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		openFiles: settings.OpenFiles,
		notify:    settings.Notify,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one event from the download manager.
	ProgressMsg struct {
		RunID int
		Event download.ProgressEvent
	}

	// RunDoneMsg is sent when all URLs have been processed.
	RunDoneMsg struct {
		RunID   int
		Results []download.Result
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateRunning {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput {
				urls := ParseURLs(m.textInput.Value())
				if len(urls) == 0 {
					m.err = fmt.Errorf("enter at least one http(s) URL")
					break
				}
				m.err = nil
				m.state = StateRunning
				m.runID++
				m.events = make(chan download.ProgressEvent, 64)
				m.manager = m.newManager()
				return m, tea.Batch(
					m.startRun(urls),
					waitForEvent(m.runID, m.events),
					m.tickProgress(),
					m.spinner.Tick,
				)
			}

		// Toggles return early so the text input never sees the key.
		case "ctrl+o":
			if m.state == StateInput {
				m.openFiles = !m.openFiles
				return m, nil
			}

		case "ctrl+n":
			if m.state == StateInput {
				m.notify = !m.notify
				return m, nil
			}

		case "ctrl+t":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.state = StateInput
				m.logs = nil
				m.results = nil
				m.err = nil
				m.receivedBytes = 0
				m.totalBytes = 0
				m.processedURLs = 0
				m.totalURLs = 0
				m.manager = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.Focus()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.RunID != m.runID {
			break
		}
		cmds = append(cmds, waitForEvent(m.runID, m.events))
		if msg.Event.Level == download.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case RunDoneMsg:
		// A cancelled run may finish after the user started over.
		if msg.RunID != m.runID || m.state != StateRunning {
			break
		}
		m.results = msg.Results
		if m.manager != nil {
			m.receivedBytes, m.totalBytes, m.processedURLs, m.totalURLs = m.manager.GetProgress()
		}
		if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateRunning {
			m.receivedBytes, m.totalBytes, m.processedURLs, m.totalURLs = m.manager.GetProgress()
			cmds = append(cmds, m.progress.SetPercent(m.percent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// percent is the byte progress of the current download, 0 when unknown.
func (m Model) percent() float64 {
	if m.totalBytes <= 0 {
		return 0
	}
	p := float64(m.receivedBytes) / float64(m.totalBytes)
	if p > 1 {
		p = 1
	}
	return p
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("📥 Media Fetcher"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download files, archives and HLS streams"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter URL(s):"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Open media files (ctrl+o)\n", checkbox(m.openFiles)))
	b.WriteString(fmt.Sprintf("  %s Notification placeholder (ctrl+n)\n", checkbox(m.notify)))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (ctrl+t)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Download path: %s", m.settings.DownloadDir)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Processing URL %d of %d", m.processedURLs+1, m.totalURLs)))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(m.percent()))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Downloaded: %.2f MB%s",
		float64(m.receivedBytes)/1024/1024,
		sizeSuffix(m.totalBytes),
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var ok, failed int
	var opened int
	for _, r := range m.results {
		if r.Err != nil {
			failed++
		} else {
			ok++
		}
		opened += len(r.Opened)
	}

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Done!\n\n"+
			"Succeeded: %d\n"+
			"Failed: %d\n"+
			"Opened: %d file(s)",
		ok, failed, opened,
	))

	return box + "\n\n" + m.renderLogs()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ctrl+o: open • ctrl+n: notify • ctrl+t: verbose • esc: quit"
	case StateRunning:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new download • q: quit"
	}
	return ""
}

func (m *Model) newManager() *download.Manager {
	settings := *m.settings
	settings.OpenFiles = m.openFiles
	settings.Notify = m.notify

	ctx, events := m.ctx, m.events
	return download.NewManager(&settings, func(event download.ProgressEvent) {
		select {
		case events <- event:
		case <-ctx.Done():
		}
	})
}

// startRun processes urls in the background and reports RunDoneMsg.
func (m *Model) startRun(urls []string) tea.Cmd {
	manager, ctx, events, id := m.manager, m.ctx, m.events, m.runID
	return func() tea.Msg {
		results := manager.Run(ctx, urls)
		close(events)
		return RunDoneMsg{RunID: id, Results: results}
	}
}

// waitForEvent delivers the next manager event as a ProgressMsg.
func waitForEvent(runID int, events <-chan download.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{RunID: runID, Event: event}
	}
}

// ParseURLs splits input on commas, whitespace and newlines and keeps
// http(s) URLs.
func ParseURLs(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t' || r == '\r'
	})

	var urls []string
	for _, f := range fields {
		if strings.HasPrefix(f, "http://") || strings.HasPrefix(f, "https://") {
			urls = append(urls, f)
		}
	}
	return urls
}

func checkbox(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

func sizeSuffix(total int64) string {
	if total <= 0 {
		return ""
	}
	return fmt.Sprintf(" of %.2f MB", float64(total)/1024/1024)
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
