package tui

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/media-fetcher/internal/config"
	"github.com/handiism/media-fetcher/internal/download"
)

func TestParseURLs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "https://a.com/x.mp4", []string{"https://a.com/x.mp4"}},
		{"comma separated", "https://a.com/x.mp4, http://b.com/y.zip", []string{"https://a.com/x.mp4", "http://b.com/y.zip"}},
		{"newlines and junk", "ftp://no\nhttps://a.com/z.m3u8\n\nnot a url", []string{"https://a.com/z.m3u8"}},
		{"empty", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseURLs(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseURLs(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewModel_PrefillsURLs(t *testing.T) {
	settings := config.DefaultSettings()
	settings.URLs = []string{"https://a.com/1.mp4", "https://a.com/2.pdf"}

	m := NewModel(settings)
	if got := m.textInput.Value(); got != "https://a.com/1.mp4, https://a.com/2.pdf" {
		t.Errorf("input = %q", got)
	}
	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
}

func TestUpdate_EnterWithoutURL(t *testing.T) {
	settings := config.DefaultSettings()
	settings.URLs = nil

	updated, _ := NewModel(settings).Update(tea.KeyMsg{Type: tea.KeyEnter})
	m := updated.(Model)

	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
	if m.err == nil {
		t.Error("expected validation error")
	}
}

func TestUpdate_ToggleOptions(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	openBefore := m.openFiles

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	m = updated.(Model)
	if m.openFiles == openBefore {
		t.Error("ctrl+o should toggle open files")
	}

	value := m.textInput.Value()
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = updated.(Model)
	if !m.verbose {
		t.Error("ctrl+t should enable verbose")
	}
	if m.textInput.Value() != value {
		t.Errorf("toggle changed input to %q", m.textInput.Value())
	}
}

func TestUpdate_StaleRunDoneIgnored(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m.state = StateRunning
	m.runID = 1

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(Model)
	if m.state != StateInput {
		t.Fatalf("state = %v, want StateInput after restart", m.state)
	}

	updated, _ = m.Update(RunDoneMsg{RunID: 1})
	m = updated.(Model)
	if m.state != StateInput {
		t.Errorf("state = %v, old run must not complete the input screen", m.state)
	}

	// A second run is in flight when the first one reports.
	m.state = StateRunning
	m.runID = 2
	updated, _ = m.Update(RunDoneMsg{RunID: 1})
	m = updated.(Model)
	if m.state != StateRunning {
		t.Errorf("state = %v, want StateRunning", m.state)
	}

	updated, _ = m.Update(ProgressMsg{RunID: 1, Event: download.ProgressEvent{Message: "old", Level: download.LevelInfo}})
	m = updated.(Model)
	if len(m.logs) != 0 {
		t.Errorf("logs = %v, want events of the old run dropped", m.logs)
	}
}

func TestUpdate_ProgressMsgFiltersVerbose(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m.state = StateRunning
	m.events = make(chan download.ProgressEvent)

	updated, _ := m.Update(ProgressMsg{Event: download.ProgressEvent{Message: "debug", Level: download.LevelVerbose}})
	m = updated.(Model)
	if len(m.logs) != 0 {
		t.Errorf("verbose event should be hidden, logs = %v", m.logs)
	}

	updated, _ = m.Update(ProgressMsg{Event: download.ProgressEvent{Message: "saved", Level: download.LevelSuccess}})
	m = updated.(Model)
	if len(m.logs) != 1 || m.logs[0].Message != "saved" {
		t.Errorf("logs = %v", m.logs)
	}
}

func TestUpdate_LogsAreCapped(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m.state = StateRunning
	m.events = make(chan download.ProgressEvent)

	for i := 0; i < maxLogs+5; i++ {
		updated, _ := m.Update(ProgressMsg{Event: download.ProgressEvent{Message: "line", Level: download.LevelInfo}})
		m = updated.(Model)
	}
	if len(m.logs) != maxLogs {
		t.Errorf("len(logs) = %d, want %d", len(m.logs), maxLogs)
	}
}

func TestUpdate_RunDone(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m.state = StateRunning

	updated, _ := m.Update(RunDoneMsg{Results: []download.Result{
		{URL: "https://a.com/1.mp4", Opened: []string{"downloads/1.mp4"}},
		{URL: "https://a.com/2.mp4", Err: errors.New("HTTP 404")},
	}})
	m = updated.(Model)

	if m.state != StateComplete {
		t.Fatalf("state = %v, want StateComplete", m.state)
	}
	view := m.View()
	if !strings.Contains(view, "Succeeded: 1") || !strings.Contains(view, "Failed: 1") {
		t.Errorf("complete view missing counts:\n%s", view)
	}
}

func TestPercent(t *testing.T) {
	m := Model{receivedBytes: 50, totalBytes: 200}
	if got := m.percent(); got != 0.25 {
		t.Errorf("percent() = %v, want 0.25", got)
	}

	m = Model{receivedBytes: 50, totalBytes: -1}
	if got := m.percent(); got != 0 {
		t.Errorf("percent() with unknown total = %v, want 0", got)
	}
}
