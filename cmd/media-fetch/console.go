package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/media-fetcher/internal/download"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
)

// barInterval throttles redraws of the byte progress line.
const barInterval = 100 * time.Millisecond

// console prints manager events and a single-line byte progress bar.
type console struct {
	w       io.Writer
	verbose bool
	bar     progress.Model

	mu       sync.Mutex
	barShown bool
	lastDraw time.Time
}

func newConsole(w io.Writer, verbose bool) *console {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 30
	return &console{w: w, verbose: verbose, bar: bar}
}

func (c *console) Header() {
	c.Println(titleStyle.Render("📥 Media Fetcher"))
	c.Println(ruleStyle.Render(strings.Repeat("━", 40)))
	c.Println("")
}

// Event prints one manager event with a level prefix.
func (c *console) Event(event download.ProgressEvent) {
	if event.Level == download.LevelVerbose && !c.verbose {
		return
	}

	var style lipgloss.Style
	prefix := ""
	switch event.Level {
	case download.LevelError:
		style, prefix = errorStyle, "❌ "
	case download.LevelWarning:
		style, prefix = warningStyle, "⚠️  "
	case download.LevelSuccess:
		style, prefix = successStyle, "✅ "
	case download.LevelInfo:
		style, prefix = infoStyle, "ℹ️  "
	default:
		style, prefix = dimStyle, "   "
	}

	c.Println(style.Render(prefix + event.Message))
}

// Bytes redraws the progress line for the current download.
func (c *console) Bytes(name string, written, total int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	done := total > 0 && written >= total
	if !done && time.Since(c.lastDraw) < barInterval {
		return
	}
	c.lastDraw = time.Now()
	c.barShown = true

	fmt.Fprintf(c.w, "\r\033[K⬇️  %s %s", name, c.barLine(written, total))
}

func (c *console) barLine(written, total int64) string {
	if total <= 0 {
		return formatBytes(written)
	}
	pct := float64(written) / float64(total)
	if pct > 1 {
		pct = 1
	}
	return fmt.Sprintf("%s %3.0f%% %s/%s", c.bar.ViewAs(pct), pct*100, formatBytes(written), formatBytes(total))
}

// Println ends an active progress line before printing s.
func (c *console) Println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.barShown {
		fmt.Fprintln(c.w)
		c.barShown = false
	}
	fmt.Fprintln(c.w, s)
}

func (c *console) Summary(results []download.Result) {
	var ok int
	for _, r := range results {
		if r.Err == nil {
			ok++
		}
	}

	c.Println("")
	c.Println(ruleStyle.Render(strings.Repeat("━", 40)))
	c.Println(fmt.Sprintf("✨ Complete! %d/%d URL(s) processed successfully", ok, len(results)))
}

// formatBytes renders n with binary units, like "1.5 MiB".
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
