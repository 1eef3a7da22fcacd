package download

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/handiism/media-fetcher/internal/archive"
	"github.com/handiism/media-fetcher/internal/config"
	"github.com/handiism/media-fetcher/internal/http"
	ioutils "github.com/handiism/media-fetcher/internal/io"
	"github.com/handiism/media-fetcher/internal/media"
	"github.com/handiism/media-fetcher/internal/model"
	"github.com/handiism/media-fetcher/internal/notify"
	"github.com/handiism/media-fetcher/internal/opener"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Fetcher downloads a URL to a local path.
type Fetcher interface {
	DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error
}

// StreamDownloader muxes an HLS stream into a local file.
type StreamDownloader interface {
	Download(ctx context.Context, url, output string, onProgress func(elapsed time.Duration)) error
}

// FileOpener opens a file with the default application.
type FileOpener interface {
	Open(path string) error
}

// Result summarizes what happened to one URL.
type Result struct {
	URL    string
	Kind   model.Kind
	Path   string   // downloaded or muxed file, empty on failure
	Opened []string // files handed to the opener, including failed opens
	Err    error
}

// Option customizes a Manager.
type Option func(*Manager)

// WithFetcher replaces the HTTP client.
func WithFetcher(f Fetcher) Option {
	return func(m *Manager) { m.fetcher = f }
}

// WithStreamDownloader replaces the ffmpeg transcoder.
func WithStreamDownloader(s StreamDownloader) Option {
	return func(m *Manager) { m.streams = s }
}

// WithOpener replaces the platform opener.
func WithOpener(o FileOpener) Option {
	return func(m *Manager) { m.opener = o }
}

// WithNotifier replaces the notification placeholder.
func WithNotifier(n notify.Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// WithByteProgress registers a callback for byte progress of the current
// download. total is -1 when the size is unknown.
func WithByteProgress(fn func(name string, written, total int64)) Option {
	return func(m *Manager) { m.onBytes = fn }
}

// Manager processes URLs one after another.
type Manager struct {
	settings *config.Settings
	fetcher  Fetcher
	streams  StreamDownloader
	opener   FileOpener
	notifier notify.Notifier

	totalBytes    int64
	receivedBytes int64
	processedURLs int32
	totalURLs     int32

	onProgress func(ProgressEvent)
	onBytes    func(name string, written, total int64)
}

// NewManager creates a new Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent), opts ...Option) *Manager {
	m := &Manager{
		settings:   settings,
		onProgress: onProgress,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.fetcher == nil {
		m.fetcher = http.NewClient(settings.UserAgent, settings.HeaderTimeout())
	}
	if m.streams == nil {
		m.streams = media.NewTranscoder(settings.FFmpegPath)
	}
	if m.opener == nil {
		m.opener = opener.New()
	}
	if m.notifier == nil {
		m.notifier = notify.NewTelegramStub(settings.TelegramChatID, func(msg string) {
			m.progress(ProgressEvent{Message: msg, Level: LevelInfo})
		})
	}

	return m
}

// Run processes urls sequentially. A failing URL never stops the batch;
// only cancellation of ctx does.
func (m *Manager) Run(ctx context.Context, urls []string) []Result {
	atomic.StoreInt32(&m.totalURLs, int32(len(urls)))
	atomic.StoreInt32(&m.processedURLs, 0)

	results := make([]Result, 0, len(urls))
	for _, u := range urls {
		if ctx.Err() != nil {
			m.progress(ProgressEvent{Message: "Cancelled, skipping remaining URLs", Level: LevelWarning})
			break
		}
		results = append(results, m.Process(ctx, u))
		atomic.AddInt32(&m.processedURLs, 1)
	}
	return results
}

// GetProgress returns byte progress of the current download and URL counts.
func (m *Manager) GetProgress() (received, total int64, processed, totalURLs int32) {
	return atomic.LoadInt64(&m.receivedBytes), atomic.LoadInt64(&m.totalBytes),
		atomic.LoadInt32(&m.processedURLs), atomic.LoadInt32(&m.totalURLs)
}

// Process runs the full pipeline for one URL.
func (m *Manager) Process(ctx context.Context, url string) Result {
	res := Result{URL: url}

	target, err := model.NewTarget(url, m.settings.DownloadDir, m.settings.OpenExtensions)
	if err != nil {
		return m.fail(res, fmt.Errorf("invalid url %s: %w", url, err))
	}
	res.Kind = target.Kind

	if err := ioutils.EnsureDir(m.settings.DownloadDir); err != nil {
		return m.fail(res, fmt.Errorf("create %s: %w", m.settings.DownloadDir, err))
	}

	if target.Kind == model.KindStream {
		return m.processStream(ctx, target, res)
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloading: %s", url), Level: LevelInfo})
	atomic.StoreInt64(&m.receivedBytes, 0)
	atomic.StoreInt64(&m.totalBytes, 0)

	err = m.fetcher.DownloadFile(ctx, url, target.OutputPath, func(written, total int64) {
		atomic.StoreInt64(&m.receivedBytes, written)
		atomic.StoreInt64(&m.totalBytes, total)
		if m.onBytes != nil {
			m.onBytes(target.FileName, written, total)
		}
	})
	if err != nil {
		return m.fail(res, fmt.Errorf("failed to download: %w", err))
	}
	res.Path = target.OutputPath
	m.progress(ProgressEvent{Message: fmt.Sprintf("Saved %s", target.OutputPath), Level: LevelSuccess})

	switch target.Kind {
	case model.KindArchive:
		return m.processArchive(ctx, target, res)
	case model.KindMedia:
		m.openAndNotify(ctx, target.OutputPath, &res)
	default:
		m.progress(ProgressEvent{Message: "File downloaded, no automatic action.", Level: LevelInfo})
	}

	return res
}

func (m *Manager) processStream(ctx context.Context, target *model.Target, res Result) Result {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloading M3U8 video: %s", target.URL), Level: LevelInfo})

	err := m.streams.Download(ctx, target.URL, target.OutputPath, func(elapsed time.Duration) {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("%s: %s muxed", target.FileName, elapsed.Truncate(time.Second)),
			Level:   LevelVerbose,
		})
	})
	if err != nil {
		return m.fail(res, fmt.Errorf("M3U8 download failed: %w", err))
	}

	res.Path = target.OutputPath
	m.progress(ProgressEvent{Message: fmt.Sprintf("M3U8 video saved to %s", target.OutputPath), Level: LevelSuccess})
	m.openAndNotify(ctx, target.OutputPath, &res)
	return res
}

func (m *Manager) processArchive(ctx context.Context, target *model.Target, res Result) Result {
	dir := m.settings.DownloadDir
	m.progress(ProgressEvent{Message: fmt.Sprintf("Extracting %s ...", target.OutputPath), Level: LevelInfo})

	members, err := archive.Extract(target.OutputPath, dir)
	if err != nil {
		return m.fail(res, fmt.Errorf("failed to extract: %w", err))
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Extracted %d file(s) to %s", len(members), dir), Level: LevelSuccess})

	for _, name := range members {
		if ctx.Err() != nil {
			return m.fail(res, ctx.Err())
		}
		if !model.IsOpenable(name, m.settings.OpenExtensions) {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s", name), Level: LevelVerbose})
			continue
		}
		m.openAndNotify(ctx, filepath.Join(dir, filepath.FromSlash(name)), &res)
	}
	return res
}

// openAndNotify opens path and then announces it. An open failure is
// reported but does not prevent the notification.
func (m *Manager) openAndNotify(ctx context.Context, path string, res *Result) {
	if m.settings.OpenFiles {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Opening %s ...", path), Level: LevelInfo})
		res.Opened = append(res.Opened, path)
		if err := m.opener.Open(path); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Failed to open file: %v", err), Level: LevelError})
		}
	}

	if m.settings.Notify {
		if err := m.notifier.Notify(ctx, path, notify.Caption(path)); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Failed to notify: %v", err), Level: LevelWarning})
		}
	}
}

func (m *Manager) fail(res Result, err error) Result {
	res.Err = err
	m.progress(ProgressEvent{Message: err.Error(), Level: LevelError})
	return res
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
