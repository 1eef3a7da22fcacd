package media

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// FFmpeg constants
const (
	FFmpegCommand      = "ffmpeg"
	CopyCodec          = "copy"
	ProgressPipeTarget = "pipe:2"
	ProgressTimePrefix = "out_time_us="
)

const (
	// stderrTailLines is how many log lines are kept for error messages.
	stderrTailLines = 8

	// waitDelay bounds how long Wait keeps reading stderr after ffmpeg exits
	// or is killed.
	waitDelay = 5 * time.Second
)

// ErrFFmpegNotFound is returned when the ffmpeg executable cannot be located.
var ErrFFmpegNotFound = errors.New("ffmpeg executable not found")

// Transcoder runs ffmpeg to copy a stream into a local file.
type Transcoder struct {
	ffmpegPath string
}

// NewTranscoder creates a Transcoder using the given executable name or path.
// An empty value means "ffmpeg" from PATH.
func NewTranscoder(ffmpegPath string) *Transcoder {
	if ffmpegPath == "" {
		ffmpegPath = FFmpegCommand
	}
	return &Transcoder{ffmpegPath: ffmpegPath}
}

// BuildArgs builds the ffmpeg command arguments.
//
// The stream is remuxed with "-c copy"; progress goes to stderr.
func (t *Transcoder) BuildArgs(input, output string) []string {
	return []string{
		"-y",
		"-i", input,
		"-c", CopyCodec,
		"-progress", ProgressPipeTarget,
		"-nostats",
		output,
	}
}

// Download muxes the stream at url into output.
//
// onProgress, if not nil, receives the media time written so far. On
// failure any partial output file is removed.
func (t *Transcoder) Download(ctx context.Context, url, output string, onProgress func(elapsed time.Duration)) error {
	bin, err := exec.LookPath(t.ffmpegPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFFmpegNotFound, err)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return err
	}

	if err := t.run(ctx, bin, t.BuildArgs(url, output), onProgress); err != nil {
		os.Remove(output)
		return err
	}
	return nil
}

func (t *Transcoder) run(ctx context.Context, bin string, args []string, onProgress func(time.Duration)) error {
	pr, pw := io.Pipe()

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stderr = pw
	cmd.WaitDelay = waitDelay

	if err := cmd.Start(); err != nil {
		pw.Close()
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	tail := newLineTail(stderrTailLines)

	var g errgroup.Group
	g.Go(func() error {
		err := cmd.Wait()
		pw.Close()
		return err
	})
	g.Go(func() error {
		scanProgress(pr, tail, onProgress)
		return nil
	})

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if msg := tail.String(); msg != "" {
			return fmt.Errorf("ffmpeg: %w: %s", err, msg)
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

// scanProgress reads ffmpeg's stderr until EOF, reporting out_time_us
// values and keeping other lines in tail.
func scanProgress(r io.Reader, tail *lineTail, onProgress func(time.Duration)) {
	// Keep draining so ffmpeg never blocks on a full pipe.
	defer io.Copy(io.Discard, r)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if elapsed, ok := parseProgressTime(line); ok {
			if onProgress != nil {
				onProgress(elapsed)
			}
			continue
		}
		if isProgressLine(line) {
			continue
		}
		tail.Add(line)
	}
}

// parseProgressTime parses an "out_time_us=123456" line.
func parseProgressTime(line string) (time.Duration, bool) {
	if !strings.HasPrefix(line, ProgressTimePrefix) {
		return 0, false
	}
	us, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
	if err != nil || us < 0 {
		return 0, false
	}
	return time.Duration(us) * time.Microsecond, true
}

// isProgressLine reports whether line is a key=value line from -progress.
func isProgressLine(line string) bool {
	key, _, ok := strings.Cut(line, "=")
	if !ok || key == "" {
		return false
	}
	for _, r := range key {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_') {
			return false
		}
	}
	return true
}

// lineTail keeps the last n lines written to it.
type lineTail struct {
	lines []string
	n     int
}

func newLineTail(n int) *lineTail {
	return &lineTail{n: n}
}

func (t *lineTail) Add(line string) {
	t.lines = append(t.lines, line)
	if len(t.lines) > t.n {
		t.lines = t.lines[len(t.lines)-t.n:]
	}
}

func (t *lineTail) String() string {
	return strings.Join(t.lines, "; ")
}
