package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// PartSuffix marks files that are still being written.
const PartSuffix = ".part"

// Client wraps HTTP operations used by the downloader.
//
// There is no overall request timeout because bodies can be large; only
// the wait for response headers is bounded.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// headerTimeout bounds the wait for response headers; zero disables it.
func NewClient(userAgent string, headerTimeout time.Duration) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = headerTimeout

	return &Client{
		httpClient: &http.Client{Transport: transport},
		userAgent:  userAgent,
	}
}

// ProgressWriter wraps a writer to track download progress.
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	// It is -1 when the server did not send one.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// DownloadFile downloads url to destPath with an optional progress callback.
//
// The body is streamed into a uniquely named ".part" file next to destPath
// and renamed over destPath once the copy succeeds. On any error the
// partial file is removed and destPath is left untouched.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	partPath := PartPath(destPath)
	if err := c.writeBody(resp, partPath, onProgress); err != nil {
		os.Remove(partPath)
		return err
	}

	if err := os.Rename(partPath, destPath); err != nil {
		os.Remove(partPath)
		return err
	}
	return nil
}

func (c *Client) writeBody(resp *http.Response, path string, onProgress func(written, total int64)) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	if _, err := io.Copy(writer, resp.Body); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// PartPath returns a unique temporary path in the same directory as destPath.
func PartPath(destPath string) string {
	dir, name := filepath.Split(destPath)
	return filepath.Join(dir, "."+name+"."+uuid.NewString()+PartSuffix)
}
