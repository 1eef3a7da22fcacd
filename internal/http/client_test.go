package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

func newTestClient() *Client {
	return NewClient("media-fetcher-test", 5*time.Second)
}

func TestDownloadFile(t *testing.T) {
	payload := bytes.Repeat([]byte("0123456789"), 1000)
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		w.Write(payload)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "file.bin")
	var lastWritten, lastTotal int64
	err := newTestClient().DownloadFile(context.Background(), srv.URL+"/file.bin", dest, func(written, total int64) {
		lastWritten, lastTotal = written, total
	})
	if err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("downloaded %d bytes, want %d", len(got), len(payload))
	}
	if lastWritten != int64(len(payload)) {
		t.Errorf("progress written = %d, want %d", lastWritten, len(payload))
	}
	if lastTotal != int64(len(payload)) {
		t.Errorf("progress total = %d, want %d", lastTotal, len(payload))
	}
	if gotUA != "media-fetcher-test" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestDownloadFile_UnknownLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("part one "))
		w.(http.Flusher).Flush()
		w.Write([]byte("part two"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "chunked.bin")
	var lastWritten, lastTotal int64
	err := newTestClient().DownloadFile(context.Background(), srv.URL, dest, func(written, total int64) {
		lastWritten, lastTotal = written, total
	})
	if err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}
	if lastTotal != -1 {
		t.Errorf("progress total = %d, want -1 for chunked response", lastTotal)
	}
	if lastWritten != int64(len("part one part two")) {
		t.Errorf("progress written = %d", lastWritten)
	}
}

func TestDownloadFile_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "missing.mp4")
	err := newTestClient().DownloadFile(context.Background(), srv.URL+"/missing.mp4", dest, nil)
	if err == nil {
		t.Fatal("DownloadFile() expected error for 404")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error = %v, want status code", err)
	}
	assertEmptyDir(t, dir)
}

func TestDownloadFile_TruncatedBodyLeavesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.Write([]byte("short"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "video.mp4")
	if err := newTestClient().DownloadFile(context.Background(), srv.URL, dest, nil); err == nil {
		t.Fatal("DownloadFile() expected error for truncated body")
	}
	assertEmptyDir(t, dir)
}

func TestDownloadFile_ReplacesExisting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("new"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(dest, []byte("old content"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := newTestClient().DownloadFile(context.Background(), srv.URL, dest, nil); err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}
	got, _ := os.ReadFile(dest)
	if string(got) != "new" {
		t.Errorf("content = %q, want new", got)
	}
}

func TestDownloadFile_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dest := filepath.Join(t.TempDir(), "file.bin")
	if err := newTestClient().DownloadFile(ctx, srv.URL, dest, nil); err == nil {
		t.Error("DownloadFile() expected error for cancelled context")
	}
}

func TestProgressWriter(t *testing.T) {
	var buf bytes.Buffer
	var calls int
	pw := &ProgressWriter{
		Writer: &buf,
		Total:  10,
		OnUpdate: func(written, total int64) {
			calls++
		},
	}

	pw.Write([]byte("hello"))
	pw.Write([]byte("world"))

	if pw.Written != 10 {
		t.Errorf("Written = %d, want 10", pw.Written)
	}
	if calls != 2 {
		t.Errorf("OnUpdate called %d times, want 2", calls)
	}
	if buf.String() != "helloworld" {
		t.Errorf("buffer = %q", buf.String())
	}
}

func TestPartPath(t *testing.T) {
	dest := filepath.Join("downloads", "720p.zip")
	a, b := PartPath(dest), PartPath(dest)

	if a == b {
		t.Error("PartPath() should be unique per call")
	}
	if filepath.Dir(a) != "downloads" {
		t.Errorf("PartPath() dir = %q, want downloads", filepath.Dir(a))
	}
	if !strings.HasSuffix(a, PartSuffix) {
		t.Errorf("PartPath() = %q, want %s suffix", a, PartSuffix)
	}
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("directory not empty: %v", names)
	}
}
