package notify

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bogem/id3v2"
)

func writeTaggedMP3(t *testing.T, artist, title string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.mp3")
	if err := os.WriteFile(path, []byte("not really audio"), 0644); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("id3v2.Open() error = %v", err)
	}
	defer tag.Close()

	tag.SetArtist(artist)
	tag.SetTitle(title)
	if err := tag.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	return path
}

func TestCaption(t *testing.T) {
	tests := []struct {
		name   string
		artist string
		title  string
		want   string
	}{
		{"artist and title", "Lecturer", "Chapter 1", "Lecturer - Chapter 1"},
		{"title only", "", "Chapter 2", "Chapter 2"},
		{"artist only", "Lecturer", "", "Lecturer"},
		{"no tags", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTaggedMP3(t, tt.artist, tt.title)
			if got := Caption(path); got != tt.want {
				t.Errorf("Caption() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCaption_NonMP3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "video.mp4")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := Caption(path); got != "" {
		t.Errorf("Caption() = %q, want empty", got)
	}
}

func TestCaption_MissingFile(t *testing.T) {
	if got := Caption(filepath.Join(t.TempDir(), "gone.mp3")); got != "" {
		t.Errorf("Caption() = %q, want empty", got)
	}
}

func TestTelegramStub_Notify(t *testing.T) {
	var got []string
	n := NewTelegramStub("", func(msg string) { got = append(got, msg) })

	if err := n.Notify(context.Background(), "downloads/a.mp4", "hello"); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	want := "[TELEGRAM] Would send: downloads/a.mp4 with caption: hello"
	if len(got) != 1 || got[0] != want {
		t.Errorf("reported %q, want %q", got, want)
	}
}

func TestTelegramStub_ChatID(t *testing.T) {
	var got string
	n := NewTelegramStub("42", func(msg string) { got = msg })

	n.Notify(context.Background(), "x.pdf", "")
	if !strings.HasSuffix(got, "to chat 42") {
		t.Errorf("reported %q, want chat id", got)
	}
}

func TestTelegramStub_ImageThumbnail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1280, 640))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	var got string
	n := NewTelegramStub("", func(msg string) { got = msg })
	if err := n.Notify(context.Background(), path, ""); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if !strings.Contains(got, "thumbnail 320x160") {
		t.Errorf("reported %q, want thumbnail dimensions", got)
	}
}

func TestTelegramStub_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	n := NewTelegramStub("", func(string) { called = true })
	if err := n.Notify(ctx, "a.mp4", ""); err == nil {
		t.Error("Notify() expected context error")
	}
	if called {
		t.Error("report should not be called after cancellation")
	}
}

func TestTelegramStub_ImplementsNotifier(t *testing.T) {
	var _ Notifier = NewTelegramStub("", nil)
}
