package notify

import (
	"context"
	"fmt"
	"os"

	ioutils "github.com/handiism/media-fetcher/internal/io"
)

// ThumbnailSize is the longest side of the preview Telegram accepts.
const ThumbnailSize = 320

// Notifier announces a finished file.
type Notifier interface {
	Notify(ctx context.Context, path, caption string) error
}

// TelegramStub reports what would be sent to a Telegram chat.
type TelegramStub struct {
	chatID string
	images *ioutils.ImageService
	report func(string)
}

// NewTelegramStub creates a stub for chatID. report receives one line per
// notification; nil prints to stdout.
func NewTelegramStub(chatID string, report func(string)) *TelegramStub {
	if report == nil {
		report = func(msg string) { fmt.Println(msg) }
	}
	return &TelegramStub{
		chatID: chatID,
		images: ioutils.NewImageService(),
		report: report,
	}
}

// Notify reports the file and caption. It never fails for a missing chat
// or an unreadable image; the thumbnail is simply left out.
func (n *TelegramStub) Notify(ctx context.Context, path, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := fmt.Sprintf("[TELEGRAM] Would send: %s with caption: %s", path, caption)
	if n.chatID != "" {
		msg += fmt.Sprintf(" to chat %s", n.chatID)
	}
	if thumb := n.thumbnail(ctx, path); thumb != nil {
		msg += fmt.Sprintf(" (thumbnail %dx%d, %d bytes)", thumb.Width, thumb.Height, len(thumb.Data))
	}

	n.report(msg)
	return nil
}

func (n *TelegramStub) thumbnail(ctx context.Context, path string) *ioutils.Thumbnail {
	if !ioutils.IsImage(path) {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	thumb, err := n.images.Thumbnail(ctx, data, ThumbnailSize)
	if err != nil {
		return nil
	}
	return thumb
}
