// Package notify announces finished files.
//
// Only a placeholder is provided: TelegramStub reports what it would send
// to a Telegram chat and performs no network I/O.
//
//	n := notify.NewTelegramStub("12345", func(msg string) { fmt.Println(msg) })
//	caption := notify.Caption(path)
//	_ = n.Notify(ctx, path, caption)
//
// # Captions
//
// Caption reads the ID3 artist and title of MP3 files. Other files get an
// empty caption.
//
// # Thumbnails
//
// For images the stub builds the JPEG thumbnail Telegram would attach and
// reports its size.
package notify
