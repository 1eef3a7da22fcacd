// Package download provides the dispatch logic that turns URLs into files
// on disk and opens the interesting ones.
//
// # Manager
//
// The Manager handles one URL at a time:
//
//  1. Classify the URL (HLS stream, zip archive, media file, other)
//  2. Mux the stream with ffmpeg, or download the file
//  3. Extract zip archives into the download directory
//  4. Open .mp4/.pdf results with the default application
//  5. Send a (placeholder) notification for every opened file
//
// # Basic Usage
//
//	manager := download.NewManager(settings, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	results := manager.Run(ctx, settings.URLs)
//
// # Failures
//
// Any failure is reported as a LevelError event and ends processing of
// that URL only; Run always moves on to the next one. There is no retry.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// Byte level progress of the current download is available through
// WithByteProgress and GetProgress.
package download
