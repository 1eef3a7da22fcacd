// Package http provides the HTTP client used to fetch files.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Streaming downloads to disk with progress tracking
//   - Temporary ".part" files so a failed download leaves nothing behind
//
// # Basic Usage
//
//	client := http.NewClient("media-fetcher", 30*time.Second)
//
//	// Download file with progress callback
//	err := client.DownloadFile(ctx, url, "./downloads/720p.zip", func(written, total int64) {
//	    fmt.Printf("%d / %d\n", written, total)
//	})
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
