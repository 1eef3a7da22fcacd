// Package media turns HLS (M3U8) streams into single files with ffmpeg.
//
// The stream is copied without re-encoding:
//
//	ffmpeg -y -i <playlist url> -c copy -progress pipe:2 -nostats <output.mp4>
//
// # Basic Usage
//
//	tc := media.NewTranscoder("ffmpeg")
//	err := tc.Download(ctx, playlistURL, "./downloads/720p.mp4", func(elapsed time.Duration) {
//	    fmt.Printf("muxed %s\n", elapsed)
//	})
//	if errors.Is(err, media.ErrFFmpegNotFound) {
//	    // ffmpeg is not installed
//	}
package media
