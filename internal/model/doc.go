// Package model defines the download target used throughout media-fetcher.
//
// # Target
//
// Target describes what to do with one input URL:
//
//	target, err := model.NewTarget(url, "./downloads", []string{".mp4", ".pdf"})
//	fmt.Println(target.Kind)       // stream, archive, media or other
//	fmt.Println(target.OutputPath) // Where the result is written
//
// # Kinds
//
// The kind is decided from the URL and the lower-cased file extension:
//   - KindStream: the URL mentions ".m3u8"; the stream is muxed into an ".mp4"
//   - KindArchive: a ".zip" file that is extracted after download
//   - KindMedia: an extension from the open set, opened after download
//   - KindOther: downloaded and left alone
package model
