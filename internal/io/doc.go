// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Directory creation
//   - Image detection by extension
//   - Thumbnail generation
//
// # File Operations
//
//	// Ensure the output directory exists
//	err := ioutils.EnsureDir("./downloads")
//
// # Image Processing
//
// The ImageService prepares preview thumbnails:
//
//	svc := ioutils.NewImageService()
//
//	// Scale so the longest side is at most 320px, JPEG encoded
//	thumb, err := svc.Thumbnail(ctx, imageData, 320)
//	fmt.Println(thumb.Width, thumb.Height, len(thumb.Data))
package ioutils
