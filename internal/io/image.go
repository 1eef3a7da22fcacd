package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// Thumbnail is a JPEG encoded preview image.
type Thumbnail struct {
	Data   []byte
	Width  int
	Height int
}

// ImageService provides image processing operations for notifications.
//
// Example usage:
//
//	svc := NewImageService()
//	thumb, _ := svc.Thumbnail(ctx, imageData, 320)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Thumbnail scales an image so neither side exceeds maxSide.
//
// The aspect ratio is preserved and images that already fit are only
// re-encoded. The result is always JPEG. The Catmull-Rom algorithm is used
// for high-quality resizing.
//
// Example:
//
//	// A 1280x720 image becomes 320x180
//	thumb, err := svc.Thumbnail(ctx, imageData, 320)
func (s *ImageService) Thumbnail(ctx context.Context, data []byte, maxSide int) (*Thumbnail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxSide)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return &Thumbnail{Data: buf.Bytes(), Width: width, Height: height}, nil
}

// fitWithin returns width and height scaled down so the longest side is at
// most maxSide. Sides never drop below one pixel.
func fitWithin(width, height, maxSide int) (int, int) {
	if maxSide <= 0 || (width <= maxSide && height <= maxSide) {
		return width, height
	}

	if width >= height {
		height = height * maxSide / width
		width = maxSide
	} else {
		width = width * maxSide / height
		height = maxSide
	}

	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}
