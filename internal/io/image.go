package ioutils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// ErrUnsupportedImage is returned for data that no registered decoder reads.
var ErrUnsupportedImage = errors.New("unsupported image")

// ImageService prepares the child photo for storage and export.
//
// ImageService is used to:
//   - Shrink an imported photo to fit a maximum size
//   - Re-encode it as JPEG for storage and ID3 cover art
//
// Photos are kept small: they are stored base64-encoded next to the
// recordings and embedded in every exported clip.
//
// Example usage:
//
//	svc := NewImageService()
//	data, _ := os.ReadFile("emma.png")
//
//	// Shrink to fit 512x512 and convert to JPEG
//	photo, err := svc.PreparePhoto(ctx, data, 512)
type ImageService struct {
	// Quality is the JPEG quality, 1 to 100.
	Quality int
}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{Quality: 90}
}

// PreparePhoto decodes a PNG, JPEG or GIF photo and returns it as a JPEG
// that fits within maxSize x maxSize.
//
// Parameters:
//   - ctx: Context checked for cancellation after decoding
//   - data: The uploaded image data
//   - maxSize: Maximum width and height in pixels (zero keeps the
//     original dimensions)
//
// Returns ErrUnsupportedImage when data is not a PNG, JPEG or GIF image.
func (s *ImageService) PreparePhoto(ctx context.Context, data []byte, maxSize int) ([]byte, error) {
	if maxSize <= 0 {
		return s.ResizeImage(ctx, data, 0, 0)
	}
	return s.ResizeImage(ctx, data, maxSize, maxSize)
}

// ResizeImage scales an image to fit within maxWidth x maxHeight and
// encodes it as JPEG.
//
// The aspect ratio is preserved and images are never enlarged. Transparent
// areas are flattened onto white, since JPEG has no alpha channel. A zero
// bound leaves that dimension unconstrained.
//
// Parameters:
//   - ctx: Context checked for cancellation after decoding
//   - data: Original image data (JPEG, PNG or GIF)
//   - maxWidth: Maximum width in pixels
//   - maxHeight: Maximum height in pixels
//
// Returns the resized image as JPEG-encoded bytes at s.Quality.
// The Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	// A 1500x1000 image becomes 600x400
//	resized, err := svc.ResizeImage(ctx, imageData, 600, 600)
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// Use Catmull-Rom for high-quality scaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	quality := s.Quality
	if quality <= 0 || quality > 100 {
		quality = 90
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode %s photo as jpeg: %w", format, err)
	}
	return buf.Bytes(), nil
}

// fitWithin returns width and height scaled down to fit the bounds.
func fitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 {
		return 1, 1
	}
	scale := 1.0
	if maxWidth > 0 && width > maxWidth {
		scale = float64(maxWidth) / float64(width)
	}
	if maxHeight > 0 && float64(height)*scale > float64(maxHeight) {
		scale = float64(maxHeight) / float64(height)
	}
	w := max(int(float64(width)*scale), 1)
	h := max(int(float64(height)*scale), 1)
	return w, h
}
