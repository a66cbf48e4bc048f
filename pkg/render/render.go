// Package render fits decoded photos to an exact panel size and encodes them
// for display.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"
)

const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"

	jpegQuality = 95
)

// Fitter crops and scales images to an exact size, keeping the most
// interesting region when the aspect ratio differs.
type Fitter struct {
	resampler imaging.ResampleFilter
}

// NewFitter creates a Fitter using Lanczos resampling.
func NewFitter() *Fitter {
	return &Fitter{resampler: imaging.Lanczos}
}

// Fit returns img at exactly width x height.
func (f *Fitter) Fit(ctx context.Context, img image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	b := img.Bounds()
	switch {
	case b.Dx() == width && b.Dy() == height:
		return img, nil
	case b.Dx()*height == b.Dy()*width: // same aspect ratio
		return f.resizeWithContext(ctx, img, width, height)
	default:
		cropped, err := f.crop(ctx, img, width, height)
		if err != nil {
			return nil, fmt.Errorf("cropping image: %w", err)
		}
		return f.resizeWithContext(ctx, cropped, width, height)
	}
}

func (f *Fitter) crop(ctx context.Context, img image.Image, width, height int) (image.Image, error) {
	analyzer := smartcrop.NewAnalyzer(&resizer{resampler: f.resampler})

	type cropResult struct {
		crop image.Rectangle
		err  error
	}
	resultChan := make(chan cropResult, 1)

	go func() {
		topCrop, err := analyzer.FindBestCrop(img, width, height)
		resultChan <- cropResult{crop: topCrop, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-resultChan:
		if result.err != nil {
			return nil, fmt.Errorf("finding best crop: %w", result.err)
		}
		return imaging.Crop(img, result.crop), nil
	}
}

func (f *Fitter) resizeWithContext(ctx context.Context, img image.Image, width, height int) (image.Image, error) {
	resultChan := make(chan image.Image, 1)

	go func() {
		resultChan <- imaging.Resize(img, width, height, f.resampler)
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-resultChan:
		return result, nil
	}
}

// resizer adapts imaging to smartcrop.Resizer.
type resizer struct {
	resampler imaging.ResampleFilter
}

func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}

// Encode serializes img as JPEG or PNG.
func Encode(ctx context.Context, img image.Image, contentType string) ([]byte, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	var err error
	switch contentType {
	case ContentTypePNG:
		err = imaging.Encode(&buf, img, imaging.PNG)
	case ContentTypeJPEG:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	default:
		return nil, fmt.Errorf("unsupported format: %s", contentType)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

// ContentTypeForFile picks the encoding for an output file from its extension.
func ContentTypeForFile(name string) (string, error) {
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return "", err
	}
	switch format {
	case imaging.PNG:
		return ContentTypePNG, nil
	case imaging.JPEG:
		return ContentTypeJPEG, nil
	default:
		return "", fmt.Errorf("unsupported output format %s", format)
	}
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
