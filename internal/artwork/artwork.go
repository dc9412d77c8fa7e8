// Package artwork prepares cover images before they are attached to the
// converted files.
//
// ffmpeg copies the cover stream verbatim into every output, so any
// resizing or format conversion has to happen once, up front. Prepare
// reads the configured cover, optionally scales it down and re-encodes it
// as JPEG, and returns the path ffmpeg should use as its second input.
package artwork

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"os"
	"path/filepath"

	ioutils "github.com/hillandr/flacpress/internal/io"
	"golang.org/x/image/draw"
)

// Options controls cover preparation.
type Options struct {
	// Resize scales the image down to fit MaxSize x MaxSize, preserving
	// aspect ratio. Images already within bounds are not upscaled but
	// are still re-encoded.
	Resize bool

	// MaxSize is the maximum width/height in pixels when Resize is set.
	MaxSize int

	// ConvertToJPEG re-encodes the image as JPEG regardless of its
	// original format.
	ConvertToJPEG bool
}

// Prepare returns the cover path to hand to the encoder.
//
// When opts requests no processing the original path is returned
// unchanged. Otherwise the image is decoded, processed, written as a JPEG
// into dir (typically a t.TempDir or os.MkdirTemp directory owned by the
// caller), and that file's path is returned.
func Prepare(ctx context.Context, coverPath, dir string, opts Options) (string, error) {
	if !opts.Resize && !opts.ConvertToJPEG {
		return coverPath, nil
	}

	data, err := os.ReadFile(coverPath)
	if err != nil {
		return "", fmt.Errorf("reading cover %s: %w", coverPath, err)
	}

	if opts.Resize {
		data, err = resizeImage(data, opts.MaxSize, opts.MaxSize)
	} else {
		data, err = convertToJPEG(data)
	}
	if err != nil {
		return "", fmt.Errorf("processing cover %s: %w", coverPath, err)
	}

	prepared := filepath.Join(dir, "cover.jpg")
	if err := ioutils.WriteFile(ctx, prepared, data); err != nil {
		return "", fmt.Errorf("writing prepared cover: %w", err)
	}
	return prepared, nil
}

// resizeImage resizes an image to fit within the specified maximum
// dimensions, preserving aspect ratio, and re-encodes it as JPEG.
// The Catmull-Rom algorithm is used for high-quality scaling.
func resizeImage(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Calculate new dimensions maintaining aspect ratio
	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			// Height is the limiting factor
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			// Width is the limiting factor
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// convertToJPEG re-encodes an image as JPEG with 90% quality.
func convertToJPEG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
