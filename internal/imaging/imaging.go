// Package imaging normalizes equipment photos uploaded for SKUs.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// MaxDimension bounds the longer side of a stored SKU photo.
const MaxDimension = 1024

// JPEGQuality is the compression quality for stored photos.
const JPEGQuality = 85

// OutputMIME is the type of every stored photo.
const OutputMIME = "image/jpeg"

// ErrUnsupported is returned for uploads that are not a supported photo format.
var ErrUnsupported = errors.New("unsupported image format")

var decoders = map[string]func(io.Reader) (image.Image, error){
	"image/jpeg": jpeg.Decode,
	"image/png":  png.Decode,
	"image/webp": webp.Decode,
}

// Photo is a normalized SKU photo.
type Photo struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// Normalize reads an uploaded photo, checks its real type from the bytes,
// fits it inside MaxDimension and re-encodes it as JPEG.
func Normalize(r io.Reader) (*Photo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	detected := mimetype.Detect(data).String()
	decode, ok := decoders[detected]
	if !ok {
		return nil, fmt.Errorf("%w: %s (JPEG, PNG and WebP accepted)", ErrUnsupported, detected)
	}

	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", detected, err)
	}

	img = fit(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	b := img.Bounds()
	return &Photo{
		Data:   buf.Bytes(),
		MIME:   OutputMIME,
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// fit scales img down with Catmull-Rom so neither side exceeds maxDim.
// Smaller images are returned as is.
func fit(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := maxDim, maxDim
	if w > h {
		newH = max(1, h*maxDim/w)
	} else {
		newW = max(1, w*maxDim/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
