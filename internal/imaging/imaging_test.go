package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solid(w, h, color.RGBA{255, 0, 0, 255}), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encoding test JPEG: %v", err)
	}
	return buf.Bytes()
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(w, h, color.RGBA{0, 0, 255, 255})); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeJPEG(t *testing.T) {
	photo, err := Normalize(bytes.NewReader(encodeJPEG(t, 100, 80)))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if photo.MIME != OutputMIME {
		t.Errorf("expected %s, got %s", OutputMIME, photo.MIME)
	}
	if photo.Width != 100 || photo.Height != 80 {
		t.Errorf("expected 100x80, got %dx%d", photo.Width, photo.Height)
	}
	if len(photo.Data) == 0 {
		t.Error("expected non-empty data")
	}
}

func TestNormalizePNGBecomesJPEG(t *testing.T) {
	photo, err := Normalize(bytes.NewReader(encodePNG(t, 64, 64)))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if _, format, err := image.Decode(bytes.NewReader(photo.Data)); err != nil || format != "jpeg" {
		t.Errorf("expected JPEG output, got %q (%v)", format, err)
	}
}

func TestNormalizeFitsLandscape(t *testing.T) {
	photo, err := Normalize(bytes.NewReader(encodeJPEG(t, 2048, 1024)))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if photo.Width != MaxDimension || photo.Height != MaxDimension/2 {
		t.Errorf("expected %dx%d, got %dx%d", MaxDimension, MaxDimension/2, photo.Width, photo.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if img.Bounds().Dx() != photo.Width {
		t.Errorf("reported width %d does not match encoded width %d", photo.Width, img.Bounds().Dx())
	}
}

func TestNormalizeFitsPortrait(t *testing.T) {
	photo, err := Normalize(bytes.NewReader(encodePNG(t, 600, 1800)))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if photo.Height != MaxDimension || photo.Width != 341 {
		t.Errorf("expected 341x%d, got %dx%d", MaxDimension, photo.Width, photo.Height)
	}
}

func TestNormalizeRejectsNonImages(t *testing.T) {
	for name, data := range map[string][]byte{
		"text": []byte("not an image"),
		"gif":  []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;"),
	} {
		_, err := Normalize(bytes.NewReader(data))
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("%s: expected ErrUnsupported, got %v", name, err)
		}
	}
}
