// Package picture stores uploaded note photos: it validates the extension,
// derives a collision-resistant filename, resizes the image to a bounded
// thumbnail and persists it to the content directory.
package picture

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"notekeeper/internal/apperr"
)

// Store writes thumbnails into a single content directory. Files are
// addressed by generated name only; callers never hand in paths.
type Store struct {
	dir         string
	maxSide     int
	placeholder string
}

func NewStore(dir string, maxSide int, placeholder string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir, maxSide: maxSide, placeholder: placeholder}, nil
}

// Placeholder returns the filename used when a note has no photo.
func (s *Store) Placeholder() string {
	return s.placeholder
}

// Save validates, decodes, thumbnails and persists one uploaded image,
// returning the generated filename. Nothing is written to disk unless
// decode and resize both succeed.
func (s *Store) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return "", apperr.Wrap(apperr.ErrValidation, "unsupported image extension")
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return "", apperr.Wrap(apperr.ErrUnprocessable, "decode image")
	}
	thumb := s.resize(src)

	var buf bytes.Buffer
	switch ext {
	case ".png":
		err = png.Encode(&buf, thumb)
	default:
		err = jpeg.Encode(&buf, thumb, nil)
	}
	if err != nil {
		return "", apperr.Wrap(apperr.ErrUnprocessable, "encode thumbnail")
	}

	name, err := randomName(ext)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return name, nil
}

// Remove deletes a previously stored file. The placeholder is shared by
// every note without a photo and is never removed. A missing file is not an
// error: replace and delete cleanups are best effort.
func (s *Store) Remove(name string) error {
	if name == "" || name == s.placeholder {
		return nil
	}
	if filepath.Base(name) != name {
		return apperr.Wrap(apperr.ErrValidation, "invalid stored filename")
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resize caps the longest side at maxSide preserving aspect ratio. Smaller
// images pass through untouched.
func (s *Store) resize(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= s.maxSide && h <= s.maxSide {
		return src
	}
	if w >= h {
		h = h * s.maxSide / w
		w = s.maxSide
	} else {
		w = w * s.maxSide / h
		h = s.maxSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// randomName returns 8 bytes of randomness hex-encoded plus the original
// extension, e.g. "3f2a9c1d4e5b6a70.png".
func randomName(ext string) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf) + ext, nil
}
