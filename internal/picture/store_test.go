package picture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"notekeeper/internal/apperr"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), 160, "default.png")
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return s
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x), A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func dirEntries(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	return len(entries)
}

func TestSaveGeneratesDistinctNames(t *testing.T) {
	s := newStore(t)
	src := pngBytes(t, 100, 50)

	first, err := s.Save("photo.png", bytes.NewReader(src))
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	second, err := s.Save("photo.png", bytes.NewReader(src))
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if first == second {
		t.Fatalf("same filename generated twice: %s", first)
	}
	// 8 random bytes hex encoded plus the preserved extension
	if len(first) != 16+len(".png") || filepath.Ext(first) != ".png" {
		t.Fatalf("unexpected filename shape: %s", first)
	}
}

func TestSaveCapsLongestSide(t *testing.T) {
	s := newStore(t)

	name, err := s.Save("wide.png", bytes.NewReader(pngBytes(t, 400, 200)))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		t.Fatalf("open stored file: %v", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode stored file: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 160 || b.Dy() != 80 {
		t.Fatalf("expected 160x80 thumbnail, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestSaveKeepsSmallImages(t *testing.T) {
	s := newStore(t)

	name, err := s.Save("small.png", bytes.NewReader(pngBytes(t, 30, 20)))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		t.Fatalf("open stored file: %v", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode stored file: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Fatalf("small image was resized to %dx%d", b.Dx(), b.Dy())
	}
}

func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	s := newStore(t)

	_, err := s.Save("photo.gif", bytes.NewReader(pngBytes(t, 10, 10)))
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if n := dirEntries(t, s.dir); n != 0 {
		t.Fatalf("rejected upload left %d files on disk", n)
	}
}

func TestSaveRejectsCorruptPayload(t *testing.T) {
	s := newStore(t)

	_, err := s.Save("photo.png", bytes.NewReader([]byte("definitely not an image")))
	if !errors.Is(err, apperr.ErrUnprocessable) {
		t.Fatalf("expected unprocessable error, got %v", err)
	}
	if n := dirEntries(t, s.dir); n != 0 {
		t.Fatalf("corrupt upload left %d files on disk", n)
	}
}

func TestRemove(t *testing.T) {
	s := newStore(t)

	name, err := s.Save("photo.png", bytes.NewReader(pngBytes(t, 10, 10)))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.Remove(name); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if n := dirEntries(t, s.dir); n != 0 {
		t.Fatalf("file still present after remove")
	}

	// the shared placeholder must survive removal attempts
	if err := s.Remove(s.Placeholder()); err != nil {
		t.Fatalf("placeholder remove should be a no-op, got %v", err)
	}
	// removing twice is fine
	if err := s.Remove(name); err != nil {
		t.Fatalf("second remove should be a no-op, got %v", err)
	}
	// stored names never carry path separators
	if err := s.Remove("../escape.png"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for path traversal, got %v", err)
	}
}
