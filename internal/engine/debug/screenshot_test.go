package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
}

func TestFilename(t *testing.T) {
	s := NewScreenshotter("shots", "scene")
	s.now = fixedClock

	want := filepath.Join("shots", "scene_2024-03-09_14-05-06_000.png")
	if got := s.Filename(); got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}

	if got := NewScreenshotter("", "").Filename(); filepath.Dir(got) != "." {
		t.Errorf("empty dir should write to cwd, got %q", got)
	}
}

func TestSavePixelsFlips(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s := NewScreenshotter(dir, "frame")
	s.now = fixedClock

	// Bottom row red, top row blue, as glReadPixels returns them.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := s.SavePixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("SavePixels: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	top := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
	bottom := color.RGBAModel.Convert(img.At(0, 1)).(color.RGBA)
	if top.B != 255 || bottom.R != 255 {
		t.Errorf("expected blue over red, got top %v bottom %v", top, bottom)
	}

	second, err := s.SavePixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("second SavePixels: %v", err)
	}
	if second == path {
		t.Error("consecutive captures should not overwrite each other")
	}
}

func TestSavePixelsSizeMismatch(t *testing.T) {
	s := NewScreenshotter(t.TempDir(), "x")
	if _, err := s.SavePixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}
