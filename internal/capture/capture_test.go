package capture

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func writeBMP(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "hardcopy.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := bmp.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", PNG, false},
		{"", PNG, false},
		{"JPG", JPEG, false},
		{"jpeg", JPEG, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProcessPNG(t *testing.T) {
	path := writeBMP(t, 160, 120)

	out, err := Process(path, Options{Format: PNG})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out.Width != 160 || out.Height != 120 {
		t.Errorf("size = %dx%d, want 160x120", out.Width, out.Height)
	}
	img, err := png.Decode(bytes.NewReader(out.Data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != 160 {
		t.Errorf("decoded width = %d", img.Bounds().Dx())
	}
}

func TestProcessScaledJPEG(t *testing.T) {
	path := writeBMP(t, 160, 120)

	out, err := Process(path, Options{Format: JPEG, Quality: 60, Scale: 0.5})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out.Width != 80 || out.Height != 60 {
		t.Errorf("size = %dx%d, want 80x60", out.Width, out.Height)
	}
	if _, err := jpeg.Decode(bytes.NewReader(out.Data)); err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
}

func TestProcessRejectsBadScale(t *testing.T) {
	path := writeBMP(t, 10, 10)
	if _, err := Process(path, Options{Scale: 2}); err == nil {
		t.Error("expected error for scale > 1")
	}
}

func TestProcessMissingFile(t *testing.T) {
	if _, err := Process(filepath.Join(t.TempDir(), "missing.bmp"), Options{}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRejectsNonBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not.bmp")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected decode error")
	}
}

func TestAnnotateDrawsBanner(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 40))
	for x := 0; x < 100; x++ {
		for y := 0; y < 40; y++ {
			src.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}

	out := Annotate(src, "wnd[0] SAP Easy Access with a long title")

	// Banner darkens the top rows; the bottom row stays white.
	top := out.RGBAAt(99, 1)
	if top.R == 255 {
		t.Errorf("banner pixel not darkened: %v", top)
	}
	bottom := out.RGBAAt(50, 39)
	if bottom.R != 255 || bottom.G != 255 || bottom.B != 255 {
		t.Errorf("pixel below banner changed: %v", bottom)
	}
}

func TestAnnotateTinyImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 5, 5))
	out := Annotate(src, "label")
	if out.Bounds().Dx() != 5 {
		t.Errorf("bounds changed: %v", out.Bounds())
	}
}
