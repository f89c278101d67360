package icons

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"catalogo/internal/logger"
)

func writeSource(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Left half opaque green, right half fully transparent.
			if x < w/2 {
				img.SetNRGBA(x, y, color.NRGBA{R: 20, G: 160, B: 90, A: 255})
			}
		}
	}

	path := filepath.Join(t.TempDir(), "source.png")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode source: %v", err)
	}

	return path
}

func discardLogger() *logger.Logger {
	return logger.New(io.Discard, "error")
}

func TestGenerator_Generate(t *testing.T) {
	source := writeSource(t, 200, 100)
	outputDir := filepath.Join(t.TempDir(), "icons")

	g := NewGenerator(Squares([]int{16, 48}), 32, discardLogger())

	paths, err := g.Generate(source, outputDir)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	want := []string{
		filepath.Join(outputDir, "icon-16x16.png"),
		filepath.Join(outputDir, "icon-48x48.png"),
		filepath.Join(outputDir, "icon-32x32.ico"),
	}

	if len(paths) != len(want) {
		t.Fatalf("Generate returned %v, want %v", paths, want)
	}

	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("path[%d] = %q, want %q", i, paths[i], want[i])
		}

		info, err := os.Stat(want[i])
		if err != nil || info.Size() == 0 {
			t.Errorf("expected non-empty file %s: %v", want[i], err)
		}
	}

	f, err := os.Open(want[1])
	if err != nil {
		t.Fatalf("Failed to open generated png: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Generated png does not decode: %v", err)
	}

	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
		t.Errorf("icon bounds = %v, want 48x48", b)
	}

	// Transparency from the source survives resizing.
	if _, _, _, a := img.At(47, 24).RGBA(); a != 0 {
		t.Errorf("right edge alpha = %d, want 0", a)
	}

	if _, _, _, a := img.At(0, 24).RGBA(); a != 0xffff {
		t.Errorf("left edge alpha = %d, want opaque", a)
	}
}

func TestGenerator_Generate_NoIco(t *testing.T) {
	source := writeSource(t, 10, 10)

	paths, err := NewGenerator(Squares([]int{8}), 0, discardLogger()).Generate(source, t.TempDir())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(paths) != 1 {
		t.Errorf("Generate returned %v, want a single png", paths)
	}
}

func TestGenerator_Generate_Errors(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to write garbage file: %v", err)
	}

	valid := writeSource(t, 4, 4)

	tests := []struct {
		name    string
		gen     *Generator
		source  string
		wantErr error
	}{
		{"missing source", NewGenerator(DefaultSizes, 72, discardLogger()), filepath.Join(dir, "nope.png"), ErrSourceNotFound},
		{"undecodable source", NewGenerator(DefaultSizes, 72, discardLogger()), garbage, ErrDecodeSource},
		{"zero size", NewGenerator([]Size{{0, 0}}, 0, discardLogger()), valid, ErrInvalidSize},
		{"oversized", NewGenerator(Squares([]int{MaxSize + 1}), 0, discardLogger()), valid, ErrInvalidSize},
		{"oversized ico", NewGenerator(nil, MaxIcoSize + 1, discardLogger()), valid, ErrInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, "out-"+filepath.Base(tt.name))

			_, err := tt.gen.Generate(tt.source, out)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Generate error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSquares(t *testing.T) {
	got := Squares([]int{72, 512})
	if len(got) != 2 || got[0] != (Size{72, 72}) || got[1] != (Size{512, 512}) {
		t.Errorf("Squares() = %v", got)
	}
}
