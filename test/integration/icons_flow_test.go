package integration

import (
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"testing"

	"catalogo/internal/config"
	"catalogo/internal/icons"
	"catalogo/internal/logger"
)

func TestIconsFlow(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.jpg")

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: 90, B: uint8(y * 4), A: 255})
		}
	}

	f, err := os.Create(source)
	if err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}

	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatalf("Failed to encode source: %v", err)
	}

	f.Close()

	cfg := config.Default()
	cfg.Icons.Source = source
	cfg.Icons.OutputDir = filepath.Join(dir, "icons")

	if err := cfg.ValidateIcons(); err != nil {
		t.Fatalf("default icon config invalid: %v", err)
	}

	gen := icons.NewGenerator(icons.Squares(cfg.Icons.Sizes), cfg.Icons.IcoSize, logger.New(io.Discard, "error"))

	paths, err := gen.Generate(cfg.Icons.Source, cfg.Icons.OutputDir)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Eight manifest PNGs plus the 72x72 ICO.
	if len(paths) != len(icons.DefaultSizes)+1 {
		t.Fatalf("generated %d files, want %d", len(paths), len(icons.DefaultSizes)+1)
	}

	for _, want := range []string{"icon-72x72.png", "icon-512x512.png", "icon-72x72.ico"} {
		if _, err := os.Stat(filepath.Join(cfg.Icons.OutputDir, want)); err != nil {
			t.Errorf("missing %s: %v", want, err)
		}
	}
}
