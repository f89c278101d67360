// Package icons renders a source image into the PNG and ICO icon set used by the catalog site.
package icons

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"

	"catalogo/internal/logger"

	ico "github.com/sergeymakinen/go-ico"
	xdraw "golang.org/x/image/draw"
)

// Limits on generated sizes. ICO entries cannot exceed 256 pixels.
const (
	MaxSize    = 1024
	MaxIcoSize = 256
)

// Generator errors.
var (
	ErrSourceNotFound = errors.New("icon source image not found")
	ErrDecodeSource   = errors.New("failed to decode icon source image")
	ErrInvalidSize    = errors.New("invalid icon size")
)

// Size is the pixel size of one generated icon.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// DefaultSizes are the web app manifest sizes.
var DefaultSizes = []Size{
	{72, 72},
	{96, 96},
	{128, 128},
	{144, 144},
	{152, 152},
	{192, 192},
	{384, 384},
	{512, 512},
}

// Squares turns edge lengths into square sizes.
func Squares(edges []int) []Size {
	sizes := make([]Size, 0, len(edges))
	for _, e := range edges {
		sizes = append(sizes, Size{Width: e, Height: e})
	}

	return sizes
}

// Generator writes icon-<w>x<h>.png for every size plus one icon-<s>x<s>.ico.
type Generator struct {
	log     *logger.Logger
	sizes   []Size
	icoSize int
}

// NewGenerator creates a generator. An icoSize of 0 skips the ICO file.
func NewGenerator(sizes []Size, icoSize int, log *logger.Logger) *Generator {
	return &Generator{sizes: sizes, icoSize: icoSize, log: log}
}

// Generate decodes source and writes the icon set into outputDir, creating it
// if needed. It returns the written paths in generation order.
func (g *Generator) Generate(source, outputDir string) ([]string, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}

	src, format, err := decodeSource(source)
	if err != nil {
		return nil, err
	}

	g.log.Debug("Source decoded", "path", source, "format", format, "size", Size{src.Rect.Dx(), src.Rect.Dy()}.String())

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string

	for _, size := range g.sizes {
		path := filepath.Join(outputDir, fmt.Sprintf("icon-%s.png", size))

		var buf bytes.Buffer
		if err := png.Encode(&buf, Resize(src, size)); err != nil {
			return written, fmt.Errorf("failed to encode %s: %w", path, err)
		}

		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}

		g.log.Debug("Icon generated", "path", path, "size", size.String())

		written = append(written, path)
	}

	if g.icoSize > 0 {
		size := Size{Width: g.icoSize, Height: g.icoSize}
		path := filepath.Join(outputDir, fmt.Sprintf("icon-%s.ico", size))

		var buf bytes.Buffer
		if err := ico.Encode(&buf, Resize(src, size)); err != nil {
			return written, fmt.Errorf("failed to encode %s: %w", path, err)
		}

		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}

		g.log.Debug("Icon generated", "path", path, "size", size.String())

		written = append(written, path)
	}

	return written, nil
}

func (g *Generator) validate() error {
	for _, s := range g.sizes {
		if s.Width < 1 || s.Height < 1 || s.Width > MaxSize || s.Height > MaxSize {
			return fmt.Errorf("%w: %s", ErrInvalidSize, s)
		}
	}

	if g.icoSize < 0 || g.icoSize > MaxIcoSize {
		return fmt.Errorf("%w: ico %d", ErrInvalidSize, g.icoSize)
	}

	return nil
}

func decodeSource(path string) (*image.NRGBA, string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}

	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrDecodeSource, err)
	}

	// Normalize to NRGBA so alpha survives scaling.
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)

	return nrgba, format, nil
}

// Resize scales src to exactly size with Catmull-Rom resampling. The aspect
// ratio is not preserved.
func Resize(src image.Image, size Size) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size.Width, size.Height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	return dst
}
