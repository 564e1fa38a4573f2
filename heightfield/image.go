package heightfield

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cartolab/plymesh/errs"
	"github.com/cartolab/plymesh/internal/strutil"
)

// RGB is one overlay pixel colour.
type RGB struct {
	R, G, B uint8
}

// GreyRGB is the colour assigned to cells with no overlay.
var GreyRGB = RGB{R: 128, G: 128, B: 128}

// Overlay is a colour raster aligned with a grid. Pixels are stored with
// row 0 at the southern edge; image files have row 0 at the top, so both
// loaders flip vertically.
type Overlay struct {
	width  int
	height int
	pix    [][]RGB
}

func (o *Overlay) Width() int { return o.width }

func (o *Overlay) Height() int { return o.height }

// Pixel returns the colour at (x, y), y 0 being the southern edge.
func (o *Overlay) Pixel(x, y int) (RGB, error) {
	if x < 0 || x >= o.width || y < 0 || y >= o.height {
		return RGB{}, fmt.Errorf("%w: (%d,%d) in %dx%d overlay", errs.ErrPixelOutOfRange, x, y, o.width, o.height)
	}

	return o.pix[y][x], nil
}

// ReadOverlay reads a colour raster. PNG files are recognised by extension;
// anything else is parsed as an ImageMagick text dump.
func ReadOverlay(path string) (*Overlay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var o *Overlay
	if filepath.Ext(path) == ".png" {
		o, err = readPNG(f)
	} else {
		o, err = readImageMagickText(bufio.NewReader(f))
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return o, nil
}

func newOverlay(width, height int) (*Overlay, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: overlay dimensions %dx%d", errs.ErrParse, width, height)
	}

	pix := make([][]RGB, height)
	for i := range pix {
		pix[i] = make([]RGB, width)
	}

	return &Overlay{width: width, height: height, pix: pix}, nil
}

// readImageMagickText parses the "convert image txt:" enumeration format:
//
//	# ImageMagick pixel enumeration: 20,20,255,srgb
//	0,0: (32,31,225)  #201FE1  srgb(32,31,225)
func readImageMagickText(br *bufio.Reader) (*Overlay, error) {
	header, err := br.ReadString('\n')
	if err != nil && header == "" {
		return nil, fmt.Errorf("%w: empty image file", errs.ErrParse)
	}

	const prefix = "# ImageMagick pixel enumeration:"
	if !strings.HasPrefix(header, prefix) {
		return nil, fmt.Errorf("%w: bad image header %q", errs.ErrParse, strings.TrimSpace(header))
	}
	dims := strutil.Split(strings.TrimSpace(strings.TrimPrefix(header, prefix)), ',')
	if len(dims) < 2 {
		return nil, fmt.Errorf("%w: bad image header %q", errs.ErrParse, strings.TrimSpace(header))
	}
	width, err := strconv.Atoi(dims[0])
	if err != nil {
		return nil, fmt.Errorf("%w: image width %q", errs.ErrParse, dims[0])
	}
	height, err := strconv.Atoi(dims[1])
	if err != nil {
		return nil, fmt.Errorf("%w: image height %q", errs.ErrParse, dims[1])
	}

	o, err := newOverlay(width, height)
	if err != nil {
		return nil, err
	}

	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, readErr
		}

		if tokens := strutil.Fields(line); len(tokens) > 0 {
			if len(tokens) < 2 {
				return nil, fmt.Errorf("%w: bad pixel line %q", errs.ErrParse, strings.TrimSpace(line))
			}

			coords := strutil.Split(strings.TrimSuffix(tokens[0], ":"), ',')
			if len(coords) != 2 {
				return nil, fmt.Errorf("%w: bad pixel coordinates %q", errs.ErrParse, tokens[0])
			}
			x, err := strconv.Atoi(coords[0])
			if err != nil {
				return nil, fmt.Errorf("%w: pixel x %q", errs.ErrParse, coords[0])
			}
			y, err := strconv.Atoi(coords[1])
			if err != nil {
				return nil, fmt.Errorf("%w: pixel y %q", errs.ErrParse, coords[1])
			}
			if x < 0 || x >= width || y < 0 || y >= height {
				return nil, fmt.Errorf("%w: (%d,%d) in %dx%d image", errs.ErrPixelOutOfRange, x, y, width, height)
			}

			rgb, err := parseRGBTuple(tokens[1])
			if err != nil {
				return nil, err
			}
			// Flip vertically: image row 0 is the northern edge.
			o.pix[height-1-y][x] = rgb
		}

		if readErr == io.EOF {
			break
		}
	}

	return o, nil
}

// parseRGBTuple parses "(r,g,b)" with an optional alpha component, which is
// ignored.
func parseRGBTuple(token string) (RGB, error) {
	token = strings.TrimPrefix(token, "(")
	token = strings.TrimSuffix(token, ")")
	parts := strutil.Split(token, ',')
	if len(parts) < 3 {
		return RGB{}, fmt.Errorf("%w: colour tuple %q", errs.ErrParse, token)
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(parts[i])
		if err != nil || v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("%w: colour channel %q", errs.ErrParse, parts[i])
		}
		channels[i] = uint8(v)
	}

	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// readPNG decodes a PNG overlay, flipping it vertically like the text
// loader.
func readPNG(r io.Reader) (*Overlay, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
	}

	bounds := img.Bounds()
	o, err := newOverlay(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			o.pix[bounds.Max.Y-1-y][x-bounds.Min.X] = RGB{
				R: uint8(r16 >> 8),
				G: uint8(g16 >> 8),
				B: uint8(b16 >> 8),
			}
		}
	}

	return o, nil
}
