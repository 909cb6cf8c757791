package layout

import (
	"bytes"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	"image/png"
	"strings"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// ErrNoImageData is returned by DecodeImage for an empty source.
var ErrNoImageData = errors.New("layout: no image data")

// Image is a decoded raster ready for embedding. Data is JPEG or PNG encoded as
// named by Type.
type Image struct {
	Name          string // stable identifier derived from the content
	Type          string // "JPG" or "PNG"
	Data          []byte
	Width, Height int // source pixels
}

// DecodeImage decodes a data URL ("data:image/png;base64,...") or bare base64
// payload. JPEG data is kept as is; every other supported format (PNG, GIF, BMP,
// TIFF, WebP) is re-encoded as non-interlaced PNG.
func DecodeImage(src string) (*Image, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, ErrNoImageData
	}
	if strings.HasPrefix(src, "data:") {
		i := strings.IndexByte(src, ',')
		if i < 0 {
			return nil, fmt.Errorf("layout: malformed data URL")
		}
		if !strings.Contains(src[:i], ";base64") {
			return nil, fmt.Errorf("layout: data URL is not base64 encoded")
		}
		src = src[i+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(src)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(src, "="))
		if err != nil {
			return nil, fmt.Errorf("layout: decoding base64 image: %w", err)
		}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("layout: reading image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("layout: image has no area (%dx%d)", cfg.Width, cfg.Height)
	}

	img := &Image{Width: cfg.Width, Height: cfg.Height}
	if format == "jpeg" {
		img.Type, img.Data = "JPG", raw
	} else {
		decoded, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("layout: decoding %s image: %w", format, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, decoded); err != nil {
			return nil, fmt.Errorf("layout: re-encoding %s image: %w", format, err)
		}
		img.Type, img.Data = "PNG", buf.Bytes()
	}

	sum := sha1.Sum(img.Data)
	img.Name = "img-" + hex.EncodeToString(sum[:8])
	return img, nil
}

// ScaledHeight returns the display height that keeps the image's aspect ratio at
// the given display width.
func (img *Image) ScaledHeight(width float64) float64 {
	return float64(img.Height) * (width / float64(img.Width))
}
