package raster

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads any registered image format (PNG, JPEG, GIF, BMP, TIFF, WebP).
func Decode(r io.Reader) (*Image, string, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	img, err := FromImage(src)
	if err != nil {
		return nil, format, err
	}
	return img, format, nil
}

// Load decodes the image file at path.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Fit rescales img to fit inside w*h. With keepAspect the smaller of the two
// scale factors is used for both axes. The returned scale factors map source
// coordinates to destination coordinates.
func Fit(img *Image, w, h int, keepAspect bool) (*Image, float64, float64, error) {
	if w <= 0 || h <= 0 {
		return nil, 0, 0, fmt.Errorf("%w: fit target %dx%d", ErrMalformedRaster, w, h)
	}
	sx := float64(w) / float64(img.Width)
	sy := float64(h) / float64(img.Height)
	if keepAspect {
		if sx < sy {
			sy = sx
		} else {
			sx = sy
		}
	}
	dw := max(1, int(float64(img.Width)*sx+0.5))
	dh := max(1, int(float64(img.Height)*sy+0.5))
	if dw == img.Width && dh == img.Height {
		return img, 1, 1, nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img.ToImage(), image.Rect(0, 0, img.Width, img.Height), draw.Src, nil)
	out, err := FromImage(dst)
	if err != nil {
		return nil, 0, 0, err
	}
	return out, sx, sy, nil
}
