// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/juzzbott/lightframe-engine/driver"
	"github.com/juzzbott/lightframe-engine/resource"
)

// ErrUnsupportedChannels means that an image does not
// decode to 3 (RGB) or 4 (RGBA) channels.
var ErrUnsupportedChannels = errors.New("assets: unsupported number of image channels")

// ErrNotImage means that file data is not a known
// image format.
var ErrNotImage = errors.New("assets: not an image")

// TextureLoader creates textures from image files.
// Images are flipped vertically, so that the first row
// of texels is the bottom of the image.
// Color is stored with straight (non-premultiplied)
// alpha.
type TextureLoader struct {
	gpu driver.GPU
	log *zap.Logger
	// Mipmap is set in the TexParam of every texture.
	Mipmap bool
}

// NewTextureLoader creates a new TextureLoader.
func NewTextureLoader(gpu driver.GPU, log *zap.Logger) *TextureLoader {
	if log == nil {
		log = zap.NewNop()
	}
	return &TextureLoader{gpu: gpu, log: log.Named("texture")}
}

// Load implements resource.Loader.
// On failure, it returns a texture that is not loaded.
func (l *TextureLoader) Load(d *resource.Descriptor) (any, error) {
	param, pix, err := DecodeImage(d.Data)
	if err != nil {
		tex, _ := l.gpu.NewTexture(&driver.TexParam{}, nil)
		return tex, fmt.Errorf("assets: texture %q: %w", d.Path, err)
	}
	param.Mipmap = l.Mipmap
	tex, err := l.gpu.NewTexture(param, pix)
	if err != nil {
		return tex, fmt.Errorf("assets: texture %q: %w", d.Path, err)
	}
	l.log.Debug("texture created",
		zap.String("path", d.Path),
		zap.Int("width", param.Width),
		zap.Int("height", param.Height),
		zap.Int("channels", param.PixelFmt.Channels()))
	return tex, nil
}

// DecodeImage decodes data into tightly packed, vertically
// flipped 8-bit pixels.
// Only images with 3 or 4 channels are supported.
func DecodeImage(data []byte) (*driver.TexParam, []byte, error) {
	if !filetype.IsImage(data) {
		return nil, nil, ErrNotImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	ch := channels(img)
	if ch != 3 && ch != 4 {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, ch)
	}
	nrgba := toNRGBA(img)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()
	// FlipV only moves bytes, so viewing the NRGBA pixels
	// as RGBA keeps their values intact.
	rgba := transform.FlipV(&image.RGBA{Pix: nrgba.Pix, Stride: nrgba.Stride, Rect: nrgba.Rect})
	param := &driver.TexParam{Width: w, Height: h}
	if ch == 4 {
		param.PixelFmt = driver.RGBA8un
		pix := make([]byte, w*h*4)
		for y := range h {
			copy(pix[y*w*4:(y+1)*w*4], rgba.Pix[y*rgba.Stride:])
		}
		return param, pix, nil
	}
	param.PixelFmt = driver.RGB8un
	pix := make([]byte, 0, w*h*3)
	for y := range h {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			pix = append(pix, row[x], row[x+1], row[x+2])
		}
	}
	return param, pix, nil
}

// toNRGBA returns img as an *image.NRGBA whose bounds
// start at the origin.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Rect, img, b.Min, draw.Src)
	return n
}

// channels returns the number of channels of img.
// Opaque color images have 3 channels.
func channels(img image.Image) int {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model, color.AlphaModel, color.Alpha16Model:
		return 1
	case color.YCbCrModel, color.CMYKModel:
		return 3
	}
	if p, ok := img.(interface{ Opaque() bool }); ok && p.Opaque() {
		return 3
	}
	return 4
}
