// Package texture holds float-channel images written by the rasterizer,
// plus the inpainting and conversion steps that prepare them for export.
package texture

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Image is a dense float32 image with a fixed channel count per texel.
// Values are kept unclamped until conversion.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []float32
}

// New returns a zeroed image.
func New(width, height, channels int) *Image {
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]float32, width*height*channels),
	}
}

// At returns channel c of the texel at (x, y).
func (im *Image) At(x, y, c int) float32 {
	return im.Pix[(y*im.Width+x)*im.Channels+c]
}

// Set writes all channels of the texel at (x, y).
func (im *Image) Set(x, y int, v ...float32) {
	base := (y*im.Width + x) * im.Channels
	copy(im.Pix[base:base+im.Channels], v)
}

// FlipVertical mirrors the image across its horizontal midline in place.
// Rasterization addresses texels with v growing upward while image files
// store rows top to bottom.
func (im *Image) FlipVertical() {
	row := im.Width * im.Channels
	tmp := make([]float32, row)
	for y := 0; y < im.Height/2; y++ {
		top := im.Pix[y*row : (y+1)*row]
		bot := im.Pix[(im.Height-1-y)*row : (im.Height-y)*row]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}

// ToNRGBA converts the image to 8-bit RGBA, clamping each channel to
// [0, 1]. One channel replicates to gray, two map to red and green, three
// to RGB. Alpha is always opaque.
func (im *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, im.Width, im.Height))
	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			var r, g, b uint8
			switch im.Channels {
			case 1:
				v := toByte(im.At(x, y, 0))
				r, g, b = v, v, v
			case 2:
				r = toByte(im.At(x, y, 0))
				g = toByte(im.At(x, y, 1))
			default:
				r = toByte(im.At(x, y, 0))
				g = toByte(im.At(x, y, 1))
				b = toByte(im.At(x, y, 2))
			}
			out.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return out
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Downscale reduces the image extent by an integer factor with Catmull-Rom
// filtering. Textures are rasterized oversampled and reduced here to tame
// aliasing at chart edges.
func Downscale(src *image.NRGBA, factor int) *image.NRGBA {
	if factor <= 1 {
		return src
	}
	w := src.Bounds().Dx() / factor
	h := src.Bounds().Dy() / factor
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
