package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample shrinks a supersampled frame to w×h. Frames are drawn over a
// transparent clear, so color is resampled premultiplied; otherwise the
// cleared texels would pull mesh and particle edges toward black.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}

	src := premultiply(img)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return unpremultiply(dst)
}

func premultiply(img *image.NRGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	rowLen := 4 * b.Dx()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		s := img.Pix[img.PixOffset(b.Min.X, y):][:rowLen]
		d := out.Pix[out.PixOffset(b.Min.X, y):][:rowLen]
		for i := 0; i < rowLen; i += 4 {
			a := uint32(s[i+3])
			d[i] = uint8((uint32(s[i])*a + 127) / 255)
			d[i+1] = uint8((uint32(s[i+1])*a + 127) / 255)
			d[i+2] = uint8((uint32(s[i+2])*a + 127) / 255)
			d[i+3] = s[i+3]
		}
	}
	return out
}

func unpremultiply(img *image.RGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := uint32(img.Pix[i+3])
		out.Pix[i+3] = uint8(a)
		if a == 0 {
			continue
		}
		for c := 0; c < 3; c++ {
			out.Pix[i+c] = uint8(min((uint32(img.Pix[i+c])*255+a/2)/a, 255))
		}
	}
	return out
}
