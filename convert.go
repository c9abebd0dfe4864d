package pixelio

import (
	"fmt"
	"math"
)

// ToRGBA converts an RGBA-capable pixel into a normalized colour. Integer
// channels are divided by their maximum, float channels are taken as they
// are and must already lie in [0,1]. Layouts without alpha report A=1.
func ToRGBA(p Pixel) (RGBAColor, error) {
	switch v := p.(type) {
	case RGB555:
		return rgba(n5(v.R), n5(v.G), n5(v.B), 1), nil
	case RGB565:
		return rgba(n5(v.R), float64(v.G&0x3F)/63, n5(v.B), 1), nil
	case BGR24:
		return rgba(n8(v.R), n8(v.G), n8(v.B), 1), nil
	case BGRA32:
		return rgba(n8(v.R), n8(v.G), n8(v.B), n8(v.A)), nil
	case RGB16:
		return rgba(n16(v.R), n16(v.G), n16(v.B), 1), nil
	case RGBA16:
		return rgba(n16(v.R), n16(v.G), n16(v.B), n16(v.A)), nil
	case RGBF:
		return NewRGBAColor(float64(v.R), float64(v.G), float64(v.B), 1)
	case RGBAF:
		return NewRGBAColor(float64(v.R), float64(v.G), float64(v.B), float64(v.A))
	case nil:
		return RGBAColor{}, fmt.Errorf("%w: nil pixel", ErrNotSupported)
	}
	return RGBAColor{}, fmt.Errorf("%w: %v has no RGBA representation", ErrNotSupported, p.Layout())
}

// FromRGBA builds the pixel record of layout l closest to c. Alpha is
// dropped by layouts that cannot store it.
func FromRGBA(l Layout, c RGBAColor) (Pixel, error) {
	r, g, b, a := c.R(), c.G(), c.B(), c.A()
	switch l {
	case LayoutRGB555:
		return RGB555{R: q(r, 31), G: q(g, 31), B: q(b, 31)}, nil
	case LayoutRGB565:
		return RGB565{R: q(r, 31), G: q(g, 63), B: q(b, 31)}, nil
	case LayoutBGR24:
		return BGR24{B: q(b, 255), G: q(g, 255), R: q(r, 255)}, nil
	case LayoutBGRA32:
		return BGRA32{B: q(b, 255), G: q(g, 255), R: q(r, 255), A: q(a, 255)}, nil
	case LayoutRGB16:
		return RGB16{R: q16(r), G: q16(g), B: q16(b)}, nil
	case LayoutRGBA16:
		return RGBA16{R: q16(r), G: q16(g), B: q16(b), A: q16(a)}, nil
	case LayoutRGBF:
		return RGBF{R: float32(r), G: float32(g), B: float32(b)}, nil
	case LayoutRGBAF:
		return RGBAF{R: float32(r), G: float32(g), B: float32(b), A: float32(a)}, nil
	}
	return nil, fmt.Errorf("%w: %v has no RGBA representation", ErrNotSupported, l)
}

func n5(v uint8) float64   { return float64(v&0x1F) / 31 }
func n8(v uint8) float64   { return float64(v) / 255 }
func n16(v uint16) float64 { return float64(v) / 65535 }

func q(v, max float64) uint8 { return uint8(math.Round(v * max)) }
func q16(v float64) uint16   { return uint16(math.Round(v * 65535)) }
