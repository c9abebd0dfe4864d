package pixelio

import "fmt"

// ImageType is the storage kind of an image. The order matches the native
// codec library, so values can be passed through unchanged.
type ImageType int

const (
	TypeUnknown ImageType = iota
	TypeBitmap            // 1..32 bpp colour or palette bitmap
	TypeUint16            // 16-bit unsigned scalar
	TypeInt16             // 16-bit signed scalar
	TypeUint32            // 32-bit unsigned scalar
	TypeInt32             // 32-bit signed scalar
	TypeFloat             // 32-bit IEEE scalar
	TypeDouble            // 64-bit IEEE scalar
	TypeComplex           // two 64-bit IEEE values
	TypeRGB16             // 48-bit RGB, 16 bits per channel
	TypeRGBA16            // 64-bit RGBA, 16 bits per channel
	TypeRGBF              // 96-bit RGB, float per channel
	TypeRGBAF             // 128-bit RGBA, float per channel
)

var imageTypeNames = [...]string{
	"Unknown", "Bitmap", "Uint16", "Int16", "Uint32", "Int32",
	"Float", "Double", "Complex", "RGB16", "RGBA16", "RGBF", "RGBAF",
}

func (t ImageType) String() string {
	if t < 0 || int(t) >= len(imageTypeNames) {
		return fmt.Sprintf("ImageType(%d)", int(t))
	}
	return imageTypeNames[t]
}

// ColorMasks describe where red, green and blue live inside packed 16, 24
// and 32-bit bitmap pixels.
type ColorMasks struct {
	Red, Green, Blue uint32
}

// Masks used by 16-bit bitmaps.
var (
	Masks555 = ColorMasks{Red: 0x7C00, Green: 0x03E0, Blue: 0x001F}
	Masks565 = ColorMasks{Red: 0xF800, Green: 0x07E0, Blue: 0x001F}
	// MasksBGR is the byte order of 24 and 32-bit bitmaps.
	MasksBGR = ColorMasks{Red: 0x00FF0000, Green: 0x0000FF00, Blue: 0x000000FF}
)

// Layout identifies the binary record stored for one pixel. The set is
// closed; every Layout has exactly one Pixel type.
type Layout uint8

const (
	LayoutUnknown Layout = iota
	LayoutRGB555         // 16-bit packed 5-5-5
	LayoutRGB565         // 16-bit packed 5-6-5
	LayoutBGR24          // 8-bit B, G, R
	LayoutBGRA32         // 8-bit B, G, R, A
	LayoutRGB16          // 16-bit R, G, B
	LayoutRGBA16         // 16-bit R, G, B, A
	LayoutRGBF           // float32 R, G, B
	LayoutRGBAF          // float32 R, G, B, A
	LayoutUint16
	LayoutInt16
	LayoutUint32
	LayoutInt32
	LayoutFloat
	LayoutDouble
	LayoutComplex

	layoutCount
)

// LayoutInfo is the static description of a Layout.
type LayoutInfo struct {
	Name string
	// BitsPerPixel is the size of one stored pixel record.
	BitsPerPixel int
	// RGBA is set for layouts that convert to and from RGBAColor.
	RGBA bool
	// HasAlpha is set when the record stores an alpha channel.
	HasAlpha bool
	// Float is set when channels are IEEE floats, which convert losslessly.
	Float bool
}

var layoutInfoTable = [layoutCount]LayoutInfo{
	LayoutUnknown: {Name: "Unknown"},
	LayoutRGB555:  {Name: "RGB555", BitsPerPixel: 16, RGBA: true},
	LayoutRGB565:  {Name: "RGB565", BitsPerPixel: 16, RGBA: true},
	LayoutBGR24:   {Name: "BGR24", BitsPerPixel: 24, RGBA: true},
	LayoutBGRA32:  {Name: "BGRA32", BitsPerPixel: 32, RGBA: true, HasAlpha: true},
	LayoutRGB16:   {Name: "RGB16", BitsPerPixel: 48, RGBA: true},
	LayoutRGBA16:  {Name: "RGBA16", BitsPerPixel: 64, RGBA: true, HasAlpha: true},
	LayoutRGBF:    {Name: "RGBF", BitsPerPixel: 96, RGBA: true, Float: true},
	LayoutRGBAF:   {Name: "RGBAF", BitsPerPixel: 128, RGBA: true, HasAlpha: true, Float: true},
	LayoutUint16:  {Name: "Uint16", BitsPerPixel: 16},
	LayoutInt16:   {Name: "Int16", BitsPerPixel: 16},
	LayoutUint32:  {Name: "Uint32", BitsPerPixel: 32},
	LayoutInt32:   {Name: "Int32", BitsPerPixel: 32},
	LayoutFloat:   {Name: "Float", BitsPerPixel: 32, Float: true},
	LayoutDouble:  {Name: "Double", BitsPerPixel: 64, Float: true},
	LayoutComplex: {Name: "Complex", BitsPerPixel: 128, Float: true},
}

// Info returns the static description of l.
func (l Layout) Info() LayoutInfo {
	if l >= layoutCount {
		return layoutInfoTable[LayoutUnknown]
	}
	return layoutInfoTable[l]
}

func (l Layout) String() string {
	if l >= layoutCount {
		return fmt.Sprintf("Layout(%d)", uint8(l))
	}
	return layoutInfoTable[l].Name
}

// BytesPerPixel is the stride between neighbouring pixels of a row.
func (l Layout) BytesPerPixel() int {
	return l.Info().BitsPerPixel / 8
}

// IsRGBA reports whether pixels of this layout convert to RGBAColor.
func (l Layout) IsRGBA() bool {
	return l.Info().RGBA
}

// LayoutFor selects the pixel layout of an image from its runtime type,
// bit depth and, for 16-bit bitmaps, the green mask. Palette depths and
// unknown combinations fail with ErrNotSupported.
func LayoutFor(t ImageType, bpp int, greenMask uint32) (Layout, error) {
	var l Layout
	switch t {
	case TypeBitmap:
		switch bpp {
		case 16:
			if greenMask == Masks555.Green {
				l = LayoutRGB555
			} else {
				l = LayoutRGB565
			}
		case 24:
			l = LayoutBGR24
		case 32:
			l = LayoutBGRA32
		default:
			return LayoutUnknown, fmt.Errorf("%w: %d bpp bitmap", ErrNotSupported, bpp)
		}
	case TypeUint16:
		l = LayoutUint16
	case TypeInt16:
		l = LayoutInt16
	case TypeUint32:
		l = LayoutUint32
	case TypeInt32:
		l = LayoutInt32
	case TypeFloat:
		l = LayoutFloat
	case TypeDouble:
		l = LayoutDouble
	case TypeComplex:
		l = LayoutComplex
	case TypeRGB16:
		l = LayoutRGB16
	case TypeRGBA16:
		l = LayoutRGBA16
	case TypeRGBF:
		l = LayoutRGBF
	case TypeRGBAF:
		l = LayoutRGBAF
	default:
		return LayoutUnknown, fmt.Errorf("%w: image type %v", ErrNotSupported, t)
	}
	if want := l.Info().BitsPerPixel; want != bpp {
		return LayoutUnknown, fmt.Errorf("%w: %v image with %d bpp, layout %v needs %d",
			ErrNotSupported, t, bpp, l, want)
	}
	return l, nil
}
