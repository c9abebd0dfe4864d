package pixelio

import (
	"encoding/binary"
	"math"
)

// Pixel is one stored pixel record. The set of implementations is closed and
// matches the Layout constants one to one.
type Pixel interface {
	Layout() Layout
	// put writes the record into b, which holds at least BytesPerPixel bytes.
	put(b []byte)
}

var le = binary.LittleEndian

// RGB555 is a 16-bit pixel with five bits per channel. Channel values are
// 0..31; higher bits are dropped on store.
type RGB555 struct{ R, G, B uint8 }

// RGB565 is a 16-bit pixel with a six bit green channel. R and B are 0..31,
// G is 0..63.
type RGB565 struct{ R, G, B uint8 }

// BGR24 is a 24-bit bitmap pixel, stored blue first.
type BGR24 struct{ B, G, R uint8 }

// BGRA32 is a 32-bit bitmap pixel, stored blue first.
type BGRA32 struct{ B, G, R, A uint8 }

type RGB16 struct{ R, G, B uint16 }

type RGBA16 struct{ R, G, B, A uint16 }

type RGBF struct{ R, G, B float32 }

type RGBAF struct{ R, G, B, A float32 }

// Scalar pixels of the non-colour image types.
type (
	Uint16Pixel uint16
	Int16Pixel  int16
	Uint32Pixel uint32
	Int32Pixel  int32
	FloatPixel  float32
	DoublePixel float64
)

type ComplexPixel struct{ Real, Imag float64 }

func (RGB555) Layout() Layout       { return LayoutRGB555 }
func (RGB565) Layout() Layout       { return LayoutRGB565 }
func (BGR24) Layout() Layout        { return LayoutBGR24 }
func (BGRA32) Layout() Layout       { return LayoutBGRA32 }
func (RGB16) Layout() Layout        { return LayoutRGB16 }
func (RGBA16) Layout() Layout       { return LayoutRGBA16 }
func (RGBF) Layout() Layout         { return LayoutRGBF }
func (RGBAF) Layout() Layout        { return LayoutRGBAF }
func (Uint16Pixel) Layout() Layout  { return LayoutUint16 }
func (Int16Pixel) Layout() Layout   { return LayoutInt16 }
func (Uint32Pixel) Layout() Layout  { return LayoutUint32 }
func (Int32Pixel) Layout() Layout   { return LayoutInt32 }
func (FloatPixel) Layout() Layout   { return LayoutFloat }
func (DoublePixel) Layout() Layout  { return LayoutDouble }
func (ComplexPixel) Layout() Layout { return LayoutComplex }

func (p RGB555) put(b []byte) {
	le.PutUint16(b, uint16(p.R&0x1F)<<10|uint16(p.G&0x1F)<<5|uint16(p.B&0x1F))
}

func (p RGB565) put(b []byte) {
	le.PutUint16(b, uint16(p.R&0x1F)<<11|uint16(p.G&0x3F)<<5|uint16(p.B&0x1F))
}

func (p BGR24) put(b []byte) {
	b[0], b[1], b[2] = p.B, p.G, p.R
}

func (p BGRA32) put(b []byte) {
	b[0], b[1], b[2], b[3] = p.B, p.G, p.R, p.A
}

func (p RGB16) put(b []byte) {
	le.PutUint16(b[0:], p.R)
	le.PutUint16(b[2:], p.G)
	le.PutUint16(b[4:], p.B)
}

func (p RGBA16) put(b []byte) {
	le.PutUint16(b[0:], p.R)
	le.PutUint16(b[2:], p.G)
	le.PutUint16(b[4:], p.B)
	le.PutUint16(b[6:], p.A)
}

func (p RGBF) put(b []byte) {
	le.PutUint32(b[0:], math.Float32bits(p.R))
	le.PutUint32(b[4:], math.Float32bits(p.G))
	le.PutUint32(b[8:], math.Float32bits(p.B))
}

func (p RGBAF) put(b []byte) {
	le.PutUint32(b[0:], math.Float32bits(p.R))
	le.PutUint32(b[4:], math.Float32bits(p.G))
	le.PutUint32(b[8:], math.Float32bits(p.B))
	le.PutUint32(b[12:], math.Float32bits(p.A))
}

func (p Uint16Pixel) put(b []byte) { le.PutUint16(b, uint16(p)) }
func (p Int16Pixel) put(b []byte)  { le.PutUint16(b, uint16(p)) }
func (p Uint32Pixel) put(b []byte) { le.PutUint32(b, uint32(p)) }
func (p Int32Pixel) put(b []byte)  { le.PutUint32(b, uint32(p)) }
func (p FloatPixel) put(b []byte)  { le.PutUint32(b, math.Float32bits(float32(p))) }
func (p DoublePixel) put(b []byte) { le.PutUint64(b, math.Float64bits(float64(p))) }

func (p ComplexPixel) put(b []byte) {
	le.PutUint64(b[0:], math.Float64bits(p.Real))
	le.PutUint64(b[8:], math.Float64bits(p.Imag))
}

func f32(b []byte) float32 { return math.Float32frombits(le.Uint32(b)) }
func f64(b []byte) float64 { return math.Float64frombits(le.Uint64(b)) }

// decoders reads the record of each layout from the start of a byte slice.
var decoders = [layoutCount]func(b []byte) Pixel{
	LayoutRGB555: func(b []byte) Pixel {
		v := le.Uint16(b)
		return RGB555{R: uint8(v>>10) & 0x1F, G: uint8(v>>5) & 0x1F, B: uint8(v) & 0x1F}
	},
	LayoutRGB565: func(b []byte) Pixel {
		v := le.Uint16(b)
		return RGB565{R: uint8(v>>11) & 0x1F, G: uint8(v>>5) & 0x3F, B: uint8(v) & 0x1F}
	},
	LayoutBGR24: func(b []byte) Pixel {
		return BGR24{B: b[0], G: b[1], R: b[2]}
	},
	LayoutBGRA32: func(b []byte) Pixel {
		return BGRA32{B: b[0], G: b[1], R: b[2], A: b[3]}
	},
	LayoutRGB16: func(b []byte) Pixel {
		return RGB16{R: le.Uint16(b[0:]), G: le.Uint16(b[2:]), B: le.Uint16(b[4:])}
	},
	LayoutRGBA16: func(b []byte) Pixel {
		return RGBA16{R: le.Uint16(b[0:]), G: le.Uint16(b[2:]), B: le.Uint16(b[4:]), A: le.Uint16(b[6:])}
	},
	LayoutRGBF: func(b []byte) Pixel {
		return RGBF{R: f32(b[0:]), G: f32(b[4:]), B: f32(b[8:])}
	},
	LayoutRGBAF: func(b []byte) Pixel {
		return RGBAF{R: f32(b[0:]), G: f32(b[4:]), B: f32(b[8:]), A: f32(b[12:])}
	},
	LayoutUint16:  func(b []byte) Pixel { return Uint16Pixel(le.Uint16(b)) },
	LayoutInt16:   func(b []byte) Pixel { return Int16Pixel(int16(le.Uint16(b))) },
	LayoutUint32:  func(b []byte) Pixel { return Uint32Pixel(le.Uint32(b)) },
	LayoutInt32:   func(b []byte) Pixel { return Int32Pixel(int32(le.Uint32(b))) },
	LayoutFloat:   func(b []byte) Pixel { return FloatPixel(f32(b)) },
	LayoutDouble:  func(b []byte) Pixel { return DoublePixel(f64(b)) },
	LayoutComplex: func(b []byte) Pixel { return ComplexPixel{Real: f64(b[0:]), Imag: f64(b[8:])} },
}
