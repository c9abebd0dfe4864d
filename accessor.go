// Package pixelio gives typed, bounds checked access to raw bitmap memory
// and builds colour statistics and background removal on top of it.
//
// A Buffer is a view of pixel rows owned by an image codec. An Accessor
// binds the buffer to one of a closed set of pixel layouts, selected once
// from the image type and bit depth, and reads or writes Pixel records at
// logical coordinates. Layouts with red, green and blue channels also
// convert to RGBAColor, the normalized colour used by the analysis code.
package pixelio

import "fmt"

// Accessor reads and writes typed pixels of one Buffer. The layout is fixed
// when the accessor is built; rebuild it whenever the buffer is replaced.
// Writes go straight to the shared memory; concurrent writers must touch
// disjoint rows.
type Accessor struct {
	pix    []byte
	width  int
	height int
	pitch  int
	bpp    int // bytes per pixel
	layout Layout
	decode func([]byte) Pixel
}

// NewAccessor binds buf to the layout selected by its type, depth and
// masks. Palette depths and unknown types fail with ErrNotSupported.
func NewAccessor(buf Buffer) (*Accessor, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	l, err := LayoutFor(buf.Type, buf.BPP, buf.Masks.Green)
	if err != nil {
		return nil, err
	}
	return &Accessor{
		pix:    buf.Pix,
		width:  buf.Width,
		height: buf.Height,
		pitch:  buf.Pitch,
		bpp:    l.BytesPerPixel(),
		layout: l,
		decode: decoders[l],
	}, nil
}

func (a *Accessor) Layout() Layout { return a.layout }
func (a *Accessor) Width() int     { return a.width }
func (a *Accessor) Height() int    { return a.height }

// IsRGBA reports whether pixels convert to and from RGBAColor.
func (a *Accessor) IsRGBA() bool { return a.layout.IsRGBA() }

// Offset returns the index in the buffer of the first byte of pixel (x, y).
func (a *Accessor) Offset(x, y int) (int, error) {
	if x < 0 || x >= a.width {
		return 0, fmt.Errorf("%w: x=%d outside [0,%d)", ErrOutOfRange, x, a.width)
	}
	if y < 0 || y >= a.height {
		return 0, fmt.Errorf("%w: y=%d outside [0,%d)", ErrOutOfRange, y, a.height)
	}
	return (a.height-y-1)*a.pitch + x*a.bpp, nil
}

func (a *Accessor) cell(x, y int) ([]byte, error) {
	off, err := a.Offset(x, y)
	if err != nil {
		return nil, err
	}
	return a.pix[off : off+a.bpp : off+a.bpp], nil
}

// Get returns the record stored at (x, y).
func (a *Accessor) Get(x, y int) (Pixel, error) {
	b, err := a.cell(x, y)
	if err != nil {
		return nil, err
	}
	return a.decode(b), nil
}

// Set stores p at (x, y). p must have the accessor's layout.
func (a *Accessor) Set(x, y int, p Pixel) error {
	if p == nil || p.Layout() != a.layout {
		return fmt.Errorf("%w: cannot store %v in %v image", ErrNotSupported, layoutOf(p), a.layout)
	}
	b, err := a.cell(x, y)
	if err != nil {
		return err
	}
	p.put(b)
	return nil
}

// RGBA reads (x, y) as a normalized colour.
func (a *Accessor) RGBA(x, y int) (RGBAColor, error) {
	if !a.IsRGBA() {
		return RGBAColor{}, fmt.Errorf("%w: %v has no RGBA representation", ErrNotSupported, a.layout)
	}
	p, err := a.Get(x, y)
	if err != nil {
		return RGBAColor{}, err
	}
	return ToRGBA(p)
}

// SetRGBA converts c to the accessor's layout and stores it at (x, y).
func (a *Accessor) SetRGBA(x, y int, c RGBAColor) error {
	p, err := FromRGBA(a.layout, c)
	if err != nil {
		return err
	}
	return a.Set(x, y, p)
}

// At is the typed form of Get. It fails with ErrNotSupported when T is not
// the pixel type of the accessor's layout.
func At[T Pixel](a *Accessor, x, y int) (T, error) {
	var zero T
	if zero.Layout() != a.layout {
		return zero, fmt.Errorf("%w: %v requested from %v image", ErrNotSupported, zero.Layout(), a.layout)
	}
	p, err := a.Get(x, y)
	if err != nil {
		return zero, err
	}
	return p.(T), nil
}

func layoutOf(p Pixel) Layout {
	if p == nil {
		return LayoutUnknown
	}
	return p.Layout()
}
