package pixelio

import (
	"fmt"
	"image"
	"image/color"
	"sync"
)

// Bitmap is an image together with its pixel accessor. Logical row 0 is the
// top of the picture and is stored last, as in device independent bitmaps.
type Bitmap struct {
	Options Options

	buf         Buffer
	transparent bool

	accOnce sync.Once
	acc     *Accessor
	accErr  error
}

// NewBitmap allocates a zeroed bitmap with default masks.
func NewBitmap(t ImageType, width, height, bpp int) (*Bitmap, error) {
	buf, err := NewBuffer(t, width, height, bpp)
	if err != nil {
		return nil, err
	}
	return &Bitmap{Options: DefaultOptions(), buf: buf}, nil
}

// NewBitmapMasks is NewBitmap with explicit colour masks. Zero masks on a
// 16-bit bitmap select 5-5-5.
func NewBitmapMasks(t ImageType, width, height, bpp int, m ColorMasks) (*Bitmap, error) {
	buf, err := NewBufferMasks(t, width, height, bpp, m)
	if err != nil {
		return nil, err
	}
	return &Bitmap{Options: DefaultOptions(), buf: buf}, nil
}

// BitmapFromBuffer wraps memory owned by someone else. The bitmap is a view;
// writes through it change buf.Pix.
func BitmapFromBuffer(buf Buffer) (*Bitmap, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	return &Bitmap{Options: DefaultOptions(), buf: buf}, nil
}

func (b *Bitmap) Width() int        { return b.buf.Width }
func (b *Bitmap) Height() int       { return b.buf.Height }
func (b *Bitmap) Pitch() int        { return b.buf.Pitch }
func (b *Bitmap) BitsPerPixel() int { return b.buf.BPP }
func (b *Bitmap) Type() ImageType   { return b.buf.Type }
func (b *Bitmap) Masks() ColorMasks { return b.buf.Masks }
func (b *Bitmap) Buffer() Buffer    { return b.buf }
func (b *Bitmap) Bits() []byte      { return b.buf.Pix }

// SetTransparent flags a 32-bit bitmap as carrying alpha.
func (b *Bitmap) SetTransparent(v bool) {
	b.transparent = v
}

// IsTransparent reports whether the alpha channel is meaningful. RGBA16 and
// RGBAF images always carry alpha; 32-bit bitmaps only when flagged.
func (b *Bitmap) IsTransparent() bool {
	switch b.buf.Type {
	case TypeRGBA16, TypeRGBAF:
		return true
	case TypeBitmap:
		return b.buf.BPP == 32 && b.transparent
	}
	return false
}

// Accessor returns the pixel accessor, building it on first use.
func (b *Bitmap) Accessor() (*Accessor, error) {
	b.accOnce.Do(func() {
		b.acc, b.accErr = NewAccessor(b.buf)
	})
	return b.acc, b.accErr
}

// Replace swaps the backing buffer, for example after an external
// operation reallocated the image. Any accessor handed out before is stale.
func (b *Bitmap) Replace(buf Buffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	b.buf = buf
	b.accOnce = sync.Once{}
	b.acc, b.accErr = nil, nil
	return nil
}

// Layout returns the pixel layout, or LayoutUnknown for unsupported images.
func (b *Bitmap) Layout() Layout {
	acc, err := b.Accessor()
	if err != nil {
		return LayoutUnknown
	}
	return acc.Layout()
}

// IsRGBA reports whether the pixels convert to and from RGBAColor.
func (b *Bitmap) IsRGBA() bool {
	return b.Layout().IsRGBA()
}

func (b *Bitmap) Pixel(x, y int) (Pixel, error) {
	acc, err := b.Accessor()
	if err != nil {
		return nil, err
	}
	return acc.Get(x, y)
}

func (b *Bitmap) SetPixel(x, y int, p Pixel) error {
	acc, err := b.Accessor()
	if err != nil {
		return err
	}
	return acc.Set(x, y, p)
}

func (b *Bitmap) PixelRGBA(x, y int) (RGBAColor, error) {
	acc, err := b.Accessor()
	if err != nil {
		return RGBAColor{}, err
	}
	return acc.RGBA(x, y)
}

func (b *Bitmap) SetPixelRGBA(x, y int, c RGBAColor) error {
	acc, err := b.Accessor()
	if err != nil {
		return err
	}
	return acc.SetRGBA(x, y, c)
}

// EmptyCopy allocates a zeroed bitmap of the same size. With
// supportTransparency set, an RGBA-capable source without alpha is widened
// to the smallest layout that stores alpha: 32-bit bitmap, RGBA16 or RGBAF.
// Copies of 32 bits or less are flagged transparent.
func (b *Bitmap) EmptyCopy(supportTransparency bool) (*Bitmap, error) {
	t, bpp, m := b.buf.Type, b.buf.BPP, b.buf.Masks
	if supportTransparency && b.IsRGBA() && !b.IsTransparent() {
		m = ColorMasks{}
		switch {
		case bpp <= 32:
			t, bpp = TypeBitmap, 32
		case bpp <= 64:
			t, bpp = TypeRGBA16, 64
		default:
			t, bpp = TypeRGBAF, 128
		}
	}
	out, err := NewBitmapMasks(t, b.buf.Width, b.buf.Height, bpp, m)
	if err != nil {
		return nil, fmt.Errorf("empty copy: %w", err)
	}
	out.Options = b.Options
	if bpp <= 32 {
		out.transparent = true
	}
	return out, nil
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	buf := b.buf
	buf.Pix = make([]byte, len(b.buf.Pix))
	copy(buf.Pix, b.buf.Pix)
	return &Bitmap{Options: b.Options, buf: buf, transparent: b.transparent}
}

// ColorModel, Bounds and At make a Bitmap usable as an image.Image.
// Pixels that cannot be read come back as transparent black.
func (b *Bitmap) ColorModel() color.Model { return color.NRGBA64Model }

func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.buf.Width, b.buf.Height)
}

func (b *Bitmap) At(x, y int) color.Color {
	c, err := b.PixelRGBA(x, y)
	if err != nil {
		return color.NRGBA64{}
	}
	return color.NRGBA64{R: q16(c.R()), G: q16(c.G()), B: q16(c.B()), A: q16(c.A())}
}

// FromImage copies img into a new transparent bitmap. Images with 16-bit
// colour models become RGBA16, everything else a 32-bit bitmap.
func FromImage(img image.Image) (*Bitmap, error) {
	r := img.Bounds()
	t, bpp := TypeBitmap, 32
	switch img.ColorModel() {
	case color.RGBA64Model, color.NRGBA64Model, color.Gray16Model:
		t, bpp = TypeRGBA16, 64
	}
	out, err := NewBitmap(t, r.Dx(), r.Dy(), bpp)
	if err != nil {
		return nil, err
	}
	out.transparent = true
	acc, err := out.Accessor()
	if err != nil {
		return nil, err
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
			col := rgba(n16(c.R), n16(c.G), n16(c.B), n16(c.A))
			if err := acc.SetRGBA(x-r.Min.X, y-r.Min.Y, col); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
