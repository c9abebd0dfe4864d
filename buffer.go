package pixelio

import "fmt"

// Buffer describes raw pixel memory owned by an image. Rows are stored
// bottom-up: logical row 0 is the last Pitch bytes of Pix.
type Buffer struct {
	Pix    []byte
	Width  int
	Height int
	// Pitch is the byte distance between the starts of two stored rows.
	Pitch int
	BPP   int
	Type  ImageType
	Masks ColorMasks
}

// Pitch returns the row size used by device independent bitmaps: rows are
// padded to a multiple of four bytes.
func Pitch(width, bpp int) int {
	return ((width*bpp + 31) / 32) * 4
}

// NewBuffer allocates a zeroed buffer. 16-bit bitmaps default to 5-5-5
// masks, 24 and 32-bit bitmaps to BGR order.
func NewBuffer(t ImageType, width, height, bpp int) (Buffer, error) {
	var m ColorMasks
	if t == TypeBitmap {
		switch bpp {
		case 16:
			m = Masks555
		case 24, 32:
			m = MasksBGR
		}
	}
	return NewBufferMasks(t, width, height, bpp, m)
}

func NewBufferMasks(t ImageType, width, height, bpp int, m ColorMasks) (Buffer, error) {
	if width <= 0 || height <= 0 {
		return Buffer{}, fmt.Errorf("%w: size %dx%d", ErrOutOfRange, width, height)
	}
	switch bpp {
	case 1, 4, 8, 16, 24, 32, 48, 64, 96, 128:
	default:
		return Buffer{}, fmt.Errorf("%w: %d bits per pixel", ErrNotSupported, bpp)
	}
	if t == TypeBitmap && bpp == 16 && m == (ColorMasks{}) {
		m = Masks555
	}
	p := Pitch(width, bpp)
	return Buffer{
		Pix:    make([]byte, p*height),
		Width:  width,
		Height: height,
		Pitch:  p,
		BPP:    bpp,
		Type:   t,
		Masks:  m,
	}, nil
}

// Validate checks that the described rows fit inside Pix.
func (b Buffer) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrOutOfRange, b.Width, b.Height)
	}
	if b.BPP <= 0 {
		return fmt.Errorf("%w: %d bits per pixel", ErrOutOfRange, b.BPP)
	}
	if row := (b.Width*b.BPP + 7) / 8; b.Pitch < row {
		return fmt.Errorf("%w: pitch %d shorter than row of %d bytes", ErrOutOfRange, b.Pitch, row)
	}
	if need := b.Pitch * b.Height; len(b.Pix) < need {
		return fmt.Errorf("%w: %d bytes for %d rows of pitch %d", ErrOutOfRange, len(b.Pix), b.Height, b.Pitch)
	}
	return nil
}

// Row returns the stored bytes of logical row y, already flipped.
func (b Buffer) Row(y int) []byte {
	off := (b.Height - y - 1) * b.Pitch
	return b.Pix[off : off+b.Pitch]
}
