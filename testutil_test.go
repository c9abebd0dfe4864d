package pixelio

import (
	"math"
	"testing"
)

// newPattern allocates a bitmap and paints it with fn.
func newPattern(t *testing.T, typ ImageType, width, height, bpp int, fn func(x, y int) RGBAColor) *Bitmap {
	t.Helper()
	b, err := NewBitmap(typ, width, height, bpp)
	if err != nil {
		t.Fatalf("NewBitmap(%v, %d, %d, %d): %v", typ, width, height, bpp, err)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if err := b.SetPixelRGBA(x, y, fn(x, y)); err != nil {
				t.Fatalf("SetPixelRGBA(%d, %d): %v", x, y, err)
			}
		}
	}
	return b
}

// newSolid creates a bitmap where every pixel is c.
func newSolid(t *testing.T, typ ImageType, width, height, bpp int, c RGBAColor) *Bitmap {
	t.Helper()
	return newPattern(t, typ, width, height, bpp, func(int, int) RGBAColor { return c })
}

func gray(v float64) RGBAColor {
	return MustRGBAColor(v, v, v, 1)
}

func closeColor(a, b RGBAColor, tol float64) bool {
	for i := range a.v {
		if math.Abs(a.v[i]-b.v[i]) > tol {
			return false
		}
	}
	return true
}
