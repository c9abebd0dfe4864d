package utils

import (
	"path/filepath"
	"testing"

	"github.com/setanarut/pixelio"
)

func solidWithSquare(t *testing.T, bg, fg pixelio.RGBAColor) *pixelio.Bitmap {
	t.Helper()
	b, err := pixelio.NewBitmap(pixelio.TypeBitmap, 20, 20, 32)
	if err != nil {
		t.Fatal(err)
	}
	b.SetTransparent(true)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			c := bg
			if x >= 8 && x < 12 && y >= 8 && y < 12 {
				c = fg
			}
			if err := b.SetPixelRGBA(x, y, c); err != nil {
				t.Fatal(err)
			}
		}
	}
	return b
}

func TestEstimateBackground(t *testing.T) {
	bg := pixelio.MustRGBAColor(0, 0.5, 1, 1)
	b := solidWithSquare(t, bg, pixelio.MustRGBAColor(1, 0, 0, 1))
	got, err := EstimateBackground(b, 0.05, PaletteMethodDominantColor)
	if err != nil {
		t.Fatal(err)
	}
	if d := got.Distance(bg); d > 1.0/255 {
		t.Errorf("Expected background %v, got %v", bg, got)
	}
}

func TestEstimateBackgroundFallsBack(t *testing.T) {
	a := pixelio.MustRGBAColor(0.25, 0.25, 0.25, 1)
	c := pixelio.MustRGBAColor(0.75, 0.75, 0.75, 1)
	b, err := pixelio.NewBitmap(pixelio.TypeRGBAF, 8, 8, 128)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			col := a
			if (x+y)%2 == 1 {
				col = c
			}
			if err := b.SetPixelRGBA(x, y, col); err != nil {
				t.Fatal(err)
			}
		}
	}
	got, err := EstimateBackground(b, 0.01, PaletteMethodDominantColor)
	if err != nil {
		t.Fatal(err)
	}
	if got.Distance(a) > 0.05 && got.Distance(c) > 0.05 {
		t.Errorf("Expected one of the two checker colours, got %v", got)
	}
}

func TestSelectDiverseWeightedColors(t *testing.T) {
	red := pixelio.MustRGBAColor(1, 0, 0, 1)
	nearRed := pixelio.MustRGBAColor(0.98, 0.02, 0, 1)
	blue := pixelio.MustRGBAColor(0, 0, 1, 1)
	got := SelectDiverseWeightedColors([]weightedColor{
		{Col: nearRed, Weight: 5},
		{Col: red, Weight: 10},
		{Col: blue, Weight: 1},
	}, 2)
	if len(got) != 2 {
		t.Fatalf("Expected 2 colors, got %d", len(got))
	}
	if got[0] != red {
		t.Errorf("Expected heaviest color first, got %v", got[0])
	}
	if got[1] != blue {
		t.Errorf("Expected distinct blue second, got %v", got[1])
	}
}

func TestSortPaletteByBrightness(t *testing.T) {
	p := []pixelio.RGBAColor{
		pixelio.MustRGBAColor(1, 1, 1, 1),
		pixelio.MustRGBAColor(0, 0, 0, 1),
		pixelio.MustRGBAColor(0, 1, 0, 1),
	}
	SortPaletteByBrightness(p)
	if p[0].G() != 0 || p[2].R() != 1 {
		t.Errorf("Expected black, green, white; got %v", p)
	}
}

func TestKMeansPalette(t *testing.T) {
	b := solidWithSquare(t, pixelio.MustRGBAColor(0, 0, 0, 1), pixelio.MustRGBAColor(1, 1, 1, 1))
	p := ExtractPalette(b, 2, PaletteMethodKMeans)
	if len(p) == 0 {
		t.Fatal("Expected a palette")
	}
	if len(p) > 2 {
		t.Errorf("Expected at most 2 colors, got %d", len(p))
	}
}

func TestParsePaletteMethod(t *testing.T) {
	for _, m := range []PaletteMethod{PaletteMethodDominantColor, PaletteMethodKMeans} {
		got, err := ParsePaletteMethod(m.String())
		if err != nil || got != m {
			t.Errorf("ParsePaletteMethod(%q): expected %v, got %v (%v)", m.String(), m, got, err)
		}
	}
	if _, err := ParsePaletteMethod("median-cut"); err == nil {
		t.Error("Expected error for unknown method")
	}
}

func TestSaveAndReadBitmap(t *testing.T) {
	src := solidWithSquare(t, pixelio.MustRGBAColor(0.2, 0.4, 0.6, 1), pixelio.MustRGBAColor(1, 0, 0, 1))
	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.bmp", "out.tiff"} {
		path := filepath.Join(dir, name)
		if err := SaveBitmap(src, path); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		got, err := ReadBitmap(path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got.Width() != 20 || got.Height() != 20 {
			t.Fatalf("%s: expected 20x20, got %dx%d", name, got.Width(), got.Height())
		}
		for _, pt := range [][2]int{{0, 0}, {9, 9}, {19, 3}} {
			want, _ := src.PixelRGBA(pt[0], pt[1])
			have, err := got.PixelRGBA(pt[0], pt[1])
			if err != nil {
				t.Fatal(err)
			}
			if d := have.Distance(want); d > 1.0/255 {
				t.Errorf("%s (%d, %d): expected %v, got %v", name, pt[0], pt[1], want, have)
			}
		}
	}
}

func TestSavePalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.png")
	p := []pixelio.RGBAColor{pixelio.MustRGBAColor(1, 0, 0, 1), pixelio.MustRGBAColor(0, 0, 1, 0.5)}
	if err := SavePalette(p, 4, path); err != nil {
		t.Fatal(err)
	}
	b, err := ReadBitmap(path)
	if err != nil {
		t.Fatal(err)
	}
	if b.Width() != 8 || b.Height() != 4 {
		t.Errorf("Expected 8x4 swatch, got %dx%d", b.Width(), b.Height())
	}
	if err := SavePalette(nil, 4, path); err == nil {
		t.Error("Expected error for empty palette")
	}
}
