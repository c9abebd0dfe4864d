package pixelio

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func TestAverageOfUniformImage(t *testing.T) {
	c := MustRGBAColor(0.25, 0.5, 0.75, 1)
	b := newSolid(t, TypeRGBAF, 17, 9, 128, c)
	lo, hi := FullRange()
	avg, std, err := b.MeanStdDev(context.Background(), lo, hi)
	if err != nil {
		t.Fatal(err)
	}
	if !closeColor(avg, c, 1e-12) {
		t.Errorf("Expected average %v, got %v", c, avg)
	}
	if !closeColor(std, RGBAColor{}, 1e-12) {
		t.Errorf("Expected zero deviation, got %v", std)
	}
}

func TestStatisticsMatchGonum(t *testing.T) {
	const w, h = 23, 11
	b := newPattern(t, TypeBitmap, w, h, 32, func(x, y int) RGBAColor {
		return MustRGBAColor(float64(x)/(w-1), float64(y)/(h-1), float64((x*y)%7)/6, 1)
	})
	var rs, gs, bs []float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, err := b.PixelRGBA(x, y)
			if err != nil {
				t.Fatal(err)
			}
			rs, gs, bs = append(rs, c.R()), append(gs, c.G()), append(bs, c.B())
		}
	}
	lo, hi := FullRange()
	avg, err := b.AverageColor(lo, hi)
	if err != nil {
		t.Fatal(err)
	}
	std, err := b.StandardDeviation(lo, hi, avg)
	if err != nil {
		t.Fatal(err)
	}
	for _, ch := range []struct {
		name string
		vals []float64
		ch   Channel
	}{{"R", rs, Red}, {"G", gs, Green}, {"B", bs, Blue}} {
		mean, sd := stat.PopMeanStdDev(ch.vals, nil)
		if math.Abs(avg.Channel(ch.ch)-mean) > 1e-9 {
			t.Errorf("%s mean: expected %v, got %v", ch.name, mean, avg.Channel(ch.ch))
		}
		if math.Abs(std.Channel(ch.ch)-sd) > 1e-9 {
			t.Errorf("%s deviation: expected %v, got %v", ch.name, sd, std.Channel(ch.ch))
		}
	}
	if avg.A() != 1 || std.A() != 0 {
		t.Errorf("Expected opaque alpha statistics, got %v / %v", avg, std)
	}
}

func TestStatisticsWindowFilters(t *testing.T) {
	dark, light := gray(0.25), gray(0.75)
	b := newPattern(t, TypeRGBAF, 4, 4, 128, func(x, y int) RGBAColor {
		if x < 2 {
			return dark
		}
		return light
	})
	avg, err := b.AverageColor(MustRGBAColor(0, 0, 0, 0), MustRGBAColor(0.5, 0.5, 0.5, 1))
	if err != nil {
		t.Fatal(err)
	}
	if avg != dark {
		t.Errorf("Expected %v, got %v", dark, avg)
	}
	// Red inside, green outside: AND semantics rejects every pixel.
	_, err = b.AverageColor(MustRGBAColor(0.7, 0, 0, 0), MustRGBAColor(1, 0.5, 1, 1))
	if !errors.Is(err, ErrEmptySet) {
		t.Errorf("Expected ErrEmptySet, got %v", err)
	}
}

func TestStatisticsEmptyWindow(t *testing.T) {
	b := newSolid(t, TypeBitmap, 5, 5, 24, gray(0.5))
	lo, hi := MustRGBAColor(0.9, 0.9, 0.9, 0), MustRGBAColor(1, 1, 1, 1)
	if _, err := b.AverageColor(lo, hi); !errors.Is(err, ErrEmptySet) {
		t.Errorf("AverageColor: expected ErrEmptySet, got %v", err)
	}
	if _, err := b.StandardDeviation(lo, hi, gray(0.95)); !errors.Is(err, ErrEmptySet) {
		t.Errorf("StandardDeviation: expected ErrEmptySet, got %v", err)
	}
}

func TestStatisticsNeedRGBA(t *testing.T) {
	b, err := NewBitmap(TypeFloat, 3, 3, 32)
	if err != nil {
		t.Fatal(err)
	}
	lo, hi := FullRange()
	if _, err := b.AverageColor(lo, hi); !errors.Is(err, ErrNotSupported) {
		t.Errorf("Expected ErrNotSupported, got %v", err)
	}
}

func TestStatisticsPropagateRowErrors(t *testing.T) {
	b := newSolid(t, TypeRGBF, 4, 6, 96, gray(0.5))
	if err := b.SetPixel(3, 4, RGBF{R: 2, G: 0, B: 0}); err != nil {
		t.Fatal(err)
	}
	lo, hi := FullRange()
	if _, err := b.AverageColor(lo, hi); !errors.Is(err, ErrRange) {
		t.Errorf("Expected ErrRange from the HDR pixel, got %v", err)
	}
}

func TestStatisticsCancelled(t *testing.T) {
	b := newSolid(t, TypeBitmap, 8, 8, 32, gray(0.5))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	lo, hi := FullRange()
	if _, err := b.AverageColorContext(ctx, lo, hi); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestStatisticsSingleWorker(t *testing.T) {
	b := newPattern(t, TypeBitmap, 6, 6, 32, func(x, y int) RGBAColor {
		return gray(float64(x+y) / 10)
	})
	lo, hi := FullRange()
	parallel, err := b.AverageColor(lo, hi)
	if err != nil {
		t.Fatal(err)
	}
	b.Options.Workers = 1
	serial, err := b.AverageColor(lo, hi)
	if err != nil {
		t.Fatal(err)
	}
	if !closeColor(parallel, serial, 1e-12) {
		t.Errorf("Expected worker count not to matter: %v vs %v", parallel, serial)
	}
}

func TestDominantColorTwoClusters(t *testing.T) {
	major, minor := gray(0.25), gray(0.75)
	b := newPattern(t, TypeRGBAF, 4, 4, 128, func(x, y int) RGBAColor {
		if y == 3 {
			return minor
		}
		return major
	})
	maxDev, err := Uniform(0.1)
	if err != nil {
		t.Fatal(err)
	}
	got, err := b.DominantColor(maxDev)
	if err != nil {
		t.Fatal(err)
	}
	if !closeColor(got, major, 1e-12) {
		t.Errorf("Expected %v, got %v", major, got)
	}
}

func TestDominantColorAlreadyUniform(t *testing.T) {
	c := MustRGBAColor(0.1, 0.2, 0.3, 1)
	b := newSolid(t, TypeRGBAF, 3, 3, 128, c)
	maxDev, _ := Uniform(1e-9)
	got, err := b.DominantColor(maxDev)
	if err != nil {
		t.Fatal(err)
	}
	if !closeColor(got, c, 1e-7) {
		t.Errorf("Expected %v, got %v", c, got)
	}
}

func TestDominantColorSymmetricClustersFail(t *testing.T) {
	b := newPattern(t, TypeRGBAF, 4, 4, 128, func(x, y int) RGBAColor {
		if (x+y)%2 == 0 {
			return gray(0.25)
		}
		return gray(0.75)
	})
	maxDev, _ := Uniform(0.1)
	if _, err := b.DominantColor(maxDev); !errors.Is(err, ErrConvergence) {
		t.Errorf("Expected ErrConvergence, got %v", err)
	}
}

func TestDominantColorIterationCap(t *testing.T) {
	b := newPattern(t, TypeRGBAF, 4, 4, 128, func(x, y int) RGBAColor {
		if y == 3 {
			return gray(0.75)
		}
		return gray(0.25)
	})
	b.Options.MaxIterations = 1
	maxDev, _ := Uniform(0.1)
	if _, err := b.DominantColor(maxDev); !errors.Is(err, ErrConvergence) {
		t.Errorf("Expected ErrConvergence, got %v", err)
	}
}
