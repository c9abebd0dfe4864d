package pixelio

import (
	"context"
	"fmt"
	"math"
)

// rgbaAccessor returns the accessor of b or ErrNotSupported when its pixels
// have no RGBA form.
func (b *Bitmap) rgbaAccessor() (*Accessor, error) {
	acc, err := b.Accessor()
	if err != nil {
		return nil, err
	}
	if !acc.IsRGBA() {
		return nil, fmt.Errorf("%w: %v has no RGBA representation", ErrNotSupported, acc.Layout())
	}
	return acc, nil
}

// scan visits every pixel whose colour lies inside [lo, hi] and folds
// visit's per-channel contributions into one sum. Rows run in parallel.
func (b *Bitmap) scan(ctx context.Context, lo, hi RGBAColor, visit func(c RGBAColor) [4]float64) ([4]float64, int64, error) {
	acc, err := b.rgbaAccessor()
	if err != nil {
		return [4]float64{}, 0, err
	}
	var total accumulator
	width := acc.Width()
	err = forEachRow(ctx, b.Options.workers(), acc.Height(), func(y int) error {
		var sum [4]float64
		var n int64
		for x := 0; x < width; x++ {
			c, err := acc.RGBA(x, y)
			if err != nil {
				return err
			}
			if !c.Within(lo, hi) {
				continue
			}
			v := visit(c)
			sum[0] += v[0]
			sum[1] += v[1]
			sum[2] += v[2]
			sum[3] += v[3]
			n++
		}
		total.add(&sum, n)
		return nil
	})
	if err != nil {
		return [4]float64{}, 0, err
	}
	if total.count < 1 {
		return [4]float64{}, 0, fmt.Errorf("%w: window %v .. %v", ErrEmptySet, lo, hi)
	}
	return total.sum, total.count, nil
}

// AverageColor returns the mean colour of the pixels whose every channel
// lies in the inclusive window [lo, hi]. It fails with ErrEmptySet when no
// pixel qualifies.
func (b *Bitmap) AverageColor(lo, hi RGBAColor) (RGBAColor, error) {
	return b.AverageColorContext(context.Background(), lo, hi)
}

func (b *Bitmap) AverageColorContext(ctx context.Context, lo, hi RGBAColor) (RGBAColor, error) {
	sum, n, err := b.scan(ctx, lo, hi, func(c RGBAColor) [4]float64 {
		return c.v
	})
	if err != nil {
		return RGBAColor{}, err
	}
	d := float64(n)
	return rgba(sum[0]/d, sum[1]/d, sum[2]/d, sum[3]/d), nil
}

// StandardDeviation returns the per-channel population standard deviation
// around avg of the pixels inside [lo, hi].
func (b *Bitmap) StandardDeviation(lo, hi, avg RGBAColor) (RGBAColor, error) {
	return b.StandardDeviationContext(context.Background(), lo, hi, avg)
}

func (b *Bitmap) StandardDeviationContext(ctx context.Context, lo, hi, avg RGBAColor) (RGBAColor, error) {
	sum, n, err := b.scan(ctx, lo, hi, func(c RGBAColor) [4]float64 {
		var sq [4]float64
		for i := range sq {
			d := c.v[i] - avg.v[i]
			sq[i] = d * d
		}
		return sq
	})
	if err != nil {
		return RGBAColor{}, err
	}
	d := float64(n)
	return rgba(
		math.Sqrt(sum[0]/d),
		math.Sqrt(sum[1]/d),
		math.Sqrt(sum[2]/d),
		math.Sqrt(sum[3]/d),
	), nil
}

// MeanStdDev computes the average of the window and the standard deviation
// around it.
func (b *Bitmap) MeanStdDev(ctx context.Context, lo, hi RGBAColor) (avg, std RGBAColor, err error) {
	avg, err = b.AverageColorContext(ctx, lo, hi)
	if err != nil {
		return RGBAColor{}, RGBAColor{}, err
	}
	std, err = b.StandardDeviationContext(ctx, lo, hi, avg)
	if err != nil {
		return RGBAColor{}, RGBAColor{}, err
	}
	return avg, std, nil
}

// DominantColor estimates the colour most of the image is made of. It
// starts from the whole [0,1] window and, while any channel deviates more
// than maxDeviation allows, narrows the window to average ± deviation.
// Refinement stops with ErrConvergence after Options.MaxIterations passes
// or when the window stops moving.
func (b *Bitmap) DominantColor(maxDeviation RGBAColor) (RGBAColor, error) {
	return b.DominantColorContext(context.Background(), maxDeviation)
}

func (b *Bitmap) DominantColorContext(ctx context.Context, maxDeviation RGBAColor) (RGBAColor, error) {
	lo, hi := FullRange()
	limit := b.Options.maxIterations()
	for pass := 1; ; pass++ {
		avg, std, err := b.MeanStdDev(ctx, lo, hi)
		if err != nil {
			return RGBAColor{}, err
		}
		b.Options.logf("dominant colour pass %d: window [%v] .. [%v], average [%v], deviation [%v]",
			pass, lo, hi, avg, std)
		if !exceeds(std, maxDeviation) {
			return avg, nil
		}
		if pass >= limit {
			return avg, fmt.Errorf("%w: deviation %v still above %v after %d passes",
				ErrConvergence, std, maxDeviation, pass)
		}
		var nlo, nhi RGBAColor
		for i := range avg.v {
			nlo.v[i] = max(0, avg.v[i]-std.v[i])
			nhi.v[i] = min(1, avg.v[i]+std.v[i])
		}
		if nlo == lo && nhi == hi {
			return avg, fmt.Errorf("%w: window fixed at [%v] .. [%v] with deviation %v",
				ErrConvergence, lo, hi, std)
		}
		lo, hi = nlo, nhi
	}
}

func exceeds(std, limit RGBAColor) bool {
	for i := range std.v {
		if std.v[i] > limit.v[i] {
			return true
		}
	}
	return false
}
