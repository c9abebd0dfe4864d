package pixelio

import (
	"context"
	"fmt"
	"math"
)

// RemoveBackground recovers foreground colour and alpha for every pixel,
// assuming the image was composited over the flat colour background. The
// result is a new bitmap with an alpha channel; b is not modified.
//
// For a translucent background (alpha below one) the compositing equation
// is inverted exactly. An opaque background leaves the problem under
// determined: each colour channel proposes the smallest alpha that explains
// its distance from the background, channels within tolerance propose
// zero, and the largest proposal wins.
func (b *Bitmap) RemoveBackground(background RGBAColor, tolerance float64) (*Bitmap, error) {
	return b.RemoveBackgroundContext(context.Background(), background, tolerance)
}

func (b *Bitmap) RemoveBackgroundContext(ctx context.Context, background RGBAColor, tolerance float64) (*Bitmap, error) {
	if !b.IsRGBA() {
		return nil, fmt.Errorf("%w: remove background needs an RGBA-capable image, got %v %d bpp",
			ErrInvalidOperation, b.Type(), b.BitsPerPixel())
	}
	if !(tolerance >= 0 && tolerance <= 1) {
		return nil, fmt.Errorf("%w: tolerance %v outside [0,1]", ErrOutOfRange, tolerance)
	}
	src, err := b.rgbaAccessor()
	if err != nil {
		return nil, err
	}
	out, err := b.EmptyCopy(true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}
	if !out.IsTransparent() {
		return nil, fmt.Errorf("%w: could not allocate a bitmap with transparency", ErrInvalidOperation)
	}
	dst, err := out.Accessor()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	width := src.Width()
	err = forEachRow(ctx, b.Options.workers(), src.Height(), func(y int) error {
		for x := 0; x < width; x++ {
			c, err := src.RGBA(x, y)
			if err != nil {
				return err
			}
			fg, err := unComposite(c, background, tolerance)
			if err != nil {
				return fmt.Errorf("pixel (%d,%d): %w", x, y, err)
			}
			if err := dst.SetRGBA(x, y, fg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// unComposite solves c = fg over bg for fg.
func unComposite(c, bg RGBAColor, tolerance float64) (RGBAColor, error) {
	ab, a := bg.A(), c.A()
	if ab > a {
		return RGBAColor{}, fmt.Errorf("%w: background alpha %v above pixel alpha %v, no physical solution",
			ErrOutOfRange, ab, a)
	}
	if ab < 1 {
		af := (a - ab) / (1 - ab)
		if af <= 0 {
			return RGBAColor{}, nil
		}
		ap := a / af
		am := (1 - 1/af) * ab
		return rgba(
			c.R()*ap+am*bg.R(),
			c.G()*ap+am*bg.G(),
			c.B()*ap+am*bg.B(),
			af,
		), nil
	}
	af := max(
		channelAlpha(c.R(), bg.R(), tolerance),
		channelAlpha(c.G(), bg.G(), tolerance),
		channelAlpha(c.B(), bg.B(), tolerance),
	)
	return rgba(
		foregroundChannel(c.R(), bg.R(), af),
		foregroundChannel(c.G(), bg.G(), af),
		foregroundChannel(c.B(), bg.B(), af),
		af,
	), nil
}

// channelAlpha is the smallest foreground alpha that moves cb to c.
func channelAlpha(c, cb, tolerance float64) float64 {
	d := c - cb
	if math.Abs(d) <= tolerance {
		return 0
	}
	if d < 0 {
		d /= -cb
	} else {
		d /= 1 - cb
	}
	return clamp01(d)
}

func foregroundChannel(c, cb, a float64) float64 {
	if a <= 0 {
		return 0
	}
	return clamp01(cb + (c-cb)/a)
}

// Composite blends every pixel over the flat colour background and returns
// the result in a new bitmap of the same layout:
//
//	a = a_f + a_b(1 - a_f)
//	c = (c_f a_f + c_b a_b (1 - a_f)) / a
//
// Fully transparent results are stored as transparent black.
func (b *Bitmap) Composite(background RGBAColor) (*Bitmap, error) {
	return b.CompositeContext(context.Background(), background)
}

func (b *Bitmap) CompositeContext(ctx context.Context, background RGBAColor) (*Bitmap, error) {
	src, err := b.rgbaAccessor()
	if err != nil {
		return nil, err
	}
	out, err := b.EmptyCopy(false)
	if err != nil {
		return nil, err
	}
	dst, err := out.Accessor()
	if err != nil {
		return nil, err
	}
	width := src.Width()
	err = forEachRow(ctx, b.Options.workers(), src.Height(), func(y int) error {
		for x := 0; x < width; x++ {
			c, err := src.RGBA(x, y)
			if err != nil {
				return err
			}
			if err := dst.SetRGBA(x, y, over(c, background)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func over(fg, bg RGBAColor) RGBAColor {
	af, ab := fg.A(), bg.A()
	wb := ab * (1 - af)
	a := af + wb
	if a <= 0 {
		return RGBAColor{}
	}
	return rgba(
		(fg.R()*af+bg.R()*wb)/a,
		(fg.G()*af+bg.G()*wb)/a,
		(fg.B()*af+bg.B()*wb)/a,
		a,
	)
}

// Fill stores p in every pixel.
func (b *Bitmap) Fill(p Pixel) error {
	acc, err := b.Accessor()
	if err != nil {
		return err
	}
	if p == nil || p.Layout() != acc.Layout() {
		return fmt.Errorf("%w: cannot fill %v image with %v", ErrNotSupported, acc.Layout(), layoutOf(p))
	}
	width := acc.Width()
	return forEachRow(context.Background(), b.Options.workers(), acc.Height(), func(y int) error {
		for x := 0; x < width; x++ {
			if err := acc.Set(x, y, p); err != nil {
				return err
			}
		}
		return nil
	})
}

// FillRGBA converts c to the bitmap's layout and fills every pixel with it.
func (b *Bitmap) FillRGBA(c RGBAColor) error {
	p, err := FromRGBA(b.Layout(), c)
	if err != nil {
		return err
	}
	return b.Fill(p)
}
