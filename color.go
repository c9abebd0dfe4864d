package pixelio

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Channel indexes the four components of an RGBAColor.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
	Alpha
)

var channelNames = [4]string{"R", "G", "B", "A"}

func (c Channel) String() string {
	if c < Red || c > Alpha {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channelNames[c]
}

// RGBAColor is a format independent colour with every channel in [0,1].
// The zero value is transparent black. Channels can only be set through
// the checked constructors and setters, so a value is always in range.
type RGBAColor struct {
	v [4]float64
}

// NewRGBAColor returns the colour (r, g, b, a) or an ErrRange error when a
// channel lies outside [0,1].
func NewRGBAColor(r, g, b, a float64) (RGBAColor, error) {
	var c RGBAColor
	for i, v := range [4]float64{r, g, b, a} {
		if err := c.Set(Channel(i), v); err != nil {
			return RGBAColor{}, err
		}
	}
	return c, nil
}

// MustRGBAColor is like NewRGBAColor but panics on invalid input. Meant for
// package level colour constants.
func MustRGBAColor(r, g, b, a float64) RGBAColor {
	c, err := NewRGBAColor(r, g, b, a)
	if err != nil {
		panic(err)
	}
	return c
}

// Uniform returns a colour whose four channels all equal v.
func Uniform(v float64) (RGBAColor, error) {
	return NewRGBAColor(v, v, v, v)
}

// FullRange returns the widest statistics window, (0,0,0,0) to (1,1,1,1).
func FullRange() (lo, hi RGBAColor) {
	return RGBAColor{}, RGBAColor{v: [4]float64{1, 1, 1, 1}}
}

// rgba builds a colour from computed values, clamping rounding overshoot.
func rgba(r, g, b, a float64) RGBAColor {
	return RGBAColor{v: [4]float64{clamp01(r), clamp01(g), clamp01(b), clamp01(a)}}
}

func (c RGBAColor) R() float64 { return c.v[Red] }
func (c RGBAColor) G() float64 { return c.v[Green] }
func (c RGBAColor) B() float64 { return c.v[Blue] }
func (c RGBAColor) A() float64 { return c.v[Alpha] }

// Channel returns the value of channel ch.
func (c RGBAColor) Channel(ch Channel) float64 {
	return c.v[ch]
}

// Set changes one channel. NaN and values outside [0,1] are rejected with
// ErrRange and leave c unchanged.
func (c *RGBAColor) Set(ch Channel, v float64) error {
	if ch < Red || ch > Alpha {
		return fmt.Errorf("%w: unknown channel %d", ErrOutOfRange, int(ch))
	}
	if !(v >= 0 && v <= 1) {
		return fmt.Errorf("%w: %s=%v", ErrRange, ch, v)
	}
	c.v[ch] = v
	return nil
}

func (c *RGBAColor) SetR(v float64) error { return c.Set(Red, v) }
func (c *RGBAColor) SetG(v float64) error { return c.Set(Green, v) }
func (c *RGBAColor) SetB(v float64) error { return c.Set(Blue, v) }
func (c *RGBAColor) SetA(v float64) error { return c.Set(Alpha, v) }

// Array returns the channels in R, G, B, A order.
func (c RGBAColor) Array() [4]float64 {
	return c.v
}

// Colorful returns the RGB part as a go-colorful colour. Alpha is dropped.
func (c RGBAColor) Colorful() colorful.Color {
	return colorful.Color{R: c.v[Red], G: c.v[Green], B: c.v[Blue]}
}

// RGBAFromColorful converts a go-colorful colour plus an alpha value.
// Out of gamut colours are clamped first.
func RGBAFromColorful(col colorful.Color, a float64) (RGBAColor, error) {
	col = col.Clamped()
	return NewRGBAColor(col.R, col.G, col.B, a)
}

// Within reports whether every channel of c lies in the inclusive window
// [lo, hi].
func (c RGBAColor) Within(lo, hi RGBAColor) bool {
	for i := range c.v {
		if c.v[i] < lo.v[i] || c.v[i] > hi.v[i] {
			return false
		}
	}
	return true
}

// Distance returns the largest per-channel absolute difference.
func (c RGBAColor) Distance(o RGBAColor) float64 {
	d := 0.0
	for i := range c.v {
		d = math.Max(d, math.Abs(c.v[i]-o.v[i]))
	}
	return d
}

func (c RGBAColor) String() string {
	return fmt.Sprintf("R=%.4f, G=%.4f, B=%.4f, A=%.4f", c.v[Red], c.v[Green], c.v[Blue], c.v[Alpha])
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return min(v, 1)
}
