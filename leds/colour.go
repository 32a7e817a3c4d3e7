package leds

import "math"

// Colour is a brightness level per channel, each 0..ScanLevels.
type Colour struct {
	R, G, B uint8
}

// Grey returns a colour with every channel at v.
func Grey(v uint8) Colour {
	return Colour{v, v, v}
}

// Channel returns the level of channel ch.
func (c Colour) Channel(ch Channel) uint8 {
	switch ch {
	case Red:
		return c.R
	case Green:
		return c.G
	}
	return c.B
}

// Off reports whether every channel is dark.
func (c Colour) Off() bool {
	return c == Colour{}
}

func clampLevel(v uint8) uint8 {
	if v > ScanLevels {
		return ScanLevels
	}
	return v
}

func (c Colour) clamped() Colour {
	return Colour{clampLevel(c.R), clampLevel(c.G), clampLevel(c.B)}
}

// BrightColours are the primaries and their pairwise mixes at full level.
var BrightColours = [...]Colour{
	{ScanLevels, 0, 0},
	{0, ScanLevels, 0},
	{0, 0, ScanLevels},
	{ScanLevels, ScanLevels, 0},
	{ScanLevels, 0, ScanLevels},
	{0, ScanLevels, ScanLevels},
}

// HSVToRGB converts a hue in degrees (0..360) with saturation and value in
// percent (0..100) to a colour scaled to ScanLevels. Out of range inputs are
// clamped.
func HSVToRGB(h, s, v float64) Colour {
	h = clamp(h, 0, 360)
	s = clamp(s, 0, 100) / 100
	v = clamp(v, 0, 100) / 100

	if s == 0 {
		return Grey(level(v))
	}

	h /= 60
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch i {
	case 0:
		return Colour{level(v), level(t), level(p)}
	case 1:
		return Colour{level(q), level(v), level(p)}
	case 2:
		return Colour{level(p), level(v), level(t)}
	case 3:
		return Colour{level(p), level(q), level(v)}
	case 4:
		return Colour{level(t), level(p), level(v)}
	default:
		return Colour{level(v), level(p), level(q)}
	}
}

func level(x float64) uint8 {
	return uint8(math.Round(ScanLevels * x))
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
