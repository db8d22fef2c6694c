package ansi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit terminal color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string { return c.Hex() }

// Hex returns the color in #rrggbb form.
func (c RGB) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// RGBA implements image/color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// Colorful converts to a go-colorful color for blending and distance math.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// RGBFromColorful converts a go-colorful color, clamping it into sRGB.
func RGBFromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// DecodeXTermColor parses the "rgb:hhhh/hhhh/hhhh" payload that xterm uses
// in OSC color reports. Each component may be 1 to 4 hex digits, scaled to
// 16 bits; the high 8 bits of each survive.
func DecodeXTermColor(s string) (RGB, bool) {
	s, ok := strings.CutPrefix(s, "rgb:")
	if !ok {
		return RGB{}, false
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return RGB{}, false
	}
	var c [3]uint8
	for i, part := range parts {
		if len(part) == 0 || len(part) > 4 {
			return RGB{}, false
		}
		v, err := strconv.ParseUint(part, 16, 16)
		if err != nil {
			return RGB{}, false
		}
		v <<= 4 * uint(4-len(part))
		c[i] = uint8(v >> 8)
	}
	return RGB{c[0], c[1], c[2]}, true
}

// Style selects graphic rendition attributes; zero flags with nil colors
// appends a bare CSI m, which resets all attributes.
type Style struct {
	Bold          bool
	Faint         bool
	Italic        bool
	Underline     bool
	Blink         bool
	Reverse       bool
	Strikethrough bool
	Overline      bool

	FG, BG *RGB
}

var styleParams = [...]struct {
	on    func(Style) bool
	param int
}{
	{func(st Style) bool { return st.Bold }, 1},
	{func(st Style) bool { return st.Faint }, 2},
	{func(st Style) bool { return st.Italic }, 3},
	{func(st Style) bool { return st.Underline }, 4},
	{func(st Style) bool { return st.Blink }, 5},
	{func(st Style) bool { return st.Reverse }, 7},
	{func(st Style) bool { return st.Strikethrough }, 9},
	{func(st Style) bool { return st.Overline }, 53},
}

// Append appends the style's SGR sequences to p.
func (st Style) Append(p []byte) []byte {
	var buf [8]int
	args := buf[:0]
	for _, sp := range styleParams {
		if sp.on(st) {
			args = append(args, sp.param)
		}
	}
	p = AppendCSI(p, 'm', args...)
	if st.FG != nil {
		p = AppendCSI(p, 'm', 38, 2, int(st.FG.R), int(st.FG.G), int(st.FG.B))
	}
	if st.BG != nil {
		p = AppendCSI(p, 'm', 48, 2, int(st.BG.R), int(st.BG.G), int(st.BG.B))
	}
	return p
}
