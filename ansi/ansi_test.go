package ansi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/vtio/ansi"
)

func TestAppendCSI(t *testing.T) {
	assert.Equal(t, "\x1b[m", string(ansi.AppendCSI(nil, 'm')))
	assert.Equal(t, "\x1b[3A", string(ansi.AppendCSI(nil, 'A', 3)))
	assert.Equal(t, "\x1b[5;4H", string(ansi.AppendCSI(nil, 'H', 5, 4)))
	assert.Equal(t, "pre\x1b[1J", string(ansi.AppendCSI([]byte("pre"), 'J', 1)))
}

func TestAppendOSC(t *testing.T) {
	assert.Equal(t, "\x1b]2;hi\x07", string(ansi.AppendOSC(nil, "2;hi")))
}

func TestSplitParams(t *testing.T) {
	for _, tc := range []struct {
		in   string
		args []int
		ok   bool
	}{
		{"1", []int{1}, true},
		{"12;5", []int{12, 5}, true},
		{"0;0;0", []int{0, 0, 0}, true},
		{"", nil, false},
		{"1;", nil, false},
		{";2", nil, false},
		{"1;x", nil, false},
		{"-1", nil, false},
	} {
		args, ok := ansi.SplitParams(tc.in)
		assert.Equal(t, tc.ok, ok, "%q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.args, args, "%q", tc.in)
		}
	}
}

func TestMode(t *testing.T) {
	assert.Equal(t, "\x1b[?1049h", ansi.ModeAlternateScreen.Set())
	assert.Equal(t, "\x1b[?1049l", ansi.ModeAlternateScreen.Reset())
	assert.Equal(t, "\x1b[?25h", ansi.ModeShowCursor.Set())

	// Non-private modes carry no '?'.
	assert.Equal(t, "\x1b[4h", ansi.Mode(4).Set())
}

func TestStyleAppend(t *testing.T) {
	assert.Equal(t, "\x1b[m", string(ansi.Style{}.Append(nil)))
	assert.Equal(t, "\x1b[1;4m", string(ansi.Style{Bold: true, Underline: true}.Append(nil)))
	assert.Equal(t,
		"\x1b[7m\x1b[38;2;1;2;3m\x1b[48;2;4;5;6m",
		string(ansi.Style{
			Reverse: true,
			FG:      &ansi.RGB{R: 1, G: 2, B: 3},
			BG:      &ansi.RGB{R: 4, G: 5, B: 6},
		}.Append(nil)))
}

func TestDecodeXTermColor(t *testing.T) {
	for _, tc := range []struct {
		in    string
		color ansi.RGB
		ok    bool
	}{
		{"rgb:ffff/0000/0000", ansi.RGB{R: 0xff}, true},
		{"rgb:8080/8080/8080", ansi.RGB{R: 0x80, G: 0x80, B: 0x80}, true},
		// Short components scale up: "f" means 0xf000.
		{"rgb:f/f/f", ansi.RGB{R: 0xf0, G: 0xf0, B: 0xf0}, true},
		{"rgb:ff/ff/ff", ansi.RGB{R: 0xff, G: 0xff, B: 0xff}, true},
		{"rgb:ffff/0000", ansi.RGB{}, false},
		{"ffff/0000/0000", ansi.RGB{}, false},
		{"rgb:zz/00/00", ansi.RGB{}, false},
		{"rgb:fffff/0/0", ansi.RGB{}, false},
	} {
		c, ok := ansi.DecodeXTermColor(tc.in)
		assert.Equal(t, tc.ok, ok, "%q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.color, c, "%q", tc.in)
		}
	}
}

func TestRGB(t *testing.T) {
	c := ansi.RGB{R: 0x12, G: 0x34, B: 0x56}
	assert.Equal(t, "#123456", c.Hex())

	r, g, b, a := c.RGBA()
	assert.Equal(t, uint32(0x1212), r)
	assert.Equal(t, uint32(0x3434), g)
	assert.Equal(t, uint32(0x5656), b)
	assert.Equal(t, uint32(0xffff), a)

	// The colorful round trip is lossless for 8-bit channels.
	assert.Equal(t, c, ansi.RGBFromColorful(c.Colorful()))
}

func TestGeom(t *testing.T) {
	p := ansi.Pt(3, 4)
	assert.Equal(t, "(3,4)", p.String())
	assert.Equal(t, ansi.Pt(5, 6), p.Add(ansi.Pt(2, 2)))
	assert.Equal(t, ansi.Pt(1, 2), p.Sub(ansi.Pt(2, 2)))

	assert.Equal(t, "80x24", ansi.Sz(80, 24).String())
	assert.False(t, ansi.Sz(80, 24).Empty())
	assert.True(t, ansi.Sz(0, 24).Empty())
	assert.True(t, ansi.Size{}.Empty())
}
