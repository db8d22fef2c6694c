package vtio_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/vtio"
	"github.com/jcorbin/vtio/ansi"
)

func TestVt100_commands(t *testing.T) {
	for _, tc := range []struct {
		name     string
		run      func(vt *vtio.Vt100)
		expected string
	}{
		{"line feed", func(vt *vtio.Vt100) { vt.LineFeed() }, "\n"},
		{"cursor up", func(vt *vtio.Vt100) { vt.CursorUp(3) }, "\x1b[3A"},
		{"cursor down", func(vt *vtio.Vt100) { vt.CursorDown(1) }, "\x1b[1B"},
		{"cursor forward", func(vt *vtio.Vt100) { vt.CursorForward(2) }, "\x1b[2C"},
		{"cursor back", func(vt *vtio.Vt100) { vt.CursorBack(4) }, "\x1b[4D"},
		{"next line", func(vt *vtio.Vt100) { vt.CursorNextLine(2) }, "\x1b[2E"},
		{"previous line", func(vt *vtio.Vt100) { vt.CursorPreviousLine(2) }, "\x1b[2F"},
		{"column", func(vt *vtio.Vt100) { vt.CursorColumn(0) }, "\x1b[1G"},
		{
			"position",
			func(vt *vtio.Vt100) { vt.CursorPosition(ansi.Pt(3, 4)) },
			"\x1b[5;4H",
		},
		{"erase display", func(vt *vtio.Vt100) { vt.EraseInDisplay(2) }, "\x1b[2J"},
		{"erase line", func(vt *vtio.Vt100) { vt.EraseInLine(0) }, "\x1b[0K"},
		{"scroll up", func(vt *vtio.Vt100) { vt.ScrollUp(5) }, "\x1b[5S"},
		{"scroll down", func(vt *vtio.Vt100) { vt.ScrollDown(5) }, "\x1b[5T"},
		{"save cursor", func(vt *vtio.Vt100) { vt.SaveCursor() }, "\x1b7"},
		{"restore cursor", func(vt *vtio.Vt100) { vt.RestoreCursor() }, "\x1b8"},
		{"reset attributes", func(vt *vtio.Vt100) { vt.ResetAttributes() }, "\x1b[0m"},
		{
			"style",
			func(vt *vtio.Vt100) {
				vt.SetStyle(ansi.Style{
					Bold: true,
					FG:   &ansi.RGB{R: 255, G: 128},
				})
			},
			"\x1b[1m\x1b[38;2;255;128;0m",
		},
		{
			"title",
			func(vt *vtio.Vt100) { vt.SetTitle("demo") },
			"\x1b]2;demo\x07",
		},
		{
			"alternate screen",
			func(vt *vtio.Vt100) { vt.EnterAlternateScreen() },
			"\x1b[?1049h\x1b[H",
		},
		{
			"primary screen",
			func(vt *vtio.Vt100) { vt.ExitAlternateScreen() },
			"\x1b[?1049l",
		},
		{
			"mouse on",
			func(vt *vtio.Vt100) { vt.EnableMouse() },
			"\x1b[?1000h\x1b[?1003h\x1b[?1006h\x1b[?1015h",
		},
		{
			"mouse off",
			func(vt *vtio.Vt100) { vt.DisableMouse() },
			"\x1b[?1000l\x1b[?1003l\x1b[?1006l\x1b[?1015l",
		},
		{
			"bracketed paste",
			func(vt *vtio.Vt100) { vt.EnableBracketedPaste(); vt.DisableBracketedPaste() },
			"\x1b[?2004h\x1b[?2004l",
		},
		{
			"focus reporting",
			func(vt *vtio.Vt100) { vt.EnableFocusReporting(); vt.DisableFocusReporting() },
			"\x1b[?1004h\x1b[?1004l",
		},
		{
			"cursor visibility",
			func(vt *vtio.Vt100) { vt.HideCursor(); vt.ShowCursor() },
			"\x1b[?25l\x1b[?25h",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			vt := vtio.NewVt100(&out)
			tc.run(vt)
			assert.Equal(t, "", out.String(), "commands must buffer until flush")
			require.NoError(t, vt.Flush())
			assert.Equal(t, tc.expected, out.String())
		})
	}
}

func TestVt100_flushClears(t *testing.T) {
	var out bytes.Buffer
	vt := vtio.NewVt100(&out)

	n, err := vt.WriteString("hello")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	require.NoError(t, vt.Flush())
	require.NoError(t, vt.Flush())
	assert.Equal(t, "hello", out.String())

	n, err = vt.Write([]byte(" world"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	require.NoError(t, vt.Flush())
	assert.Equal(t, "hello world", out.String())
}

func TestVt100_altScreenState(t *testing.T) {
	vt := vtio.NewVt100(&bytes.Buffer{})
	assert.False(t, vt.InAltScreen())
	vt.EnterAlternateScreen()
	assert.True(t, vt.InAltScreen())
	vt.ExitAlternateScreen()
	assert.False(t, vt.InAltScreen())
}

func TestVt100_requestsFlushImmediately(t *testing.T) {
	var out bytes.Buffer
	vt := vtio.NewVt100(&out)

	vt.CursorUp(1)
	require.NoError(t, vt.RequestCursorPosition())
	assert.Equal(t, "\x1b[1A\x1b[6n", out.String(),
		"request must flush pending output along with itself")
	assert.True(t, vt.ExpectingReport())
}

func TestVt100_requestSequences(t *testing.T) {
	for _, tc := range []struct {
		name     string
		run      func(vt *vtio.Vt100) error
		expected string
	}{
		{"cursor position", (*vtio.Vt100).RequestCursorPosition, "\x1b[6n"},
		{"foreground color", (*vtio.Vt100).RequestForegroundColor, "\x1b]10;?\x07"},
		{"background color", (*vtio.Vt100).RequestBackgroundColor, "\x1b]11;?\x07"},
		{"device attributes", (*vtio.Vt100).RequestDeviceAttributes, "\x1b[c"},
		{"cell geometry", (*vtio.Vt100).RequestCellGeometry, "\x1b[16t"},
		{"terminal geometry", (*vtio.Vt100).RequestTerminalGeometry, "\x1b[14t"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			vt := vtio.NewVt100(&out)
			require.NoError(t, tc.run(vt))
			assert.Equal(t, tc.expected, out.String())
			assert.True(t, vt.ExpectingReport())
		})
	}
}

func TestVt100_reportRoundTrip(t *testing.T) {
	var out bytes.Buffer
	vt := vtio.NewVt100(&out)

	require.NoError(t, vt.RequestCursorPosition())
	vt.Feed([]byte("\x1b[5;4R"))
	assert.Equal(t, []vtio.Event{
		vtio.CursorPositionResponseEvent{Pos: ansi.Pt(3, 4)},
	}, vt.Events())
	assert.False(t, vt.ExpectingReport())
}
