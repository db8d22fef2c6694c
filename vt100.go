package vtio

import (
	"io"

	"github.com/jcorbin/vtio/ansi"
)

// Vt100 couples an escape decoder with a buffered output encoder. Command
// methods append fully formed control sequences to a pending buffer;
// nothing reaches the terminal until Flush. Input bytes fed to the
// decoder come back out of Events.
//
// Command methods are not synchronized; callers drive output from a
// single goroutine. The embedded Decoder handles its own locking.
type Vt100 struct {
	Decoder

	out   io.Writer
	buf   []byte
	inAlt bool
}

// NewVt100 returns a facade writing its flushed output to out.
func NewVt100(out io.Writer) *Vt100 {
	vt := &Vt100{}
	vt.init(out)
	return vt
}

func (vt *Vt100) init(out io.Writer) {
	vt.out = out
	vt.Decoder.init()
}

// Write appends p to the pending output buffer, implementing io.Writer.
func (vt *Vt100) Write(p []byte) (int, error) {
	vt.buf = append(vt.buf, p...)
	return len(p), nil
}

// WriteString appends s to the pending output buffer.
func (vt *Vt100) WriteString(s string) (int, error) {
	vt.buf = append(vt.buf, s...)
	return len(s), nil
}

// Flush writes the pending buffer to the terminal and clears it.
func (vt *Vt100) Flush() error {
	if len(vt.buf) == 0 {
		return nil
	}
	_, err := vt.out.Write(vt.buf)
	vt.buf = vt.buf[:0]
	return err
}

// InAltScreen reports whether the last screen toggle entered the
// alternate screen buffer.
func (vt *Vt100) InAltScreen() bool { return vt.inAlt }

// LineFeed moves the cursor to the next line, scrolling if needed.
func (vt *Vt100) LineFeed() { vt.buf = append(vt.buf, '\n') }

// CursorUp moves the cursor up n cells.
func (vt *Vt100) CursorUp(n int) { vt.buf = ansi.AppendCSI(vt.buf, 'A', n) }

// CursorDown moves the cursor down n cells.
func (vt *Vt100) CursorDown(n int) { vt.buf = ansi.AppendCSI(vt.buf, 'B', n) }

// CursorForward moves the cursor right n cells.
func (vt *Vt100) CursorForward(n int) { vt.buf = ansi.AppendCSI(vt.buf, 'C', n) }

// CursorBack moves the cursor left n cells.
func (vt *Vt100) CursorBack(n int) { vt.buf = ansi.AppendCSI(vt.buf, 'D', n) }

// CursorNextLine moves the cursor to the start of the line n below.
func (vt *Vt100) CursorNextLine(n int) { vt.buf = ansi.AppendCSI(vt.buf, 'E', n) }

// CursorPreviousLine moves the cursor to the start of the line n above.
func (vt *Vt100) CursorPreviousLine(n int) { vt.buf = ansi.AppendCSI(vt.buf, 'F', n) }

// CursorColumn moves the cursor to column x on the current line.
func (vt *Vt100) CursorColumn(x int) { vt.buf = ansi.AppendCSI(vt.buf, 'G', x+1) }

// CursorPosition moves the cursor to pos.
func (vt *Vt100) CursorPosition(pos ansi.Point) {
	vt.buf = ansi.AppendCSI(vt.buf, 'H', pos.Y+1, pos.X+1)
}

// EraseInDisplay erases part of the screen: 0 from cursor to end, 1 from
// start to cursor, 2 all, 3 all plus scrollback.
func (vt *Vt100) EraseInDisplay(n int) { vt.buf = ansi.AppendCSI(vt.buf, 'J', n) }

// EraseInLine erases part of the current line: 0 from cursor to end, 1
// from start to cursor, 2 all.
func (vt *Vt100) EraseInLine(n int) { vt.buf = ansi.AppendCSI(vt.buf, 'K', n) }

// ScrollUp scrolls the screen contents up n lines.
func (vt *Vt100) ScrollUp(n int) { vt.buf = ansi.AppendCSI(vt.buf, 'S', n) }

// ScrollDown scrolls the screen contents down n lines.
func (vt *Vt100) ScrollDown(n int) { vt.buf = ansi.AppendCSI(vt.buf, 'T', n) }

// SaveCursor saves the cursor position and attributes (DECSC).
func (vt *Vt100) SaveCursor() { vt.buf = append(vt.buf, "\x1b7"...) }

// RestoreCursor restores the cursor position and attributes (DECRC).
func (vt *Vt100) RestoreCursor() { vt.buf = append(vt.buf, "\x1b8"...) }

// ResetAttributes clears all SGR attributes.
func (vt *Vt100) ResetAttributes() { vt.buf = ansi.AppendCSI(vt.buf, 'm', 0) }

// SetStyle emits the SGR sequence selecting style for subsequent text.
func (vt *Vt100) SetStyle(style ansi.Style) { vt.buf = style.Append(vt.buf) }

// SetTitle sets the terminal window title.
func (vt *Vt100) SetTitle(title string) {
	vt.buf = ansi.AppendOSC(vt.buf, "2;"+title)
}

// EnterAlternateScreen switches to the alternate screen buffer and homes
// the cursor.
func (vt *Vt100) EnterAlternateScreen() {
	vt.buf = append(vt.buf, ansi.ModeAlternateScreen.Set()...)
	vt.buf = ansi.AppendCSI(vt.buf, 'H')
	vt.inAlt = true
}

// ExitAlternateScreen switches back to the primary screen buffer.
func (vt *Vt100) ExitAlternateScreen() {
	vt.buf = append(vt.buf, ansi.ModeAlternateScreen.Reset()...)
	vt.inAlt = false
}

var mouseModes = []ansi.Mode{
	ansi.ModeMouseVt200,
	ansi.ModeMouseAnyEvent,
	ansi.ModeMouseSgrExt,
	ansi.ModeMouseUrxvtExt,
}

// EnableMouse turns on any-event mouse reporting with SGR extended
// coordinates.
func (vt *Vt100) EnableMouse() {
	for _, m := range mouseModes {
		vt.buf = append(vt.buf, m.Set()...)
	}
}

// DisableMouse turns off mouse reporting.
func (vt *Vt100) DisableMouse() {
	for _, m := range mouseModes {
		vt.buf = append(vt.buf, m.Reset()...)
	}
}

// EnableBracketedPaste makes the terminal frame pasted text with
// 200~/201~ markers.
func (vt *Vt100) EnableBracketedPaste() {
	vt.buf = append(vt.buf, ansi.ModeBracketedPaste.Set()...)
}

// DisableBracketedPaste turns off paste framing.
func (vt *Vt100) DisableBracketedPaste() {
	vt.buf = append(vt.buf, ansi.ModeBracketedPaste.Reset()...)
}

// EnableFocusReporting makes the terminal report focus changes.
func (vt *Vt100) EnableFocusReporting() {
	vt.buf = append(vt.buf, ansi.ModeFocusEvent.Set()...)
}

// DisableFocusReporting turns off focus change reports.
func (vt *Vt100) DisableFocusReporting() {
	vt.buf = append(vt.buf, ansi.ModeFocusEvent.Reset()...)
}

// ShowCursor makes the cursor visible.
func (vt *Vt100) ShowCursor() { vt.buf = append(vt.buf, ansi.ModeShowCursor.Set()...) }

// HideCursor makes the cursor invisible.
func (vt *Vt100) HideCursor() { vt.buf = append(vt.buf, ansi.ModeShowCursor.Reset()...) }

// request sends a device status report request immediately, recording it
// so that the decoder can correlate the reply.
func (vt *Vt100) request(seq string) error {
	vt.PushRequest()
	vt.buf = append(vt.buf, seq...)
	return vt.Flush()
}

// RequestCursorPosition asks the terminal to report the cursor position;
// the reply arrives as a CursorPositionResponseEvent.
func (vt *Vt100) RequestCursorPosition() error { return vt.request("\x1b[6n") }

// RequestForegroundColor asks for the default foreground color; the
// reply arrives as a ColorReportEvent.
func (vt *Vt100) RequestForegroundColor() error {
	return vt.request(string(ansi.AppendOSC(nil, "10;?")))
}

// RequestBackgroundColor asks for the default background color.
func (vt *Vt100) RequestBackgroundColor() error {
	return vt.request(string(ansi.AppendOSC(nil, "11;?")))
}

// RequestDeviceAttributes asks for primary device attributes; the reply
// arrives as a DeviceAttributesReportEvent.
func (vt *Vt100) RequestDeviceAttributes() error { return vt.request("\x1b[c") }

// RequestCellGeometry asks for the pixel size of a character cell.
func (vt *Vt100) RequestCellGeometry() error { return vt.request("\x1b[16t") }

// RequestTerminalGeometry asks for the pixel size of the text area.
func (vt *Vt100) RequestTerminalGeometry() error { return vt.request("\x1b[14t") }
