package ansi

import "strconv"

// Mode is an ANSI terminal mode constant.
type Mode uint64

// Mode bit fields
const (
	ModePrivate Mode = 1 << 63
)

// Set returns the control sequence that enables the mode.
func (mode Mode) Set() string { return mode.seq('h') }

// Reset returns the control sequence that disables the mode.
func (mode Mode) Reset() string { return mode.seq('l') }

func (mode Mode) seq(name byte) string {
	p := make([]byte, 0, 8)
	p = append(p, CSI...)
	if mode&ModePrivate != 0 {
		p = append(p, '?')
	}
	p = strconv.AppendUint(p, uint64(mode&^ModePrivate), 10)
	p = append(p, name)
	return string(p)
}

// xterm private mode constants; see
// http://invisible-island.net/xterm/ctlseqs/ctlseqs.html.
const (
	ModeMouseVt200    = ModePrivate | 1000
	ModeMouseBtnEvent = ModePrivate | 1002
	ModeMouseAnyEvent = ModePrivate | 1003

	ModeFocusEvent = ModePrivate | 1004

	ModeMouseSgrExt   = ModePrivate | 1006
	ModeMouseUrxvtExt = ModePrivate | 1015

	ModeAlternateScreen = ModePrivate | 1049
	ModeBracketedPaste  = ModePrivate | 2004

	ModeShowCursor = ModePrivate | 25
)
