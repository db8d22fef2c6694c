package vtio

import "fmt"

// ansiEscapes maps complete escape sequences, and the single control bytes
// that finalize as their own sequence, to key events. It covers the
// xterm/VT220 repertoire plus the Linux console function-key variant; the
// xterm "1;m" modifier parameter is expanded programmatically below.
var ansiEscapes = make(map[string]KeyEvent, 512)

// xterm encodes modifiers as param-1 bit flags.
func modifierFlags(param int) (shift, alt, ctrl bool) {
	bits := param - 1
	return bits&1 != 0, bits&2 != 0, bits&4 != 0
}

var csiFinalKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'F': KeyEnd,
	'H': KeyHome,
}

var ss3FinalKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'F': KeyEnd,
	'H': KeyHome,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

var tildeCodeKeys = map[int]Key{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
	25: KeyF13,
	26: KeyF14,
	28: KeyF15,
	29: KeyF16,
	31: KeyF17,
	32: KeyF18,
	33: KeyF19,
	34: KeyF20,
}

func init() {
	// C0 control bytes; raw mode clears ICRNL so Enter arrives as CR.
	ansiEscapes["\x00"] = KeyEvent{Key: ' ', Ctrl: true}
	for b := byte(0x01); b <= 0x1a; b++ {
		ansiEscapes[string(b)] = KeyEvent{Key: Key('a' + rune(b) - 1), Ctrl: true}
	}
	ansiEscapes["\x08"] = KeyEvent{Key: KeyBackspace, Ctrl: true}
	ansiEscapes["\x09"] = KeyEvent{Key: KeyTab}
	ansiEscapes["\x0d"] = KeyEvent{Key: KeyEnter}
	ansiEscapes["\x1b"] = KeyEvent{Key: KeyEscape}
	ansiEscapes["\x1c"] = KeyEvent{Key: '\\', Ctrl: true}
	ansiEscapes["\x1d"] = KeyEvent{Key: ']', Ctrl: true}
	ansiEscapes["\x1e"] = KeyEvent{Key: '^', Ctrl: true}
	ansiEscapes["\x1f"] = KeyEvent{Key: '_', Ctrl: true}
	ansiEscapes["\x7f"] = KeyEvent{Key: KeyBackspace}
	ansiEscapes["\x9b"] = KeyEvent{Key: KeyEscape}

	for final, key := range csiFinalKeys {
		ansiEscapes["\x1b["+string(final)] = KeyEvent{Key: key}
	}
	for final, key := range ss3FinalKeys {
		ansiEscapes["\x1bO"+string(final)] = KeyEvent{Key: key}
	}
	for code, key := range tildeCodeKeys {
		ansiEscapes[fmt.Sprintf("\x1b[%d~", code)] = KeyEvent{Key: key}
	}

	// Modified variants: CSI 1;m final and CSI code;m ~.
	for m := 2; m <= 8; m++ {
		shift, alt, ctrl := modifierFlags(m)
		for final, key := range csiFinalKeys {
			ansiEscapes[fmt.Sprintf("\x1b[1;%d%c", m, final)] =
				KeyEvent{Key: key, Alt: alt, Ctrl: ctrl, Shift: shift}
		}
		for final, key := range map[byte]Key{'P': KeyF1, 'Q': KeyF2, 'R': KeyF3, 'S': KeyF4} {
			ansiEscapes[fmt.Sprintf("\x1b[1;%d%c", m, final)] =
				KeyEvent{Key: key, Alt: alt, Ctrl: ctrl, Shift: shift}
		}
		for code, key := range tildeCodeKeys {
			ansiEscapes[fmt.Sprintf("\x1b[%d;%d~", code, m)] =
				KeyEvent{Key: key, Alt: alt, Ctrl: ctrl, Shift: shift}
		}
	}

	// Linux console function keys: ESC [ [ A-E.
	for i, final := range []byte{'A', 'B', 'C', 'D', 'E'} {
		ansiEscapes["\x1b[["+string(final)] = KeyEvent{Key: KeyF1 + Key(i)}
	}

	// Backtab.
	ansiEscapes["\x1b[Z"] = KeyEvent{Key: KeyTab, Shift: true}
}
