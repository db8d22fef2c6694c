package vtio

import (
	"fmt"
	"strconv"
)

// Key identifies a keyboard key. Printable characters represent
// themselves; named special keys take values in a Private Use Area block
// so that the two ranges can never collide.
type Key rune

// Special key constants.
const (
	KeyEscape Key = 0xE000 + iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyScrollUp
	KeyScrollDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24

	minSpecialKey = KeyEscape
	maxSpecialKey = KeyF24
)

var keyNames = [...]string{
	"escape",
	"enter",
	"tab",
	"backspace",
	"insert",
	"delete",
	"home",
	"end",
	"page_up",
	"page_down",
	"up",
	"down",
	"left",
	"right",
	"scroll_up",
	"scroll_down",
}

// IsSpecial returns true if the key is a named special key rather than a
// printable character.
func (k Key) IsSpecial() bool { return minSpecialKey <= k && k <= maxSpecialKey }

func (k Key) String() string {
	switch {
	case KeyF1 <= k && k <= KeyF24:
		return "f" + strconv.Itoa(int(k-KeyF1)+1)
	case minSpecialKey <= k && k < KeyF1:
		return keyNames[k-minSpecialKey]
	case strconv.IsPrint(rune(k)):
		return string(rune(k))
	default:
		return fmt.Sprintf("Key(%#x)", rune(k))
	}
}
