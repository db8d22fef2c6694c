package ansi

import (
	"strconv"
	"strings"
)

// Sequence introducers and terminators.
const (
	ESC = "\x1b"   // escape
	CSI = "\x1b["  // control sequence introducer
	OSC = "\x1b]"  // operating system command
	SS3 = "\x1bO"  // single shift three
	ST  = "\x1b\\" // string terminator
)

// Markers that frame out-of-band input runs.
const (
	PasteStart = "\x1b[200~"
	PasteEnd   = "\x1b[201~"
	FocusIn    = "\x1b[I"
	FocusOut   = "\x1b[O"
)

// AppendCSI appends a control sequence terminated by name to p, any integer
// arguments rendered base-10 and separated by ';'.
func AppendCSI(p []byte, name byte, args ...int) []byte {
	p = append(p, CSI...)
	for i, arg := range args {
		if i > 0 {
			p = append(p, ';')
		}
		p = strconv.AppendInt(p, int64(arg), 10)
	}
	return append(p, name)
}

// AppendOSC appends an operating system command carrying arg to p,
// terminated by BEL.
func AppendOSC(p []byte, arg string) []byte {
	p = append(p, OSC...)
	p = append(p, arg...)
	return append(p, 0x07)
}

// SplitParams splits a CSI parameter string on ';' into non-negative
// integers; reports false if the string is empty or any piece fails to
// parse.
func SplitParams(s string) ([]int, bool) {
	if s == "" {
		return nil, false
	}
	parts := strings.Split(s, ";")
	args := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return nil, false
		}
		args[i] = v
	}
	return args, true
}
