package vtio

import (
	"errors"
	"os"

	"golang.org/x/term"

	"github.com/jcorbin/vtio/ansi"
)

// Platform is the contract satisfied by the per-OS Terminal types: raw
// console control and event-driven input on top of the Vt100 facade.
type Platform interface {
	// RawMode puts the console into raw mode, saving prior state for
	// RestoreConsole.
	RawMode() error

	// RestoreConsole undoes RawMode. Calling it without a prior RawMode
	// is an error.
	RestoreConsole() error

	// Attach starts background input processing; decoded events are
	// delivered to handler. handler is called from the read goroutine.
	Attach(handler func([]Event)) error

	// Unattach stops background input processing and waits for its
	// goroutines to exit.
	Unattach() error

	// Size returns the terminal size in character cells.
	Size() (ansi.Size, error)

	// ProcessInput decodes raw terminal input bytes, returning any
	// events they complete.
	ProcessInput(p []byte) []Event
}

var _ Platform = (*Terminal)(nil)

var (
	// ErrNotTerminal is returned by Open when stdin is not attached to a
	// terminal.
	ErrNotTerminal = errors.New("vtio: stdin is not a terminal")

	// ErrNotRaw is returned by RestoreConsole when RawMode was never
	// entered.
	ErrNotRaw = errors.New("vtio: console is not in raw mode")

	// ErrAttached is returned by Attach when input processing is already
	// running.
	ErrAttached = errors.New("vtio: already attached")

	// ErrNotAttached is returned by Unattach when input processing is
	// not running.
	ErrNotAttached = errors.New("vtio: not attached")
)

// Open returns the Terminal for the current platform, bound to the
// process's stdin and stdout. It fails with ErrNotTerminal when stdin is
// not a terminal.
func Open() (*Terminal, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, ErrNotTerminal
	}
	return newTerminal(os.Stdin, os.Stdout), nil
}
