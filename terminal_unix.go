//go:build !windows

package vtio

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/muesli/cancelreader"
	"golang.org/x/sys/unix"

	"github.com/jcorbin/vtio/ansi"
)

// Terminal is the unix console: termios raw mode, SIGWINCH resize
// notification, and a cancelable stdin read loop.
type Terminal struct {
	Vt100

	in  *os.File
	out *os.File

	saved *unix.Termios

	cr     cancelreader.CancelReader
	winch  chan os.Signal
	done   chan struct{}
	wg     sync.WaitGroup
	attach bool
}

func newTerminal(in, out *os.File) *Terminal {
	t := &Terminal{in: in, out: out}
	t.Vt100.init(out)
	return t
}

// RawMode disables echo, canonical line editing, signal generation, and
// flow control, taking input one byte at a time.
func (t *Terminal) RawMode() error {
	attrs, err := unix.IoctlGetTermios(int(t.in.Fd()), ioctlReadTermios)
	if err != nil {
		return err
	}
	saved := *attrs

	attrs.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	attrs.Iflag &^= unix.IXON | unix.IXOFF | unix.ICRNL | unix.INLCR | unix.IGNCR
	attrs.Cc[unix.VMIN] = 1
	attrs.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(int(t.in.Fd()), ioctlWriteTermios, attrs); err != nil {
		return err
	}
	t.saved = &saved
	return nil
}

// RestoreConsole restores the termios state saved by RawMode.
func (t *Terminal) RestoreConsole() error {
	if t.saved == nil {
		return ErrNotRaw
	}
	err := unix.IoctlSetTermios(int(t.in.Fd()), ioctlWriteTermios, t.saved)
	t.saved = nil
	return err
}

// Size returns the terminal size in character cells.
func (t *Terminal) Size() (ansi.Size, error) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return ansi.Size{}, err
	}
	return ansi.Sz(int(ws.Col), int(ws.Row)), nil
}

// ProcessInput decodes raw input bytes, returning any completed events.
func (t *Terminal) ProcessInput(p []byte) []Event {
	t.Feed(p)
	return t.Events()
}

// Attach starts reading stdin and watching for window size changes,
// delivering events to handler from a background goroutine.
func (t *Terminal) Attach(handler func([]Event)) error {
	if t.attach {
		return ErrAttached
	}
	cr, err := cancelreader.NewReader(t.in)
	if err != nil {
		return err
	}
	t.cr = cr
	t.winch = make(chan os.Signal, 1)
	t.done = make(chan struct{})
	t.attach = true
	t.SetHandler(handler)
	signal.Notify(t.winch, syscall.SIGWINCH)

	t.wg.Add(2)
	go t.readLoop(handler)
	go t.resizeLoop(handler)
	return nil
}

// Unattach stops the input goroutines and waits for them to exit.
func (t *Terminal) Unattach() error {
	if !t.attach {
		return ErrNotAttached
	}
	signal.Stop(t.winch)
	close(t.done)
	t.cr.Cancel()
	t.wg.Wait()
	t.cr.Close()
	t.SetHandler(nil)
	t.attach = false
	return nil
}

func (t *Terminal) readLoop(handler func([]Event)) {
	defer t.wg.Done()
	var buf [1024]byte
	for {
		n, err := t.cr.Read(buf[:])
		if n > 0 {
			if evs := t.ProcessInput(buf[:n]); len(evs) > 0 {
				handler(evs)
			}
		}
		if err != nil {
			// ErrCanceled means Unattach; anything else ends the
			// stream rather than spinning on a dead fd.
			return
		}
	}
}

func (t *Terminal) resizeLoop(handler func([]Event)) {
	defer t.wg.Done()
	for {
		select {
		case <-t.done:
			return
		case <-t.winch:
			size, err := t.Size()
			if err != nil {
				continue
			}
			t.Enqueue(ResizeEvent{Size: size})
			if evs := t.Events(); len(evs) > 0 {
				handler(evs)
			}
		}
	}
}
