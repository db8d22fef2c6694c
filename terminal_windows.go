//go:build windows

package vtio

import (
	"os"
	"sync"
	"unicode/utf16"

	"github.com/erikgeiser/coninput"
	"golang.org/x/sys/windows"

	"github.com/jcorbin/vtio/ansi"
)

// Terminal is the windows console: VT processing via console modes and
// input via console input records on a dedicated worker.
type Terminal struct {
	Vt100

	in  *os.File
	out *os.File

	savedIn  uint32
	savedOut uint32
	raw      bool

	stopEv windows.Handle
	wg     sync.WaitGroup
	attach bool
}

func newTerminal(in, out *os.File) *Terminal {
	t := &Terminal{in: in, out: out}
	t.Vt100.init(out)
	return t
}

// RawMode enables virtual terminal sequences on output and raw virtual
// terminal input, saving prior console modes.
func (t *Terminal) RawMode() error {
	inH := windows.Handle(t.in.Fd())
	outH := windows.Handle(t.out.Fd())

	var inMode, outMode uint32
	if err := windows.GetConsoleMode(inH, &inMode); err != nil {
		return err
	}
	if err := windows.GetConsoleMode(outH, &outMode); err != nil {
		return err
	}

	newOut := outMode | windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING
	if err := windows.SetConsoleMode(outH, newOut); err != nil {
		return err
	}

	newIn := inMode | windows.ENABLE_VIRTUAL_TERMINAL_INPUT |
		windows.ENABLE_WINDOW_INPUT | windows.ENABLE_EXTENDED_FLAGS
	newIn &^= windows.ENABLE_ECHO_INPUT | windows.ENABLE_LINE_INPUT |
		windows.ENABLE_PROCESSED_INPUT | windows.ENABLE_MOUSE_INPUT |
		windows.ENABLE_QUICK_EDIT_MODE
	if err := windows.SetConsoleMode(inH, newIn); err != nil {
		windows.SetConsoleMode(outH, outMode)
		return err
	}

	t.savedIn, t.savedOut = inMode, outMode
	t.raw = true
	return nil
}

// RestoreConsole restores the console modes saved by RawMode.
func (t *Terminal) RestoreConsole() error {
	if !t.raw {
		return ErrNotRaw
	}
	errIn := windows.SetConsoleMode(windows.Handle(t.in.Fd()), t.savedIn)
	errOut := windows.SetConsoleMode(windows.Handle(t.out.Fd()), t.savedOut)
	t.raw = false
	if errIn != nil {
		return errIn
	}
	return errOut
}

// Size returns the terminal size in character cells.
func (t *Terminal) Size() (ansi.Size, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(t.out.Fd()), &info); err != nil {
		return ansi.Size{}, err
	}
	w := int(info.Window.Right-info.Window.Left) + 1
	h := int(info.Window.Bottom-info.Window.Top) + 1
	return ansi.Sz(w, h), nil
}

// ProcessInput decodes raw input bytes, returning any completed events.
func (t *Terminal) ProcessInput(p []byte) []Event {
	t.Feed(p)
	return t.Events()
}

// Attach starts the console input worker, delivering events to handler.
func (t *Terminal) Attach(handler func([]Event)) error {
	if t.attach {
		return ErrAttached
	}
	stopEv, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		return err
	}
	t.stopEv = stopEv
	t.attach = true
	t.SetHandler(handler)

	t.wg.Add(1)
	go t.readLoop(handler)
	return nil
}

// Unattach signals the input worker to stop and waits for it.
func (t *Terminal) Unattach() error {
	if !t.attach {
		return ErrNotAttached
	}
	windows.SetEvent(t.stopEv)
	t.wg.Wait()
	windows.CloseHandle(t.stopEv)
	t.SetHandler(nil)
	t.attach = false
	return nil
}

func (t *Terminal) readLoop(handler func([]Event)) {
	defer t.wg.Done()
	conin := windows.Handle(t.in.Fd())
	handles := []windows.Handle{t.stopEv, conin}
	for {
		ev, err := windows.WaitForMultipleObjects(handles, false, windows.INFINITE)
		if err != nil {
			return
		}
		switch ev {
		case windows.WAIT_OBJECT_0:
			return
		case windows.WAIT_OBJECT_0 + 1:
			if evs := t.processRecords(conin); len(evs) > 0 {
				handler(evs)
			}
		default:
			return
		}
	}
}

// processRecords drains pending console input records, feeding key text
// through the escape decoder and mapping window size records to resize
// events.
func (t *Terminal) processRecords(conin windows.Handle) []Event {
	records, err := coninput.ReadNConsoleInputs(conin, 32)
	if err != nil {
		return nil
	}
	var text []uint16
	for _, rec := range records {
		switch ev := rec.Unwrap().(type) {
		case coninput.KeyEventRecord:
			// Key-up transitions and bare modifier presses carry no
			// character.
			if !ev.KeyDown || ev.Char == 0 {
				continue
			}
			for i := 0; i < int(ev.RepeatCount); i++ {
				text = append(text, uint16(ev.Char))
			}
		case coninput.WindowBufferSizeEventRecord:
			t.Enqueue(ResizeEvent{
				Size: ansi.Sz(int(ev.Size.X), int(ev.Size.Y)),
			})
		}
	}
	if len(text) > 0 {
		t.Feed([]byte(string(utf16.Decode(text))))
	}
	return t.Events()
}
