//go:build !windows

package vtio

import (
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/jcorbin/vtio/ansi"
)

func openTestTerminal(t *testing.T) (ptm *os.File, term *Terminal) {
	t.Helper()
	ptm, tty, err := pty.Open()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	t.Cleanup(func() {
		ptm.Close()
		tty.Close()
	})
	return ptm, newTerminal(tty, tty)
}

func TestTerminal_rawMode(t *testing.T) {
	_, term := openTestTerminal(t)

	before, err := unix.IoctlGetTermios(int(term.in.Fd()), ioctlReadTermios)
	require.NoError(t, err)

	require.NoError(t, term.RawMode())
	attrs, err := unix.IoctlGetTermios(int(term.in.Fd()), ioctlReadTermios)
	require.NoError(t, err)
	assert.Zero(t, attrs.Lflag&unix.ECHO, "echo must be off")
	assert.Zero(t, attrs.Lflag&unix.ICANON, "canonical mode must be off")
	assert.Zero(t, attrs.Lflag&unix.ISIG, "signal generation must be off")
	assert.Zero(t, attrs.Iflag&unix.IXON, "flow control must be off")

	require.NoError(t, term.RestoreConsole())
	after, err := unix.IoctlGetTermios(int(term.in.Fd()), ioctlReadTermios)
	require.NoError(t, err)
	assert.Equal(t, before.Lflag, after.Lflag)
	assert.Equal(t, before.Iflag, after.Iflag)

	assert.Equal(t, ErrNotRaw, term.RestoreConsole())
}

func TestTerminal_size(t *testing.T) {
	ptm, term := openTestTerminal(t)

	require.NoError(t, pty.Setsize(ptm, &pty.Winsize{Rows: 24, Cols: 80}))
	size, err := term.Size()
	require.NoError(t, err)
	assert.Equal(t, ansi.Sz(80, 24), size)
}

func TestTerminal_processInput(t *testing.T) {
	_, term := openTestTerminal(t)

	evs := term.ProcessInput([]byte("a\x1b[B"))
	assert.Equal(t, []Event{
		KeyEvent{Key: 'a'},
		KeyEvent{Key: KeyDown},
	}, evs)
}

func TestTerminal_attach(t *testing.T) {
	ptm, term := openTestTerminal(t)

	require.NoError(t, term.RawMode())
	defer term.RestoreConsole()

	got := make(chan []Event, 8)
	require.NoError(t, term.Attach(func(evs []Event) { got <- evs }))
	assert.Equal(t, ErrAttached, term.Attach(nil))

	_, err := ptm.WriteString("\x1b[A")
	require.NoError(t, err)

	select {
	case evs := <-got:
		assert.Equal(t, []Event{KeyEvent{Key: KeyUp}}, evs)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for input events")
	}

	require.NoError(t, term.Unattach())
	assert.Equal(t, ErrNotAttached, term.Unattach())
}
