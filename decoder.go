package vtio

import (
	"bytes"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jcorbin/vtio/ansi"
)

const (
	// EscapeTimeout bounds how long the decoder waits for more bytes
	// before finalizing a partial escape sequence. A lone ESC key press
	// and the start of a longer sequence are indistinguishable until
	// either a terminating byte arrives or this much time passes.
	EscapeTimeout = 50 * time.Millisecond

	// ReportTimeout bounds how long a device status report request stays
	// eligible for reply matching. A terminal that has not answered
	// within it is presumed to never answer, and the stale request is
	// dropped so that a late reply cannot be misrouted.
	ReportTimeout = 100 * time.Millisecond
)

type parserState uint8

const (
	ground parserState = iota
	escaped
	csiEntry
	oscString
	csiParams
	pasting
	executeNext
)

// Decoder turns the raw byte stream arriving from a VT100 terminal into
// input events. Feed drives the state machine one byte at a time and
// leaves produced events buffered until Events drains them.
//
// A Decoder may be fed from a reader goroutine while its escape timer
// fires on another; an internal mutex serializes them, so state is only
// ever mutated by one goroutine at a time.
type Decoder struct {
	mu sync.Mutex

	state    parserState
	escbuf   []byte
	pastebuf []byte
	runebuf  []byte
	events   []Event

	requests     []time.Time // pending report request times, oldest first
	lastX, lastY int

	timer    *time.Timer
	timerGen uint64

	handler func([]Event)

	escapeTimeout time.Duration
	reportTimeout time.Duration
	now           func() time.Time
}

// NewDecoder returns a Decoder with the package timeout constants.
func NewDecoder() *Decoder {
	d := &Decoder{}
	d.init()
	return d
}

func (d *Decoder) init() {
	d.escapeTimeout = EscapeTimeout
	d.reportTimeout = ReportTimeout
	d.now = time.Now
}

// SetTimeouts overrides the escape completion and report expiry
// timeouts. A zero or negative duration leaves the corresponding timeout
// unchanged.
func (d *Decoder) SetTimeouts(escape, report time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if escape > 0 {
		d.escapeTimeout = escape
	}
	if report > 0 {
		d.reportTimeout = report
	}
}

// SetHandler attaches handler to receive events produced by
// timeout-driven finalization, the only path that can deliver events
// without new input arriving. Feed callers deliver their own batches by
// draining Events after each Feed.
func (d *Decoder) SetHandler(handler func([]Event)) {
	d.mu.Lock()
	d.handler = handler
	d.mu.Unlock()
}

// Feed runs input bytes through the state machine. If the parser is left
// mid-sequence, a timer is armed to finalize it; any timer armed by a
// previous Feed is superseded first.
func (d *Decoder) Feed(p []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopTimerLocked()
	for _, b := range p {
		d.feed1(b)
	}
	if d.state != ground {
		d.armTimerLocked()
	}
}

// Events drains the pending event buffer, returning nil when no events
// are pending.
func (d *Decoder) Events() []Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.drainLocked()
}

// Enqueue appends an out-of-band event (a resize notification) behind any
// already-decoded events.
func (d *Decoder) Enqueue(ev Event) {
	d.mu.Lock()
	d.events = append(d.events, ev)
	d.mu.Unlock()
}

// PushRequest records the send time of a device status report request so
// that its reply can be matched strictly FIFO.
func (d *Decoder) PushRequest() {
	d.mu.Lock()
	d.requests = append(d.requests, d.now())
	d.mu.Unlock()
}

// ExpectingReport reports whether any device status report request is
// still awaiting its reply.
func (d *Decoder) ExpectingReport() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pruneRequestsLocked()
	return len(d.requests) > 0
}

func (d *Decoder) drainLocked() []Event {
	evs := d.events
	d.events = nil
	return evs
}

func (d *Decoder) stopTimerLocked() {
	// Bumping the generation invalidates any in-flight expiry that
	// already fired but has not yet taken the lock.
	d.timerGen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Decoder) armTimerLocked() {
	gen := d.timerGen
	d.timer = time.AfterFunc(d.escapeTimeout, func() { d.expire(gen) })
}

// expire finalizes whatever sequence is in progress once the escape
// timeout elapses with no further input.
func (d *Decoder) expire(gen uint64) {
	d.mu.Lock()
	if gen != d.timerGen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	if d.state == pasting {
		content := d.pastebuf
		d.pastebuf = nil
		d.state = ground
		// The paste end marker may have been cut off mid-sequence;
		// strip a trailing partial occurrence before emitting.
		if i := bytes.IndexByte(content, 0x1b); i >= 0 {
			if tail := content[i:]; strings.HasPrefix(ansi.PasteEnd, string(tail)) {
				content = content[:i]
			}
		}
		d.events = append(d.events, PasteEvent{Paste: string(content)})
	} else {
		d.execute()
	}
	handler := d.handler
	var evs []Event
	if handler != nil {
		evs = d.drainLocked()
	}
	d.mu.Unlock()
	if handler != nil && len(evs) > 0 {
		handler(evs)
	}
}

func isParamByte(b byte) bool { return b == ';' || ('0' <= b && b <= '9') }

func (d *Decoder) feed1(b byte) {
	switch {
	case d.state == oscString:
		d.escbuf = append(d.escbuf, b)
		if b == '\\' && bytes.HasSuffix(d.escbuf, []byte(ansi.ST)) {
			d.execute()
		}

	case d.state != pasting && b == 0x1b:
		// A new escape cancels any partial one.
		d.flushRune()
		d.escbuf = append(d.escbuf[:0], b)
		d.state = escaped

	case d.state == executeNext:
		d.escbuf = append(d.escbuf, b)
		d.execute()

	case d.state == pasting:
		d.pastebuf = append(d.pastebuf, b)
		if b == '~' && bytes.HasSuffix(d.pastebuf, []byte(ansi.PasteEnd)) {
			paste := d.pastebuf[:len(d.pastebuf)-len(ansi.PasteEnd)]
			d.events = append(d.events, PasteEvent{Paste: string(paste)})
			d.pastebuf = nil
			d.state = ground
		}

	case d.state == ground:
		switch {
		// 0x9b is only a C1 CSI when standing alone; mid-rune it is a
		// continuation byte of the character being accumulated.
		case b < 0x20 || b == 0x7f || (b == 0x9b && len(d.runebuf) == 0):
			d.flushRune()
			d.escbuf = append(d.escbuf[:0], b)
			d.execute()
		case b < utf8.RuneSelf:
			d.flushRune()
			d.events = append(d.events, KeyEvent{Key: Key(b)})
		default:
			if b >= 0xc0 {
				d.flushRune()
			}
			d.runebuf = append(d.runebuf, b)
			if utf8.FullRune(d.runebuf) || len(d.runebuf) >= utf8.UTFMax {
				d.flushRune()
			}
		}

	case d.state == escaped:
		d.escbuf = append(d.escbuf, b)
		switch b {
		case '[':
			d.state = csiEntry
		case 'O':
			d.state = executeNext
		case ']':
			d.state = oscString
		default:
			d.execute()
		}

	case d.state == csiEntry:
		d.escbuf = append(d.escbuf, b)
		switch {
		case b == '[':
			// Linux console function keys arrive as ESC [ [ x.
			d.state = executeNext
		case b == '<' || b == '?':
			d.state = csiParams
		case !isParamByte(b):
			d.execute()
		default:
			d.state = csiParams
		}

	case d.state == csiParams:
		d.escbuf = append(d.escbuf, b)
		if !isParamByte(b) {
			d.execute()
		}
	}
}

// flushRune emits any buffered multi-byte character as a key event. An
// incomplete buffer decodes to U+FFFD rather than being dropped.
func (d *Decoder) flushRune() {
	if len(d.runebuf) == 0 {
		return
	}
	r, _ := utf8.DecodeRune(d.runebuf)
	d.runebuf = d.runebuf[:0]
	d.events = append(d.events, KeyEvent{Key: Key(r)})
}

func (d *Decoder) pruneRequestsLocked() {
	now := d.now()
	for len(d.requests) > 0 && now.Sub(d.requests[0]) >= d.reportTimeout {
		d.requests = d.requests[1:]
	}
}

// execute finalizes the accumulated escape buffer into zero or more
// events. Reply matching takes priority over generic classification while
// any report request is outstanding.
func (d *Decoder) execute() {
	d.state = ground
	esc := string(d.escbuf)
	d.escbuf = d.escbuf[:0]

	d.pruneRequestsLocked()
	if len(d.requests) > 0 {
		if ev, ok := decodeReport(esc); ok {
			d.requests = d.requests[1:]
			d.events = append(d.events, ev)
			return
		}
	}

	switch esc {
	case ansi.PasteStart:
		d.state = pasting
		d.pastebuf = d.pastebuf[:0]
		return
	case ansi.FocusIn:
		d.events = append(d.events, FocusEvent{In: true})
		return
	case ansi.FocusOut:
		d.events = append(d.events, FocusEvent{})
		return
	}
	if d.decodeMouse(esc) {
		return
	}
	if kev, ok := ansiEscapes[esc]; ok {
		d.events = append(d.events, kev)
		return
	}
	if len(esc) == 2 && 0x20 <= esc[1] && esc[1] <= 0x7e {
		d.events = append(d.events, KeyEvent{Key: Key(esc[1]), Alt: true})
		return
	}
	d.events = append(d.events, UnknownEscapeSequenceEvent{Escape: esc})
}

var sgrButtons = [4]MouseButton{MouseLeft, MouseMiddle, MouseRight, NoButton}

// decodeMouse handles SGR extended mouse reports: ESC [ < info ; x ; y
// followed by M for press and m for release. Coordinates arrive 1-based.
func (d *Decoder) decodeMouse(esc string) bool {
	if len(esc) < 4 || !strings.HasPrefix(esc, "\x1b[<") {
		return false
	}
	final := esc[len(esc)-1]
	if final != 'm' && final != 'M' {
		return false
	}
	args, ok := ansi.SplitParams(esc[3 : len(esc)-1])
	if !ok || len(args) != 3 {
		return false
	}
	info, x, y := args[0], args[1]-1, args[2]-1
	dx, dy := x-d.lastX, y-d.lastY
	d.lastX, d.lastY = x, y

	button := sgrButtons[info%4]
	var typ MouseEventType
	switch {
	case info&64 != 0:
		if info&1 != 0 {
			typ = ScrollDown
		} else {
			typ = ScrollUp
		}
		button = NoButton
	case info&32 != 0:
		typ = MouseMove
	case final == 'm':
		typ = MouseUp
	case button == NoButton:
		typ = MouseMove
	default:
		typ = MouseDown
	}

	d.events = append(d.events, MouseEvent{
		Pos:    ansi.Pt(x, y),
		Button: button,
		Type:   typ,
		Alt:    info&8 != 0,
		Ctrl:   info&16 != 0,
		Shift:  info&4 != 0,
		DX:     dx,
		DY:     dy,
	})
	return true
}

// decodeReport interprets esc as a reply to an outstanding device status
// report request: cursor position, OSC color, primary device attributes,
// or pixel geometry.
func decodeReport(esc string) (Event, bool) {
	// Cursor position: ESC [ row ; col R.
	if strings.HasPrefix(esc, ansi.CSI) && strings.HasSuffix(esc, "R") {
		if args, ok := ansi.SplitParams(esc[2 : len(esc)-1]); ok && len(args) == 2 {
			return CursorPositionResponseEvent{Pos: ansi.Pt(args[1]-1, args[0]-1)}, true
		}
	}
	// Color: ESC ] 10|11 ; rgb:hhhh/hhhh/hhhh ST.
	if strings.HasPrefix(esc, "\x1b]1") && strings.HasSuffix(esc, ansi.ST) {
		body := esc[3 : len(esc)-len(ansi.ST)]
		if len(body) > 1 && (body[0] == '0' || body[0] == '1') && body[1] == ';' {
			if c, ok := ansi.DecodeXTermColor(body[2:]); ok {
				kind := ForegroundColor
				if body[0] == '1' {
					kind = BackgroundColor
				}
				return ColorReportEvent{Kind: kind, Color: c}, true
			}
		}
	}
	// Primary device attributes: ESC [ ? n ; ... c.
	if strings.HasPrefix(esc, "\x1b[?") && strings.HasSuffix(esc, "c") {
		if args, ok := ansi.SplitParams(esc[3 : len(esc)-1]); ok {
			attrs := append([]int(nil), args...)
			sort.Ints(attrs)
			return DeviceAttributesReportEvent{Attributes: attrs}, true
		}
	}
	// Pixel geometry: ESC [ 4|6 ; height ; width t.
	if strings.HasPrefix(esc, ansi.CSI) && strings.HasSuffix(esc, "t") {
		if args, ok := ansi.SplitParams(esc[2 : len(esc)-1]); ok && len(args) == 3 &&
			(args[0] == 4 || args[0] == 6) {
			kind := TerminalGeometry
			if args[0] == 6 {
				kind = CellGeometry
			}
			return PixelGeometryReportEvent{
				Kind:     kind,
				Geometry: ansi.Size{Width: args[2], Height: args[1]},
			}, true
		}
	}
	return nil, false
}
