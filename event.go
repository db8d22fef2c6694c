package vtio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jcorbin/vtio/ansi"
)

// Event is a terminal input event. The set of implementations is closed;
// consumers dispatch with a type switch over the variants defined in this
// package. All variants are immutable values, and the order of events
// within a batch matches the arrival order of the underlying bytes.
type Event interface {
	fmt.Stringer
	event()
}

// MouseButton identifies which button a mouse event concerns.
type MouseButton uint8

// Mouse buttons.
const (
	NoButton MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseMiddle:
		return "middle"
	case MouseRight:
		return "right"
	default:
		return "no_button"
	}
}

// MouseEventType classifies a mouse event.
type MouseEventType uint8

// Mouse event types.
const (
	MouseDown MouseEventType = iota
	MouseUp
	MouseMove
	ScrollDown
	ScrollUp
)

func (t MouseEventType) String() string {
	switch t {
	case MouseDown:
		return "mouse_down"
	case MouseUp:
		return "mouse_up"
	case ScrollDown:
		return "scroll_down"
	case ScrollUp:
		return "scroll_up"
	default:
		return "mouse_move"
	}
}

// ColorKind distinguishes which terminal color a ColorReportEvent reports.
type ColorKind uint8

// Color report kinds.
const (
	ForegroundColor ColorKind = iota
	BackgroundColor
)

func (k ColorKind) String() string {
	if k == BackgroundColor {
		return "bg"
	}
	return "fg"
}

// GeometryKind distinguishes which extent a PixelGeometryReportEvent
// reports.
type GeometryKind uint8

// Pixel geometry report kinds.
const (
	CellGeometry GeometryKind = iota
	TerminalGeometry
)

func (k GeometryKind) String() string {
	if k == TerminalGeometry {
		return "terminal"
	}
	return "cell"
}

// KeyEvent reports a key press with its modifier state.
type KeyEvent struct {
	Key   Key
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (ev KeyEvent) event() {}

func (ev KeyEvent) String() string {
	var sb strings.Builder
	sb.WriteString("KeyEvent(")
	if ev.Ctrl {
		sb.WriteString("ctrl+")
	}
	if ev.Alt {
		sb.WriteString("alt+")
	}
	if ev.Shift {
		sb.WriteString("shift+")
	}
	sb.WriteString(ev.Key.String())
	sb.WriteByte(')')
	return sb.String()
}

// MouseEvent reports a mouse action. DX and DY are the deltas from the
// previously reported mouse position. NClicks counts consecutive
// same-button down events; the core leaves it 0, click-counting policy
// belongs to layers above.
type MouseEvent struct {
	Pos     ansi.Point
	Button  MouseButton
	Type    MouseEventType
	Alt     bool
	Ctrl    bool
	Shift   bool
	DX, DY  int
	NClicks int
}

func (ev MouseEvent) event() {}

func (ev MouseEvent) String() string {
	return fmt.Sprintf("MouseEvent(%s %s @%s d(%d,%d))",
		ev.Button, ev.Type, ev.Pos, ev.DX, ev.DY)
}

// PasteEvent carries the content of one bracketed paste.
type PasteEvent struct {
	Paste string
}

func (ev PasteEvent) event() {}

func (ev PasteEvent) String() string { return fmt.Sprintf("PasteEvent(%q)", ev.Paste) }

// FocusEvent reports the terminal gaining (In) or losing focus.
type FocusEvent struct {
	In bool
}

func (ev FocusEvent) event() {}

func (ev FocusEvent) String() string {
	if ev.In {
		return "FocusEvent(in)"
	}
	return "FocusEvent(out)"
}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Size ansi.Size
}

func (ev ResizeEvent) event() {}

func (ev ResizeEvent) String() string { return fmt.Sprintf("ResizeEvent(%s)", ev.Size) }

// CursorPositionResponseEvent is the reply to RequestCursorPosition.
type CursorPositionResponseEvent struct {
	Pos ansi.Point
}

func (ev CursorPositionResponseEvent) event() {}

func (ev CursorPositionResponseEvent) String() string {
	return fmt.Sprintf("CursorPositionResponseEvent(%s)", ev.Pos)
}

// ColorReportEvent is the reply to RequestForegroundColor or
// RequestBackgroundColor.
type ColorReportEvent struct {
	Kind  ColorKind
	Color ansi.RGB
}

func (ev ColorReportEvent) event() {}

func (ev ColorReportEvent) String() string {
	return fmt.Sprintf("ColorReportEvent(%s %s)", ev.Kind, ev.Color)
}

// DeviceAttributesReportEvent is the reply to RequestDeviceAttributes;
// Attributes holds the reported attribute set in ascending order.
type DeviceAttributesReportEvent struct {
	Attributes []int
}

func (ev DeviceAttributesReportEvent) event() {}

func (ev DeviceAttributesReportEvent) String() string {
	parts := make([]string, len(ev.Attributes))
	for i, a := range ev.Attributes {
		parts[i] = strconv.Itoa(a)
	}
	return "DeviceAttributesReportEvent(" + strings.Join(parts, ";") + ")"
}

// PixelGeometryReportEvent is the reply to RequestCellGeometry or
// RequestTerminalGeometry, in pixels.
type PixelGeometryReportEvent struct {
	Kind     GeometryKind
	Geometry ansi.Size
}

func (ev PixelGeometryReportEvent) event() {}

func (ev PixelGeometryReportEvent) String() string {
	return fmt.Sprintf("PixelGeometryReportEvent(%s %s)", ev.Kind, ev.Geometry)
}

// UnknownEscapeSequenceEvent preserves an escape sequence that matched no
// rule, for diagnostics; it is never fatal, parsing continues after it.
type UnknownEscapeSequenceEvent struct {
	Escape string
}

func (ev UnknownEscapeSequenceEvent) event() {}

func (ev UnknownEscapeSequenceEvent) String() string {
	return fmt.Sprintf("UnknownEscapeSequence(%q)", ev.Escape)
}
