/*
Package vtio provides a cross-platform terminal I/O core speaking the
VT100/ANSI dialect.

Input is an incremental escape decoder: raw bytes go in through Feed (or
a platform Terminal's background read loop), and key presses, SGR mouse
reports, bracketed pastes, focus changes, and device status reports come
out as Event values. Ambiguous partial sequences, like a lone ESC that
may or may not be the start of something longer, are resolved by a short
timeout rather than blocking.

Output is a buffered encoder: cursor movement, erasing, scrolling, SGR
styling, and terminal mode toggles accumulate as byte sequences until
Flush. Device status report requests flush immediately and register
themselves so that the decoder can route the terminal's reply back as a
typed report event instead of misreading it as keyboard input.

Open returns the Terminal for the current platform, which adds raw mode
control, size queries, resize notification, and a cancelable background
input loop on top of the Vt100 facade.
*/
package vtio
