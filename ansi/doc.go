/*
Package ansi provides the small ANSI/VT100 vocabulary shared by the vtio
decoder and encoder: screen geometry value types, escape sequence framing
and appending helpers, terminal mode toggles, and SGR styling.

Coordinates are 0-based throughout; the wire protocol's 1-based column/row
convention is converted at the codec boundary so that in-process values
always agree.
*/
package ansi
