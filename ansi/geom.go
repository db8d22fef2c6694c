package ansi

import "fmt"

// Point is a screen position relative to a 0,0 column,row origin.
type Point struct {
	X, Y int
}

// Pt constructs a Point from x,y component values.
func Pt(x, y int) Point { return Point{x, y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Add returns the vector sum p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector difference p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Size is a rectangular extent, in cells or in pixels depending on context.
type Size struct {
	Width, Height int
}

// Sz constructs a Size from width,height component values.
func Sz(w, h int) Size { return Size{w, h} }

func (sz Size) String() string { return fmt.Sprintf("%dx%d", sz.Width, sz.Height) }

// Empty returns true if the size spans no cells.
func (sz Size) Empty() bool { return sz.Width <= 0 || sz.Height <= 0 }
