package disclosure

// Region is a bounded area of the screen.
type Region interface {
	Contains(x, y int) bool
}

// Rect is a rectangle of cells with its origin at the top-left corner.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union is a region made of several regions.
type Union []Region

// Contains reports whether any member contains (x, y).
func (u Union) Contains(x, y int) bool {
	for _, r := range u {
		if r != nil && r.Contains(x, y) {
			return true
		}
	}
	return false
}
