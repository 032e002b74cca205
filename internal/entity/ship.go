package entity

type Orientation int

const (
	Horizontal Orientation = iota + 1
	Vertical
)

func (that Orientation) String() string {
	switch that {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// DefaultFleet - ship lengths every side places, in placement order.
var DefaultFleet = []int{3, 2, 2, 1, 1, 1, 1}

// Ship is a straight line of cells starting at Head. Cells are derived, never stored.
type Ship struct {
	Head          Coordinate  `json:"head"`
	Orientation   Orientation `json:"orientation"`
	Length        int         `json:"length"`
	RemainingHits int         `json:"remaining_hits"`
}

func NewShip(head Coordinate, orientation Orientation, length int) *Ship {
	return &Ship{
		Head:          head,
		Orientation:   orientation,
		Length:        length,
		RemainingHits: length,
	}
}

// Cells returns the occupied cells in order from the head.
func (that *Ship) Cells() []Coordinate {
	cells := make([]Coordinate, 0, that.Length)
	for i := 0; i < that.Length; i++ {
		if that.Orientation == Vertical {
			cells = append(cells, that.Head.Offset(i, 0))
		} else {
			cells = append(cells, that.Head.Offset(0, i))
		}
	}

	return cells
}

func (that *Ship) Occupies(cell Coordinate) bool {
	for _, occupied := range that.Cells() {
		if occupied == cell {
			return true
		}
	}

	return false
}

func (that *Ship) IsSunk() bool {
	return that.RemainingHits == 0
}

// Contour returns every in-bounds cell adjacent to the ship, diagonals included,
// excluding the ship's own cells.
func (that *Ship) Contour(size int) []Coordinate {
	seen := make(map[Coordinate]struct{})
	for _, cell := range that.Cells() {
		seen[cell] = struct{}{}
	}

	var contour []Coordinate
	for _, cell := range that.Cells() {
		for _, near := range cell.Neighbourhood(size) {
			if _, ok := seen[near]; ok {
				continue
			}
			seen[near] = struct{}{}
			contour = append(contour, near)
		}
	}

	return contour
}
