package entity

import "fmt"

// Coordinate is a 1-indexed (row, column) position on a board.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// IsOutOfBounds reports whether either axis falls outside [1, size].
func (that Coordinate) IsOutOfBounds(size int) bool {
	return that.Row < 1 || that.Row > size || that.Col < 1 || that.Col > size
}

func (that Coordinate) Offset(dRow, dCol int) Coordinate {
	return Coordinate{Row: that.Row + dRow, Col: that.Col + dCol}
}

// Neighbourhood returns the cell itself and its 8 neighbours, clamped to the board.
func (that Coordinate) Neighbourhood(size int) []Coordinate {
	cells := make([]Coordinate, 0, 9)
	for dRow := -1; dRow <= 1; dRow++ {
		for dCol := -1; dCol <= 1; dCol++ {
			cell := that.Offset(dRow, dCol)
			if !cell.IsOutOfBounds(size) {
				cells = append(cells, cell)
			}
		}
	}

	return cells
}

func (that Coordinate) String() string {
	return fmt.Sprintf("%d, %d", that.Row, that.Col)
}
