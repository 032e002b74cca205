package entity

import (
	"fmt"

	"github.com/rocketscienceinc/seabattle/internal/apperror"
)

type ShotOutcome string

const (
	OutcomeMiss ShotOutcome = "miss"
	OutcomeHit  ShotOutcome = "hit"
	OutcomeSunk ShotOutcome = "sunk"
)

// CellState is what a renderer needs to know about a single cell.
type CellState int

const (
	CellEmpty CellState = iota
	CellShip
	CellHit
	CellMiss
)

// Board holds one side's fleet and the cells the opponent has already targeted.
// Logical state only: glyphs are derived by the renderer.
type Board struct {
	Size       int
	Ships      []*Ship
	FleetAlive int
	Concealed  bool

	fleetSize int
	sealed    bool
	reserved  map[Coordinate]struct{}
	targeted  map[Coordinate]struct{}
}

// NewBoard creates an empty board expecting fleetSize ships.
func NewBoard(size, fleetSize int, concealed bool) *Board {
	return &Board{
		Size:       size,
		FleetAlive: fleetSize,
		Concealed:  concealed,
		fleetSize:  fleetSize,
		reserved:   make(map[Coordinate]struct{}),
		targeted:   make(map[Coordinate]struct{}),
	}
}

// PlaceShip adds the ship and reserves its cells plus their 8-neighbour contour.
func (that *Board) PlaceShip(ship *Ship) error {
	if that.sealed {
		return apperror.ErrBoardSealed
	}

	for _, cell := range ship.Cells() {
		if cell.IsOutOfBounds(that.Size) {
			return fmt.Errorf("%w: cell %s is outside the board", apperror.ErrCannotPlace, cell)
		}

		if _, ok := that.reserved[cell]; ok {
			return fmt.Errorf("%w: cell %s is reserved", apperror.ErrCannotPlace, cell)
		}
	}

	for _, cell := range ship.Cells() {
		for _, near := range cell.Neighbourhood(that.Size) {
			that.reserved[near] = struct{}{}
		}
	}

	that.Ships = append(that.Ships, ship)

	return nil
}

// Seal ends placement and clears any targeting history.
func (that *Board) Seal() error {
	if len(that.Ships) != that.fleetSize {
		return fmt.Errorf("%w: %d of %d ships placed", apperror.ErrFleetIncomplete, len(that.Ships), that.fleetSize)
	}

	that.targeted = make(map[Coordinate]struct{})
	that.sealed = true

	return nil
}

func (that *Board) IsSealed() bool {
	return that.sealed
}

// ResolveShot records the target and classifies it as miss, hit or sunk.
func (that *Board) ResolveShot(target Coordinate) (ShotOutcome, error) {
	if target.IsOutOfBounds(that.Size) {
		return "", fmt.Errorf("%w: %s", apperror.ErrOutOfBounds, target)
	}

	if that.IsTargeted(target) {
		return "", fmt.Errorf("%w: %s", apperror.ErrAlreadyTargeted, target)
	}

	that.targeted[target] = struct{}{}

	ship := that.ShipAt(target)
	if ship == nil {
		return OutcomeMiss, nil
	}

	ship.RemainingHits--
	if !ship.IsSunk() {
		return OutcomeHit, nil
	}

	that.FleetAlive--

	// the opponent has nothing to gain around a sunk ship
	for _, cell := range ship.Contour(that.Size) {
		that.targeted[cell] = struct{}{}
	}

	return OutcomeSunk, nil
}

func (that *Board) IsTargeted(cell Coordinate) bool {
	_, ok := that.targeted[cell]
	return ok
}

func (that *Board) TargetedCount() int {
	return len(that.targeted)
}

func (that *Board) ShipAt(cell Coordinate) *Ship {
	for _, ship := range that.Ships {
		if ship.Occupies(cell) {
			return ship
		}
	}

	return nil
}

func (that *Board) IsDefeated() bool {
	return that.FleetAlive == 0
}

// CellState classifies a cell for rendering. Reserved buffer cells report as empty.
func (that *Board) CellState(cell Coordinate) CellState {
	occupied := that.ShipAt(cell) != nil

	switch {
	case that.IsTargeted(cell) && occupied:
		return CellHit
	case that.IsTargeted(cell):
		return CellMiss
	case occupied:
		return CellShip
	default:
		return CellEmpty
	}
}
