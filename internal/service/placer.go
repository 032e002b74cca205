package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"

	"github.com/rocketscienceinc/seabattle/internal/apperror"
	"github.com/rocketscienceinc/seabattle/internal/entity"
)

const (
	DefaultRetryBudget   = 2000
	DefaultHeadSampleMin = 0
)

// feasibilitySearchBudget caps the placements CheckFeasible tries before giving up.
const feasibilitySearchBudget = 1_000_000

var errSearchBudget = errors.New("search budget exhausted")

type PlacerOptions struct {
	Size          int
	Fleet         []int
	RetryBudget   int
	HeadSampleMin int
}

// FleetPlacer builds boards with a randomly placed fleet.
type FleetPlacer struct {
	logger *slog.Logger
	rng    *rand.Rand
	opts   PlacerOptions

	searchBudget int
}

func NewFleetPlacer(logger *slog.Logger, rng *rand.Rand, opts PlacerOptions) *FleetPlacer {
	return &FleetPlacer{
		logger: logger.With("component", "placer"),
		rng:    rng,
		opts:   opts,

		searchBudget: feasibilitySearchBudget,
	}
}

// RandomBoard builds boards until one succeeds. Exhausted builds are discarded and retried
// without limit; a fleet that can never fit fails up front with ErrFleetDoesNotFit.
func (that *FleetPlacer) RandomBoard(ctx context.Context, concealed bool) (*entity.Board, error) {
	log := that.logger.With("method", "RandomBoard")

	if err := that.CheckFeasible(); err != nil {
		return nil, err
	}

	for builds := 1; ; builds++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("board build canceled: %w", err)
		}

		board, err := that.BuildBoard(concealed)
		if errors.Is(err, apperror.ErrBuildExhausted) {
			log.Debug("discarding board", "build", builds)
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to build board: %w", err)
		}

		log.Debug("board ready", "builds", builds)

		return board, nil
	}
}

// BuildBoard makes a single build attempt sharing one attempt counter across the whole fleet.
func (that *FleetPlacer) BuildBoard(concealed bool) (*entity.Board, error) {
	log := that.logger.With("method", "BuildBoard")

	board := entity.NewBoard(that.opts.Size, len(that.opts.Fleet), concealed)

	attempts := 0
	for _, length := range that.opts.Fleet {
		for {
			attempts++
			if attempts > that.opts.RetryBudget {
				return nil, fmt.Errorf("%w: %d attempts", apperror.ErrBuildExhausted, that.opts.RetryBudget)
			}

			err := board.PlaceShip(that.randomShip(length))
			if err == nil {
				break
			}

			if !errors.Is(err, apperror.ErrCannotPlace) {
				return nil, fmt.Errorf("failed to place ship: %w", err)
			}

			log.Debug("trying to create ship one more time", "length", length, "attempt", attempts)
		}
	}

	if err := board.Seal(); err != nil {
		return nil, fmt.Errorf("failed to seal board: %w", err)
	}

	return board, nil
}

func (that *FleetPlacer) randomShip(length int) *entity.Ship {
	head := entity.NewCoordinate(that.sampleAxis(), that.sampleAxis())

	orientation := entity.Horizontal
	if that.rng.Intn(2) == 0 {
		orientation = entity.Vertical
	}

	return entity.NewShip(head, orientation, length)
}

func (that *FleetPlacer) sampleAxis() int {
	low, high := that.opts.HeadSampleMin, that.opts.Size
	return low + that.rng.Intn(high-low+1)
}

// CheckFeasible fails with ErrFleetDoesNotFit when no arrangement of the fleet exists,
// the search for one runs out of steps, or the sampling range can never produce a valid head.
func (that *FleetPlacer) CheckFeasible() error {
	size := that.opts.Size

	if size < 1 || that.opts.RetryBudget < 1 || that.opts.HeadSampleMin > size {
		return fmt.Errorf("%w: size %d, budget %d, head sample min %d",
			apperror.ErrInvalidConfig, size, that.opts.RetryBudget, that.opts.HeadSampleMin)
	}

	// one cell of each ship gives a set of cells no two of which touch
	if maxShips := ((size + 1) / 2) * ((size + 1) / 2); len(that.opts.Fleet) > maxShips {
		return fmt.Errorf("%w: %d ships, a %dx%d board holds at most %d",
			apperror.ErrFleetDoesNotFit, len(that.opts.Fleet), size, size, maxShips)
	}

	// ships padded one cell right and down never overlap inside a (size+1)^2 square
	area := 0
	for _, length := range that.opts.Fleet {
		if length < 1 || length > size {
			return fmt.Errorf("%w: ship of length %d on a %dx%d board", apperror.ErrFleetDoesNotFit, length, size, size)
		}
		area += 2 * (length + 1)
	}

	if area > (size+1)*(size+1) {
		return fmt.Errorf("%w: fleet needs %d padded cells, board offers %d", apperror.ErrFleetDoesNotFit, area, (size+1)*(size+1))
	}

	fleet := slices.Clone(that.opts.Fleet)
	slices.Sort(fleet)
	slices.Reverse(fleet)

	search := newFitSearch(size, max(that.opts.HeadSampleMin, 1), that.searchBudget)

	fits, err := search.fits(fleet, 0)
	if err != nil {
		return fmt.Errorf("%w: no arrangement found within %d steps", apperror.ErrFleetDoesNotFit, that.searchBudget)
	}

	if !fits {
		return fmt.Errorf("%w: no arrangement exists", apperror.ErrFleetDoesNotFit)
	}

	that.logger.Debug("fleet fits", "steps", search.steps)

	return nil
}

// fitSearch backtracks over placements with heads in [low, size]. reserved counts, per
// cell, the placed ships whose neighbourhood covers it.
type fitSearch struct {
	size     int
	low      int
	span     int
	budget   int
	steps    int
	reserved [][]int
}

func newFitSearch(size, low, budget int) *fitSearch {
	reserved := make([][]int, size+1)
	for row := range reserved {
		reserved[row] = make([]int, size+1)
	}

	return &fitSearch{
		size:     size,
		low:      low,
		span:     size - low + 1,
		budget:   budget,
		reserved: reserved,
	}
}

// fits places fleet[0] at position start or later. Ships of equal length go in
// increasing position order, so every set of positions is tried once.
func (that *fitSearch) fits(fleet []int, start int) (bool, error) {
	if len(fleet) == 0 {
		return true, nil
	}

	for position := start; position < that.span*that.span*2; position++ {
		that.steps++
		if that.steps > that.budget {
			return false, errSearchBudget
		}

		ship := that.shipAt(position, fleet[0])
		if ship == nil || !that.isFree(ship) {
			continue
		}

		next := 0
		if len(fleet) > 1 && fleet[1] == fleet[0] {
			next = position + 1
		}

		that.reserve(ship, 1)
		ok, err := that.fits(fleet[1:], next)
		that.reserve(ship, -1)

		if ok || err != nil {
			return ok, err
		}
	}

	return false, nil
}

// shipAt decodes a position index as head row, head column, orientation.
// Single cells have no vertical variant.
func (that *fitSearch) shipAt(position, length int) *entity.Ship {
	orientation := entity.Horizontal
	if position%2 == 1 {
		if length == 1 {
			return nil
		}
		orientation = entity.Vertical
	}

	cell := position / 2
	head := entity.NewCoordinate(that.low+cell/that.span, that.low+cell%that.span)

	return entity.NewShip(head, orientation, length)
}

func (that *fitSearch) isFree(ship *entity.Ship) bool {
	for _, cell := range ship.Cells() {
		if cell.IsOutOfBounds(that.size) || that.reserved[cell.Row][cell.Col] > 0 {
			return false
		}
	}

	return true
}

func (that *fitSearch) reserve(ship *entity.Ship, delta int) {
	for _, cell := range ship.Cells() {
		for _, near := range cell.Neighbourhood(that.size) {
			that.reserved[near.Row][near.Col] += delta
		}
	}
}
