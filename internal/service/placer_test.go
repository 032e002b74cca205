package service

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/rocketscienceinc/seabattle/internal/apperror"
	"github.com/rocketscienceinc/seabattle/internal/entity"
)

func newTestPlacer(seed int64, opts PlacerOptions) *FleetPlacer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewFleetPlacer(logger, rand.New(rand.NewSource(seed)), opts)
}

func referenceOptions() PlacerOptions {
	return PlacerOptions{
		Size:          6,
		Fleet:         entity.DefaultFleet,
		RetryBudget:   DefaultRetryBudget,
		HeadSampleMin: DefaultHeadSampleMin,
	}
}

func TestFleetPlacer_RandomBoard(t *testing.T) {
	t.Run("Places the whole reference fleet", func(t *testing.T) {
		// Given: a placer with the reference settings
		placer := newTestPlacer(42, referenceOptions())

		// When: building a board
		board, err := placer.RandomBoard(context.Background(), true)

		// Then: every ship is placed in manifest order and the board is ready for play
		require.NoError(t, err)
		require.Len(t, board.Ships, len(entity.DefaultFleet))
		for i, ship := range board.Ships {
			assert.Equal(t, entity.DefaultFleet[i], ship.Length)
			assert.Equal(t, ship.Length, ship.RemainingHits)
		}
		assert.Equal(t, len(entity.DefaultFleet), board.FleetAlive)
		assert.True(t, board.Concealed)
		assert.True(t, board.IsSealed())
		assert.Zero(t, board.TargetedCount())
	})

	t.Run("Fleet that cannot fit fails fast", func(t *testing.T) {
		// Given: a fleet far bigger than a 3x3 board
		opts := referenceOptions()
		opts.Size = 3

		// When: building a board
		_, err := newTestPlacer(1, opts).RandomBoard(context.Background(), false)

		// Then: ErrFleetDoesNotFit instead of retrying forever
		require.ErrorIs(t, err, apperror.ErrFleetDoesNotFit)
	})

	t.Run("Canceled context stops the outer retry", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestPlacer(1, referenceOptions()).RandomBoard(ctx, false)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Tiny budget still ends with a board", func(t *testing.T) {
		// Given: a budget that exhausts most builds
		opts := referenceOptions()
		opts.RetryBudget = 40

		// When: building a board
		board, err := newTestPlacer(7, opts).RandomBoard(context.Background(), false)

		// Then: the outer loop keeps discarding boards until one fits
		require.NoError(t, err)
		assert.Len(t, board.Ships, len(entity.DefaultFleet))
	})
}

func TestFleetPlacer_BuildBoard(t *testing.T) {
	t.Run("Exhausted budget is reported as retryable", func(t *testing.T) {
		// Given: a budget smaller than the fleet
		opts := referenceOptions()
		opts.RetryBudget = 3

		// When: building once
		board, err := newTestPlacer(1, opts).BuildBoard(false)

		// Then: ErrBuildExhausted and no board
		require.ErrorIs(t, err, apperror.ErrBuildExhausted)
		assert.Nil(t, board)
	})
}

func TestFleetPlacer_CheckFeasible(t *testing.T) {
	t.Run("Reference settings are feasible", func(t *testing.T) {
		assert.NoError(t, newTestPlacer(1, referenceOptions()).CheckFeasible())
	})

	t.Run("Ship longer than the board", func(t *testing.T) {
		opts := referenceOptions()
		opts.Fleet = []int{7}

		assert.ErrorIs(t, newTestPlacer(1, opts).CheckFeasible(), apperror.ErrFleetDoesNotFit)
	})

	t.Run("Fleet passing the area bound but without an arrangement", func(t *testing.T) {
		// Given: a 3x3 board whose padded area exactly matches the fleet
		opts := referenceOptions()
		opts.Size = 3
		opts.Fleet = []int{2, 2, 1}

		// Then: no arrangement exists
		assert.ErrorIs(t, newTestPlacer(1, opts).CheckFeasible(), apperror.ErrFleetDoesNotFit)
	})

	t.Run("More ships than non-touching cells", func(t *testing.T) {
		// Given: ten single-cell ships on a board that holds nine apart
		opts := referenceOptions()
		opts.Fleet = []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}

		// When: checking feasibility
		done := make(chan error, 1)
		go func() { done <- newTestPlacer(1, opts).CheckFeasible() }()

		// Then: it answers at once
		select {
		case err := <-done:
			assert.ErrorIs(t, err, apperror.ErrFleetDoesNotFit)
		case <-time.After(2 * time.Second):
			t.Fatal("CheckFeasible did not return")
		}
	})

	t.Run("Nine single-cell ships fit", func(t *testing.T) {
		opts := referenceOptions()
		opts.Fleet = []int{1, 1, 1, 1, 1, 1, 1, 1, 1}

		assert.NoError(t, newTestPlacer(1, opts).CheckFeasible())
	})

	t.Run("Search out of steps", func(t *testing.T) {
		// Given: a fitting fleet on a tight board and a search that may only try a few placements
		opts := referenceOptions()
		opts.Size = 5

		placer := newTestPlacer(1, opts)
		require.NoError(t, placer.CheckFeasible())

		placer.searchBudget = 100

		// When: checking again
		err := placer.CheckFeasible()

		// Then: running out of steps is reported as not fitting
		require.ErrorIs(t, err, apperror.ErrFleetDoesNotFit)
		assert.Contains(t, err.Error(), "within 100 steps")
	})

	t.Run("Sampling range that cannot reach the ship", func(t *testing.T) {
		// Given: heads only sampled on the last row and column
		opts := referenceOptions()
		opts.Fleet = []int{2}
		opts.HeadSampleMin = 6

		// Then: a length-2 ship can never be placed
		assert.ErrorIs(t, newTestPlacer(1, opts).CheckFeasible(), apperror.ErrFleetDoesNotFit)
	})

	t.Run("Sampling range beyond the board", func(t *testing.T) {
		opts := referenceOptions()
		opts.HeadSampleMin = 7

		assert.ErrorIs(t, newTestPlacer(1, opts).CheckFeasible(), apperror.ErrInvalidConfig)
	})
}

func TestFleetPlacer_NoShipsTouch(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		size := rapid.IntRange(6, 10).Draw(t, "size")

		opts := referenceOptions()
		opts.Size = size

		board, err := newTestPlacer(seed, opts).RandomBoard(context.Background(), false)
		require.NoError(t, err)

		owner := make(map[entity.Coordinate]int)
		for i, ship := range board.Ships {
			for _, cell := range ship.Cells() {
				require.False(t, cell.IsOutOfBounds(size), "ship %d leaves the board at %s", i, cell)

				_, taken := owner[cell]
				require.False(t, taken, "ships overlap at %s", cell)
				owner[cell] = i
			}
		}

		for i, ship := range board.Ships {
			for _, cell := range ship.Cells() {
				for _, near := range cell.Neighbourhood(size) {
					other, ok := owner[near]
					require.True(t, !ok || other == i, "ships %d and %d touch at %s", i, other, near)
				}
			}
		}
	})
}
