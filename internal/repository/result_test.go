package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/seabattle/internal/entity"
	"github.com/rocketscienceinc/seabattle/testing/suite"
)

func newResult(id, winner string) *entity.MatchResult {
	return &entity.MatchResult{
		ID:            id,
		Winner:        winner,
		Turns:         41,
		UserShots:     25,
		BotShots:      16,
		UserShipsLeft: 3,
		BotShipsLeft:  0,
		FinishedAt:    time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
	}
}

func TestResultRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	resultRepo := NewResultRepository(st.Storage)

	// Given: a finished match won by the user
	result := newResult("123", entity.WinnerUser)

	// When: CreateOrUpdate is called
	err := resultRepo.CreateOrUpdate(ctx, result)

	// Then: no error should be returned, and result is stored
	require.NoError(t, err)
}

func TestResultRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		resultRepo := NewResultRepository(st.Storage)

		// Given: a stored result
		result := newResult("123", entity.WinnerAutomated)

		err := resultRepo.CreateOrUpdate(ctx, result)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrieved, err := resultRepo.GetByID(ctx, result.ID)

		// Then: the retrieved result should match the saved one
		require.NoError(t, err)
		assert.Equal(t, result, retrieved)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		resultRepo := NewResultRepository(st.Storage)

		// When: GetByID is called with non-existent ID
		retrieved, err := resultRepo.GetByID(ctx, "9999999")

		// Then: an ErrResultNotFound error should be returned
		require.ErrorIs(t, err, ErrResultNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestResultRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		resultRepo := NewResultRepository(st.Storage)

		// Given: a stored result
		result := newResult("123", entity.WinnerUser)
		require.NoError(t, resultRepo.CreateOrUpdate(ctx, result))

		// When: DeleteByID is called with existing ID
		err := resultRepo.DeleteByID(ctx, result.ID)

		// Then: no error, and the result is gone
		require.NoError(t, err)

		_, err = resultRepo.GetByID(ctx, result.ID)
		require.ErrorIs(t, err, ErrResultNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		resultRepo := NewResultRepository(st.Storage)

		// When: DeleteByID is called with non-existent ID
		err := resultRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrResultNotFound error should be returned
		require.ErrorIs(t, err, ErrResultNotFound)
	})
}

func TestResultRepository_Tally(t *testing.T) {
	ctx, st := suite.New(t)

	resultRepo := NewResultRepository(st.Storage)

	// Given: two user wins and one automated win, one of them saved twice
	require.NoError(t, resultRepo.CreateOrUpdate(ctx, newResult("1", entity.WinnerUser)))
	require.NoError(t, resultRepo.CreateOrUpdate(ctx, newResult("2", entity.WinnerUser)))
	require.NoError(t, resultRepo.CreateOrUpdate(ctx, newResult("3", entity.WinnerAutomated)))
	require.NoError(t, resultRepo.CreateOrUpdate(ctx, newResult("3", entity.WinnerAutomated)))

	// When: asking for the tally
	tally, err := resultRepo.Tally(ctx)

	// Then: every match is counted once
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{entity.WinnerUser: 2, entity.WinnerAutomated: 1}, tally)
}
