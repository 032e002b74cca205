package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/seabattle/internal/apperror"
	"github.com/rocketscienceinc/seabattle/internal/entity"
)

const HumanName = "User"

type lineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

// HumanActor reads "row col" from the operator.
type HumanActor struct {
	input lineReader
}

func NewHumanActor(input lineReader) *HumanActor {
	return &HumanActor{
		input: input,
	}
}

func (that *HumanActor) Name() string {
	return HumanName
}

// SelectTarget returns ErrInvalidInput for malformed lines; errors from the input itself
// (closed stream, canceled context) are passed through.
func (that *HumanActor) SelectTarget(ctx context.Context) (entity.Coordinate, error) {
	line, err := that.input.ReadLine(ctx)
	if err != nil {
		return entity.Coordinate{}, fmt.Errorf("failed to read input: %w", err)
	}

	return ParseCoordinate(line)
}

// ParseCoordinate accepts exactly two non-negative integers separated by whitespace.
// Range checks are left to the board.
func ParseCoordinate(line string) (entity.Coordinate, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return entity.Coordinate{}, fmt.Errorf("%w: expected 2 values, got %d", apperror.ErrInvalidInput, len(tokens))
	}

	row, err := parseAxis(tokens[0])
	if err != nil {
		return entity.Coordinate{}, err
	}

	col, err := parseAxis(tokens[1])
	if err != nil {
		return entity.Coordinate{}, err
	}

	return entity.NewCoordinate(row, col), nil
}

func parseAxis(token string) (int, error) {
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q is not a number", apperror.ErrInvalidInput, token)
		}
	}

	value, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", apperror.ErrInvalidInput, token, err)
	}

	return value, nil
}
