package apperror

import "errors"

// placement time.
var (
	ErrCannotPlace     = errors.New("no suitable space for ship")
	ErrBuildExhausted  = errors.New("placement attempts exhausted")
	ErrFleetDoesNotFit = errors.New("fleet does not fit the board")
	ErrBoardSealed     = errors.New("board is already in play")
	ErrFleetIncomplete = errors.New("fleet is not fully placed")
)

// turn time.
var (
	ErrOutOfBounds     = errors.New("shot outside board")
	ErrAlreadyTargeted = errors.New("this cell already shot")
	ErrInvalidInput    = errors.New("invalid coordinates specified")
)

var ErrInvalidConfig = errors.New("invalid configuration")

// IsRecoverable reports whether a turn-time error should re-prompt the same actor.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrOutOfBounds) ||
		errors.Is(err, ErrAlreadyTargeted) ||
		errors.Is(err, ErrInvalidInput)
}

// UserMessage - one line explanation shown to the player for a recoverable error.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrOutOfBounds):
		return "Shot outside board!"
	case errors.Is(err, ErrAlreadyTargeted):
		return "This cell already shot!"
	case errors.Is(err, ErrInvalidInput):
		return "Invalid coordinates specified!"
	default:
		return "Something went wrong, try again!"
	}
}
