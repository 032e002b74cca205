package entity

import "time"

type MatchState string

const (
	StateAwaitingUser      MatchState = "awaiting_user"
	StateAwaitingAutomated MatchState = "awaiting_automated"
	StateUserWon           MatchState = "user_won"
	StateAutomatedWon      MatchState = "automated_won"
)

const (
	WinnerUser      = "user"
	WinnerAutomated = "ai"
)

func (that MatchState) IsTerminal() bool {
	return that == StateUserWon || that == StateAutomatedWon
}

// Winner returns the winning side for a terminal state and "" otherwise.
func (that MatchState) Winner() string {
	switch that {
	case StateUserWon:
		return WinnerUser
	case StateAutomatedWon:
		return WinnerAutomated
	default:
		return ""
	}
}

// MatchResult is the summary stored after a finished match.
type MatchResult struct {
	ID            string    `json:"id"`
	Winner        string    `json:"winner"`
	Turns         int       `json:"turns"`
	UserShots     int       `json:"user_shots"`
	BotShots      int       `json:"bot_shots"`
	UserShipsLeft int       `json:"user_ships_left"`
	BotShipsLeft  int       `json:"bot_ships_left"`
	FinishedAt    time.Time `json:"finished_at"`
}
