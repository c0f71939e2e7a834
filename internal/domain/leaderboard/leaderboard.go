package leaderboard

import (
	"fmt"

	"mathdefenders/internal/domain/user"
)

// Mode is a singleplayer game mode with its own leaderboard.
type Mode string

const (
	ModeEasy     Mode = "easy"
	ModeStandard Mode = "standard"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeEasy, ModeStandard:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown game mode %q", s)
}

// PlayerScore is a user's qualifying best score for one mode, as read
// off the users collection.
type PlayerScore struct {
	PlayerID  string
	Username  string
	BestScore user.BestScore
}

// Entry is one row of a ranked leaderboard. Rank is positional,
// 1-based, dense over the truncated list.
type Entry struct {
	Rank       int            `json:"rank"`
	PlayerID   string         `json:"playerID"`
	Username   string         `json:"username"`
	Statistics user.BestScore `json:"statistics"`
}
