// Package leaderboard ranks qualifying best scores per game mode. The
// ranking is an in-memory descending sort over every user holding a
// best score for the mode, recomputed on each request; ranks are
// positional, never stored.
package leaderboard

import (
	"context"
	"sort"

	"mathdefenders/internal/domain/leaderboard"
)

// TopN is how many ranked entries a leaderboard exposes.
const TopN = 100

type ScoreStorage interface {
	PlayersWithBestScore(ctx context.Context, mode leaderboard.Mode) ([]leaderboard.PlayerScore, error)
}

type Usecase struct {
	scores ScoreStorage
	topN   int
}

func NewUsecase(scores ScoreStorage) *Usecase {
	return &Usecase{scores: scores, topN: TopN}
}

// GetTop returns the ranked top-N list for a mode. Ties keep their
// discovery order; no secondary sort key is applied.
func (u *Usecase) GetTop(ctx context.Context, mode leaderboard.Mode) ([]leaderboard.Entry, error) {
	players, err := u.scores.PlayersWithBestScore(ctx, mode)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].BestScore.Score > players[j].BestScore.Score
	})
	if len(players) > u.topN {
		players = players[:u.topN]
	}

	entries := make([]leaderboard.Entry, 0, len(players))
	for i, p := range players {
		stats := p.BestScore
		stats.GlobalRank = i + 1
		entries = append(entries, leaderboard.Entry{
			Rank:       i + 1,
			PlayerID:   p.PlayerID,
			Username:   p.Username,
			Statistics: stats,
		})
	}
	return entries, nil
}

// RankForUser reports a player's 1-based position on the mode's top-N
// list, or 0 when the player is not on it.
func (u *Usecase) RankForUser(ctx context.Context, mode leaderboard.Mode, playerID string) (int, error) {
	entries, err := u.GetTop(ctx, mode)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		if e.PlayerID == playerID {
			return e.Rank, nil
		}
	}
	return 0, nil
}
