// Package users assembles the sanitized public profile for a user.
// E-mail address and password hash never leave the storage layer
// through this path.
package users

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"mathdefenders/internal/domain/leaderboard"
	"mathdefenders/internal/domain/user"
	errs "mathdefenders/internal/errors"
	"mathdefenders/internal/rank"
)

type UserStorage interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
}

type Ranker interface {
	RankForUser(ctx context.Context, mode leaderboard.Mode, playerID string) (int, error)
}

type Usecase struct {
	users  UserStorage
	ranker Ranker
	log    *zap.SugaredLogger
}

func NewUsecase(users UserStorage, ranker Ranker, log *zap.SugaredLogger) *Usecase {
	return &Usecase{
		users:  users,
		ranker: ranker,
		log:    log,
	}
}

// Profile is the public view of a user.
type Profile struct {
	ID                  string          `json:"id"`
	Username            string          `json:"username"`
	CreationDateAndTime time.Time       `json:"creationDateAndTime"`
	Statistics          user.Statistics `json:"statistics"`
	Rank                string          `json:"rank"`
	RankColor           string          `json:"rankColor"`
	Level               int             `json:"level"`
	ProgressToNextLevel float64         `json:"progressToNextLevel"`
}

// GetProfile resolves a user by username or by 24-hex identifier and
// returns the sanitized profile with derived rank, level, and global
// leaderboard placements filled in.
func (u *Usecase) GetProfile(ctx context.Context, query string) (Profile, error) {
	found, err := u.lookup(ctx, query)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return Profile{}, errs.ErrUserNotFound
		}
		u.log.Errorw("profile lookup failed", "query", query, "error", err)
		return Profile{}, errs.ErrInternal
	}

	stats := found.Statistics
	if stats.PersonalBestEasyMode != nil {
		r, err := u.ranker.RankForUser(ctx, leaderboard.ModeEasy, found.ID.Hex())
		if err != nil {
			u.log.Errorw("easy-mode rank lookup failed", "error", err)
			return Profile{}, errs.ErrInternal
		}
		best := *stats.PersonalBestEasyMode
		best.GlobalRank = r
		stats.PersonalBestEasyMode = &best
	}
	if stats.PersonalBestStdMode != nil {
		r, err := u.ranker.RankForUser(ctx, leaderboard.ModeStandard, found.ID.Hex())
		if err != nil {
			u.log.Errorw("standard-mode rank lookup failed", "error", err)
			return Profile{}, errs.ErrInternal
		}
		best := *stats.PersonalBestStdMode
		best.GlobalRank = r
		stats.PersonalBestStdMode = &best
	}

	rankName := found.Membership.SpecialRank
	if rankName == "" {
		rankName = rank.CalculateRank(found.Membership)
	}

	return Profile{
		ID:                  found.ID.Hex(),
		Username:            found.Username,
		CreationDateAndTime: found.CreationDateAndTime,
		Statistics:          stats,
		Rank:                rankName,
		RankColor:           rank.RankColor(rankName),
		Level:               rank.Level(stats.TotalExperiencePoints),
		ProgressToNextLevel: rank.ProgressToNextLevel(stats.TotalExperiencePoints),
	}, nil
}

func (u *Usecase) lookup(ctx context.Context, query string) (user.User, error) {
	// usernames cap out at 20 characters, so a 24-hex query can only
	// be an identifier
	if _, err := primitive.ObjectIDFromHex(query); err == nil {
		return u.users.GetByID(ctx, query)
	}
	return u.users.GetByUsername(ctx, query)
}
