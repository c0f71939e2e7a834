package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mathdefenders/internal/adapters"
	"mathdefenders/internal/domain/leaderboard"
	"mathdefenders/internal/domain/user"
	errs "mathdefenders/internal/errors"
)

type MongoUserStorage struct {
	adapter *adapters.AdapterMongo
}

func NewMongoUserStorage(adapter *adapters.AdapterMongo) *MongoUserStorage {
	return &MongoUserStorage{adapter: adapter}
}

func (m *MongoUserStorage) users() *mongo.Collection {
	return m.adapter.Database.Collection(adapters.CollectionUsers)
}

func (m *MongoUserStorage) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return m.findOne(ctx, bson.D{{Key: "usernameInAllLowercase", Value: strings.ToLower(username)}})
}

func (m *MongoUserStorage) GetByID(ctx context.Context, id string) (user.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user.User{}, errs.ErrUserNotFound
	}
	return m.findOne(ctx, bson.D{{Key: "_id", Value: objectID}})
}

func (m *MongoUserStorage) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return m.findOne(ctx, bson.D{{Key: "emailAddress", Value: strings.ToLower(email)}})
}

func (m *MongoUserStorage) findOne(ctx context.Context, filter bson.D) (user.User, error) {
	var result user.User
	err := m.users().FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, errs.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("user lookup failed: %w", err)
	}
	return result, nil
}

func (m *MongoUserStorage) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := m.users().CountDocuments(ctx, bson.D{{Key: "emailAddress", Value: email}})
	if err != nil {
		return false, fmt.Errorf("e-mail existence check failed: %w", err)
	}
	return count > 0, nil
}

func (m *MongoUserStorage) UsernameExists(ctx context.Context, usernameLower string) (bool, error) {
	count, err := m.users().CountDocuments(ctx, bson.D{{Key: "usernameInAllLowercase", Value: usernameLower}})
	if err != nil {
		return false, fmt.Errorf("username existence check failed: %w", err)
	}
	return count > 0, nil
}

// bestScoreField maps a game mode to its sub-record on the statistics
// document.
func bestScoreField(mode leaderboard.Mode) string {
	if mode == leaderboard.ModeStandard {
		return "statistics.personalBestScoreOnStandardSingleplayerMode"
	}
	return "statistics.personalBestScoreOnEasySingleplayerMode"
}

// PlayersWithBestScore returns every user holding a qualifying best
// score for the mode. Ranking happens in memory at the usecase layer.
func (m *MongoUserStorage) PlayersWithBestScore(ctx context.Context, mode leaderboard.Mode) ([]leaderboard.PlayerScore, error) {
	filter := bson.D{{Key: bestScoreField(mode), Value: bson.D{{Key: "$ne", Value: nil}}}}
	cursor, err := m.users().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("best-score scan failed: %w", err)
	}
	defer cursor.Close(ctx)

	var scores []leaderboard.PlayerScore
	for cursor.Next(ctx) {
		var u user.User
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("best-score decode failed: %w", err)
		}
		best := u.Statistics.PersonalBestEasyMode
		if mode == leaderboard.ModeStandard {
			best = u.Statistics.PersonalBestStdMode
		}
		if best == nil {
			continue
		}
		scores = append(scores, leaderboard.PlayerScore{
			PlayerID:  u.ID.Hex(),
			Username:  u.Username,
			BestScore: *best,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("best-score scan failed: %w", err)
	}
	return scores, nil
}
