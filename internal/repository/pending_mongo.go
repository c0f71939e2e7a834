package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mathdefenders/internal/adapters"
	"mathdefenders/internal/domain/pending"
	"mathdefenders/internal/domain/user"
	errs "mathdefenders/internal/errors"
)

type MongoPendingUserStorage struct {
	adapter *adapters.AdapterMongo
}

func NewMongoPendingUserStorage(adapter *adapters.AdapterMongo) *MongoPendingUserStorage {
	return &MongoPendingUserStorage{adapter: adapter}
}

func (m *MongoPendingUserStorage) pendingUsers() *mongo.Collection {
	return m.adapter.Database.Collection(adapters.CollectionPendingUsers)
}

func (m *MongoPendingUserStorage) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := m.pendingUsers().CountDocuments(ctx, bson.D{{Key: "desiredEmail", Value: email}})
	if err != nil {
		return false, fmt.Errorf("pending e-mail existence check failed: %w", err)
	}
	return count > 0, nil
}

func (m *MongoPendingUserStorage) UsernameExists(ctx context.Context, usernameLower string) (bool, error) {
	count, err := m.pendingUsers().CountDocuments(ctx, bson.D{{Key: "desiredUsernameInAllLowercase", Value: usernameLower}})
	if err != nil {
		return false, fmt.Errorf("pending username existence check failed: %w", err)
	}
	return count > 0, nil
}

func (m *MongoPendingUserStorage) Create(ctx context.Context, p pending.PendingUser) error {
	if _, err := m.pendingUsers().InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create pending user: %w", err)
	}
	return nil
}

func (m *MongoPendingUserStorage) FindByEmailAndCodeHash(ctx context.Context, email, codeHash string) (pending.PendingUser, error) {
	filter := bson.D{
		{Key: "desiredEmail", Value: email},
		{Key: "emailConfirmationCodeHash", Value: codeHash},
	}
	var result pending.PendingUser
	err := m.pendingUsers().FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return pending.PendingUser{}, errs.ErrRecordNotFound
		}
		return pending.PendingUser{}, fmt.Errorf("pending user lookup failed: %w", err)
	}
	return result, nil
}

// Promote turns a pending registration into a confirmed account:
// delete the pending record, insert the user with zeroed statistics,
// increment the registered-user counter. The three writes run in one
// transaction so a crash cannot leave them partially applied.
func (m *MongoPendingUserStorage) Promote(ctx context.Context, p pending.PendingUser) error {
	session, err := m.adapter.Client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := m.pendingUsers().DeleteOne(sc, bson.D{{Key: "_id", Value: p.ID}}); err != nil {
			return nil, err
		}

		newUser := user.User{
			Username:               p.DesiredUsername,
			UsernameInAllLowercase: p.DesiredUsernameInAllLowercase,
			EmailAddress:           p.DesiredEmail,
			HashedPassword:         p.HashedPassword,
			CreationDateAndTime:    time.Now(),
		}
		if _, err := m.adapter.Database.Collection(adapters.CollectionUsers).InsertOne(sc, newUser); err != nil {
			return nil, err
		}

		counter := m.adapter.Database.Collection(adapters.CollectionMetadata)
		filter := bson.D{{Key: "documentIsMetadata", Value: true}}
		update := bson.D{{Key: "$inc", Value: bson.D{{Key: "usersRegistered", Value: 1}}}}
		if _, err := counter.UpdateOne(sc, filter, update); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to promote pending user: %w", err)
	}
	return nil
}

type MongoPasswordResetStorage struct {
	adapter *adapters.AdapterMongo
}

func NewMongoPasswordResetStorage(adapter *adapters.AdapterMongo) *MongoPasswordResetStorage {
	return &MongoPasswordResetStorage{adapter: adapter}
}

func (m *MongoPasswordResetStorage) resets() *mongo.Collection {
	return m.adapter.Database.Collection(adapters.CollectionPendingPasswordResets)
}

func (m *MongoPasswordResetStorage) ExistsForEmail(ctx context.Context, email string) (bool, error) {
	count, err := m.resets().CountDocuments(ctx, bson.D{{Key: "emailAddress", Value: email}})
	if err != nil {
		return false, fmt.Errorf("pending reset existence check failed: %w", err)
	}
	return count > 0, nil
}

func (m *MongoPasswordResetStorage) Create(ctx context.Context, rec pending.PendingPasswordReset) error {
	if _, err := m.resets().InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to create pending password reset: %w", err)
	}
	return nil
}

func (m *MongoPasswordResetStorage) FindByEmailAndCodeHash(ctx context.Context, email, codeHash string) (pending.PendingPasswordReset, error) {
	filter := bson.D{
		{Key: "emailAddress", Value: email},
		{Key: "passwordResetConfirmationCodeHash", Value: codeHash},
	}
	var result pending.PendingPasswordReset
	err := m.resets().FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return pending.PendingPasswordReset{}, errs.ErrRecordNotFound
		}
		return pending.PendingPasswordReset{}, fmt.Errorf("pending reset lookup failed: %w", err)
	}
	return result, nil
}

// Complete applies a confirmed password change: update the user's
// hashed password and delete the reset record, transactionally.
func (m *MongoPasswordResetStorage) Complete(ctx context.Context, rec pending.PendingPasswordReset, newHashedPassword string) error {
	session, err := m.adapter.Client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		users := m.adapter.Database.Collection(adapters.CollectionUsers)
		filter := bson.D{{Key: "emailAddress", Value: rec.EmailAddress}}
		update := bson.D{{Key: "$set", Value: bson.D{{Key: "hashedPassword", Value: newHashedPassword}}}}
		if _, err := users.UpdateOne(sc, filter, update); err != nil {
			return nil, err
		}
		if _, err := m.resets().DeleteOne(sc, bson.D{{Key: "_id", Value: rec.ID}}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to complete password reset: %w", err)
	}
	return nil
}
