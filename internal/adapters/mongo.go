package adapters

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mathdefenders/internal/bootstrap"
)

const (
	CollectionUsers                 = "users"
	CollectionPendingUsers          = "pendingUsers"
	CollectionPendingPasswordResets = "pendingPasswordResets"
	CollectionMetadata              = "metadata"
)

type AdapterMongo struct {
	Client   *mongo.Client
	Database *mongo.Database
	cfg      *bootstrap.Config
}

func NewAdapterMongo(cfg *bootstrap.Config) *AdapterMongo {
	return &AdapterMongo{
		cfg: cfg,
	}
}

func (a *AdapterMongo) Init(ctx context.Context) error {
	clientOpts := options.Client().ApplyURI(a.cfg.MongoURI)

	ctxConnect, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctxConnect, clientOpts)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctxConnect, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	a.Client = client
	a.Database = client.Database("mathematicalBaseDefenders")

	if err := a.ensureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}
	return nil
}

// ensureIndexes creates the indexes the durability model depends on:
// TTL expiry on both pending collections and uniqueness on username
// and e-mail for confirmed users.
func (a *AdapterMongo) ensureIndexes(ctx context.Context) error {
	ttl := mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	for _, name := range []string{CollectionPendingUsers, CollectionPendingPasswordResets} {
		if _, err := a.Database.Collection(name).Indexes().CreateOne(ctx, ttl); err != nil {
			return err
		}
	}

	unique := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "usernameInAllLowercase", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "emailAddress", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := a.Database.Collection(CollectionUsers).Indexes().CreateMany(ctx, unique)
	return err
}

func (a *AdapterMongo) Close(ctx context.Context) error {
	if a.Client != nil {
		return a.Client.Disconnect(ctx)
	}
	return nil
}
