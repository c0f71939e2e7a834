package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mathdefenders/internal/adapters"
	"mathdefenders/internal/domain/metadata"
)

type MongoMetadataStorage struct {
	adapter *adapters.AdapterMongo
}

func NewMongoMetadataStorage(adapter *adapters.AdapterMongo) *MongoMetadataStorage {
	return &MongoMetadataStorage{adapter: adapter}
}

func (m *MongoMetadataStorage) UsersRegistered(ctx context.Context) (int64, error) {
	collection := m.adapter.Database.Collection(adapters.CollectionMetadata)
	filter := bson.D{{Key: "documentIsMetadata", Value: true}}

	var doc metadata.Metadata
	err := collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// pre-seeded in normal deployments; an empty store counts zero
			return 0, nil
		}
		return 0, fmt.Errorf("metadata lookup failed: %w", err)
	}
	return doc.UsersRegistered, nil
}
