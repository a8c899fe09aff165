package database

import (
	"context"
	"log/slog"
	"time"

	"guestgallery/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const imagesCollection = "images"

type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Connect opens the MongoDB client and verifies it with a ping.
func Connect(uri, databaseName string) (*MongoStore, error) {
	connectionString := options.Client().ApplyURI(uri)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectionString)
	if err != nil {
		slog.Error("mongo connect error", "error", err)
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		slog.Error("mongo ping error", "error", err)
		_ = client.Disconnect(ctx)
		return nil, err
	}

	slog.Info("MongoDB connected successfully", "database", databaseName)
	return &MongoStore{
		client:     client,
		collection: client.Database(databaseName).Collection(imagesCollection),
	}, nil
}

func (m *MongoStore) Driver() string { return "mongo" }

func (m *MongoStore) Insert(ctx context.Context, rec *models.ImageRecord) error {
	if rec.ID == "" {
		rec.ID = bson.NewObjectID().Hex()
	}
	_, err := m.collection.InsertOne(ctx, rec)
	return err
}

func (m *MongoStore) ListDescending(ctx context.Context) ([]models.ImageRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := m.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	images := []models.ImageRecord{}
	if err := cursor.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

func (m *MongoStore) Count(ctx context.Context) (int64, error) {
	return m.collection.CountDocuments(ctx, bson.M{})
}

func (m *MongoStore) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
