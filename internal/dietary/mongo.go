package dietary

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"weddinginvites/internal/config"
	"weddinginvites/internal/models"
)

// MongoSource reads invites straight from the invite store's collection.
type MongoSource struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewMongoSource connects to the configured cluster.
func NewMongoSource(ctx context.Context, logger *slog.Logger, cfg config.MongoConfig) (*MongoSource, error) {
	opts := options.Client().
		ApplyURI(cfg.ConnectionString()).
		SetConnectTimeout(config.HTTPTimeout).
		SetServerSelectionTimeout(config.HTTPTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	logger.Info("Connected to invite database", "database", cfg.Database, "collection", cfg.Collection)

	return &MongoSource{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		logger:     logger,
	}, nil
}

// Invites returns every stored invite.
func (s *MongoSource) Invites(ctx context.Context) ([]models.StoredInvite, error) {
	cursor, err := s.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query invites: %w", err)
	}
	var invites []models.StoredInvite
	if err := cursor.All(ctx, &invites); err != nil {
		return nil, fmt.Errorf("failed to decode invites: %w", err)
	}
	s.logger.Debug("Loaded invites", "count", len(invites))
	return invites, nil
}

// Close disconnects from the cluster.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
