package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/DevSlashRichie/coinme/internal/config"
	"github.com/DevSlashRichie/coinme/internal/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Названия коллекций
const (
	LoansCollection        = "loans"
	SecuritiesCollection   = "securities"
	TransactionsCollection = "transactions"
)

// MongoClient - подключение к MongoDB и рабочая база
type MongoClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// ConnectToMongoDB подключается к MongoDB и проверяет соединение ping-ом
func ConnectToMongoDB(ctx context.Context, cfg *config.Config) (*MongoClient, error) {
	safeURI := redactMongoURI(cfg.MongoURI)
	logger.CtxInfo(ctx, "Connecting to MongoDB",
		slog.String("uri", safeURI),
		slog.String("database", cfg.MongoDB),
	)

	timeout := cfg.MongoConnectTimeout
	clientOpts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout * 2).
		SetHeartbeatInterval(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		logger.CtxError(ctx, "Failed to connect to MongoDB", err, slog.String("uri", safeURI))
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		logger.CtxError(ctx, "MongoDB ping failed", err, slog.String("uri", safeURI))
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	logger.CtxInfo(ctx, "Successfully connected to MongoDB", slog.String("database", cfg.MongoDB))

	return &MongoClient{
		Client:   client,
		Database: client.Database(cfg.MongoDB),
	}, nil
}

// EnsureIndexes создает индексы под выборки по владельцу, автору и сроку погашения
func (c *MongoClient) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		LoansCollection: {
			{Keys: bson.D{{Key: "borrower.id", Value: 1}, {Key: "borrower.type", Value: 1}}},
		},
		SecuritiesCollection: {
			{Keys: bson.D{{Key: "owner.id", Value: 1}, {Key: "owner.type", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "maturityDate", Value: 1}}},
		},
		TransactionsCollection: {
			{Keys: bson.D{{Key: "owner.id", Value: 1}, {Key: "owner.type", Value: 1}}},
			{Keys: bson.D{{Key: "createdBy", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := c.Database.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// Disconnect закрывает соединение с MongoDB
func (c *MongoClient) Disconnect(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}

func redactMongoURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "invalid-uri"
	}
	if u.User != nil {
		u.User = url.UserPassword("xxxxx", "xxxxx")
	}
	return u.String()
}
