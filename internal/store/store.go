package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Harsh-kumar-git/ManageMate/internal/config"
	"github.com/Harsh-kumar-git/ManageMate/internal/metrics"
	"github.com/Harsh-kumar-git/ManageMate/internal/models"
	"github.com/Harsh-kumar-git/ManageMate/pkg/apperr"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store encapsulates the MongoDB connection and all repositories.
type Store struct {
	client    *mongo.Client
	db        *mongo.Database
	breaker   *Breaker
	logger    *logrus.Logger
	opTimeout time.Duration

	Users     UserRepository
	Inventory *Collection[models.InventoryItem]
	Clients   *Collection[models.Client]
	Sales     *Collection[models.Sale]
	Expenses  *Collection[models.Expense]
	Tasks     *Collection[models.Task]
	Reports   *Collection[models.Report]
}

// New connects to MongoDB, verifies the connection and ensures indexes.
func New(cfg *config.MongoConfig, logger *logrus.Logger) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)

	s := &Store{
		client:    client,
		db:        db,
		breaker:   NewBreaker(logger),
		logger:    logger,
		opTimeout: cfg.OperationTimeout,
	}

	s.Users = newUserRepository(s)
	s.Inventory = newCollection[models.InventoryItem](s, "inventory_items", "Item")
	s.Clients = newCollection[models.Client](s, "clients", "Client")
	s.Sales = newCollection[models.Sale](s, "sales", "Sale")
	s.Expenses = newCollection[models.Expense](s, "expenses", "Expense")
	s.Tasks = newCollection[models.Task](s, "tasks", "Task")
	s.Reports = newCollection[models.Report](s, "reports", "Report")

	if err := s.ensureIndexes(ctx); err != nil {
		logger.WithError(err).Warn("Failed to create indexes")
	}

	logger.WithFields(logrus.Fields{
		"database": cfg.Database,
	}).Info("Connected to MongoDB")

	return s, nil
}

// ensureIndexes creates the unique indexes the data model relies on.
// Uniqueness violations surface as duplicate key errors on write.
func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string]mongo.IndexModel{
		"users":           {Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		"clients":         {Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		"inventory_items": {Keys: bson.D{{Key: "sku", Value: 1}}, Options: unique},
		"sales":           {Keys: bson.D{{Key: "invoice_number", Value: 1}}, Options: unique},
		"expenses":        {Keys: bson.D{{Key: "expense_number", Value: 1}}, Options: unique},
		"tasks":           {Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	for collection, model := range indexes {
		if _, err := s.db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("index on %s: %w", collection, err)
		}
	}

	return nil
}

// Ping verifies the MongoDB connection for readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb unavailable: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// run executes one store call under the operation timeout and the circuit
// breaker, and records its duration. Operational misses (no documents,
// duplicate keys, typed errors) do not count as breaker failures.
func (s *Store) run(ctx context.Context, collection, op string, fn func(context.Context) error) error {
	start := time.Now()

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	var opErr error
	err := s.breaker.Execute(func() error {
		opErr = fn(opCtx)
		if opErr != nil && !isOperational(opErr) {
			return opErr
		}
		return nil
	})

	status := "success"
	if opErr != nil || err != nil {
		status = "failure"
	}
	metrics.RecordStoreOperation(collection, op, status, time.Since(start))

	if opErr != nil {
		return opErr
	}
	return err
}

// isOperational reports whether a store error reflects request content
// rather than store health.
func isOperational(err error) bool {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return true
	}
	return errors.Is(err, mongo.ErrNoDocuments) || mongo.IsDuplicateKeyError(err)
}
