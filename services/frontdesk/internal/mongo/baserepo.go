package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
)

const (
	DefaultURL      = "mongodb://localhost:27017"
	DefaultDatabase = "frontdesk"
)

// Index is an ascending secondary index on one backend field.
type Index struct {
	Collection string
	Field      string
}

// Indexes are created on Start. Order numbers wrap every million
// milliseconds, so order_number is not unique.
var Indexes = []Index{
	{Collection: record.CollectionOrder, Field: "order_number"},
	{Collection: record.CollectionOrder, Field: "status"},
	{Collection: record.CollectionReservation, Field: "date_time"},
	{Collection: record.CollectionInventory, Field: "Name"},
}

// BaseRepo owns the Mongo client shared by the record store and the seed
// tracker.
type BaseRepo struct {
	client *mongo.Client
	db     *mongo.Database
	logger apt.Logger
	config *apt.Config
}

func NewBaseRepo(config *apt.Config, logger apt.Logger) *BaseRepo {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &BaseRepo{
		logger: logger,
		config: config,
	}
}

func (r *BaseRepo) Start(ctx context.Context) error {
	url := r.config.GetStringOrDef("db.mongo.url", DefaultURL)
	name := r.config.GetStringOrDef("db.mongo.name", DefaultDatabase)
	timeout := r.config.GetDurationOrDef("db.mongo.timeout", 10*time.Second)

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(url).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return fmt.Errorf("cannot connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("cannot ping MongoDB: %w", err)
	}

	r.client = client
	r.db = client.Database(name)
	r.logger.Info("connected to MongoDB", "database", name)

	r.ensureIndexes(ctx)
	return nil
}

func (r *BaseRepo) Stop(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("cannot disconnect from MongoDB: %w", err)
	}
	r.logger.Info("disconnected from MongoDB")
	return nil
}

func (r *BaseRepo) GetDatabase() *mongo.Database {
	return r.db
}

// ensureIndexes logs failures instead of returning them; a missing index
// only slows lookups down.
func (r *BaseRepo) ensureIndexes(ctx context.Context) {
	for _, idx := range Indexes {
		model := mongo.IndexModel{Keys: bson.D{{Key: idx.Field, Value: 1}}}
		if _, err := r.db.Collection(idx.Collection).Indexes().CreateOne(ctx, model); err != nil {
			r.logger.Error("cannot create index", "collection", idx.Collection, "field", idx.Field, "error", err)
		}
	}
}
