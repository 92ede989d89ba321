package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"
)

// ClearSeeds forgets which demo seeds were applied so the next service start
// with seeding.demo enabled applies them again. Seeded records are kept.
func ClearSeeds(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	switch driver(config) {
	case "mongo":
		client, db, err := connectMongo(ctx, config, logger)
		if err != nil {
			return err
		}
		defer client.Disconnect(ctx)

		res, err := db.Collection(seedsCollection).DeleteMany(ctx, bson.M{"application": demoApplication})
		if err != nil {
			return fmt.Errorf("delete seed records: %w", err)
		}
		logger.Info("Cleared seed tracker", "deleted", res.DeletedCount)

	case "postgres":
		pool, err := connectPostgres(ctx, config, logger)
		if err != nil {
			return err
		}
		defer pool.Close()

		query := fmt.Sprintf("DELETE FROM %s WHERE data->>'application' = $1", tableName(seedsCollection))
		tag, err := pool.Exec(ctx, query, demoApplication)
		if err != nil {
			return fmt.Errorf("delete seed records: %w", err)
		}
		logger.Info("Cleared seed tracker", "deleted", tag.RowsAffected())

	default:
		return fmt.Errorf("clear-seeds does not support store driver %q", driver(config))
	}
	return nil
}
