package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
)

// ResetDB drops every frontdesk collection or table. USE WITH CAUTION.
func ResetDB(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Infof("DANGER: this drops all frontdesk data from the %s store", driver(config))
	logger.Infof("This action cannot be undone!")

	switch driver(config) {
	case "mongo":
		client, db, err := connectMongo(ctx, config, logger)
		if err != nil {
			return err
		}
		defer client.Disconnect(ctx)

		for _, name := range Collections {
			if err := db.Collection(name).Drop(ctx); err != nil {
				return fmt.Errorf("drop collection %s: %w", name, err)
			}
			logger.Info("Collection dropped", "collection", name)
		}

	case "postgres":
		pool, err := connectPostgres(ctx, config, logger)
		if err != nil {
			return err
		}
		defer pool.Close()

		for _, name := range Collections {
			if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+tableName(name)); err != nil {
				return fmt.Errorf("drop table %s: %w", name, err)
			}
			logger.Info("Table dropped", "table", name)
		}

	default:
		return fmt.Errorf("reset-db does not support store driver %q", driver(config))
	}

	logger.Info("All frontdesk data has been dropped")
	return nil
}
