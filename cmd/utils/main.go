package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/appetiteclub/apt"

	"github.com/appetiteclub/frontdesk/cmd/utils/internal/commands"
)

const (
	appName    = "frontdesk-utils"
	appVersion = "0.1.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	config, err := apt.LoadConfig("UTILS", os.Args[2:])
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	logger := apt.NewLogger(config.GetStringOrDef("log.level", "info"))

	ctx := context.Background()
	command := os.Args[1]

	switch command {
	case "clear-seeds":
		if err := commands.ClearSeeds(ctx, config, logger); err != nil {
			log.Fatalf("Clear seeds failed: %v", err)
		}
		logger.Info("Seed tracker cleared successfully")

	case "reset-db":
		if err := commands.ResetDB(ctx, config, logger); err != nil {
			log.Fatalf("Database reset failed: %v", err)
		}
		logger.Info("Database reset completed successfully")

	case "version":
		fmt.Printf("%s version %s\n", appName, appVersion)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - Frontdesk utility commands

Usage:
  %s <command> [options]

Commands:
  clear-seeds  Forget applied demo seeds so the service reseeds on next start
  reset-db     Drop all frontdesk collections or tables (USE WITH CAUTION)
  version      Print version information
  help         Show this help message

Environment Variables:
  UTILS_STORE_DRIVER      mongo or postgres (default: mongo)
  UTILS_DB_MONGO_URL      MongoDB connection URL (default: mongodb://localhost:27017)
  UTILS_DB_MONGO_NAME     MongoDB database (default: frontdesk)
  UTILS_DB_POSTGRES_URL   Postgres connection URL
  UTILS_LOG_LEVEL         Log level: debug, info, warn, error (default: info)

Examples:
  %s clear-seeds
  UTILS_STORE_DRIVER=postgres %s reset-db

`, appName, appName, appName, appName)
}
