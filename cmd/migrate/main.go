package main

import (
	"context"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"movie-catalog-backend/internal/config"
	"movie-catalog-backend/internal/infrastructure/database"
	"movie-catalog-backend/pkg/logger"
)

func main() {
	var (
		app = kingpin.New(
			"migrate",
			"Apply or inspect movie catalog schema migrations.")

		timeout = app.Flag(
			"timeout", "overall timeout for the command").Default("2m").Duration()

		envFile = app.Flag(
			"env-file", "optional .env file to load").Default(".env").String()

		upCmd      = app.Command("up", "Apply all pending migrations.")
		downCmd    = app.Command("down", "Roll back the most recent migration.")
		statusCmd  = app.Command("status", "Print the status of every migration.")
		versionCmd = app.Command("version", "Print the current schema version.")
	)

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	_ = godotenv.Load(*envFile)
	logger.Init(os.Getenv("APP_ENV"))

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load database config")
	}
	// migrate luôn chạy tường minh qua subcommand
	dbConfig.AutoMigrate = false

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	start := time.Now()
	switch command {
	case upCmd.FullCommand():
		err = db.MigrateUp(ctx)
	case downCmd.FullCommand():
		err = db.MigrateDown(ctx)
	case statusCmd.FullCommand():
		err = db.MigrateStatus(ctx)
	case versionCmd.FullCommand():
		var version int64
		version, err = db.SchemaVersion(ctx)
		if err == nil {
			log.Info().Int64("version", version).Msg("current schema version")
		}
	}
	if err != nil {
		log.Error().Err(err).Str("command", command).Msg("migration command failed")
		db.Close()
		os.Exit(1)
	}

	log.Info().Str("command", command).Dur("took", time.Since(start)).Msg("migration command finished")
}
