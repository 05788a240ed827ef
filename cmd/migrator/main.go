package main

import (
	"database/sql"
	"flag"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/gokatarajesh/bc-quiz/internal/config"
	"github.com/gokatarajesh/bc-quiz/internal/logging"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, or status")
		dir     = flag.String("dir", "db/migrations", "Directory containing migration files")
	)
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	logger := logging.NewWithWriter(os.Stderr, "bc-quiz-migrator", os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	// only the PG_* keys matter here; the API secret is not required
	var pg config.Postgres
	if err := env.Parse(&pg); err != nil {
		logger.Fatal().Err(err).Msg("failed to load database configuration")
	}

	if !pg.Enabled() || pg.User == "" || pg.Database == "" {
		logger.Fatal().Msg("PG_HOST, PG_USER and PG_DATABASE are required")
	}

	migrationDir, err := filepath.Abs(*dir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", *dir).Msg("failed to resolve migration directory")
	}
	if _, err := os.Stat(migrationDir); os.IsNotExist(err) {
		logger.Fatal().Str("dir", migrationDir).Msg("migration directory does not exist")
	}

	// goose drives database/sql, so go through the pgx stdlib driver
	db, err := sql.Open("pgx", pg.ConnString())
	if err != nil {
		logger.Fatal().Err(err).Str("host", pg.Host).Int("port", pg.Port).Msg("failed to open database connection")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping database")
	}

	logger.Info().
		Str("host", pg.Host).
		Int("port", pg.Port).
		Str("database", pg.Database).
		Str("migration_dir", migrationDir).
		Msg("connected to database")

	goose.SetBaseFS(nil)
	goose.SetTableName("goose_db_version")
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatal().Err(err).Msg("failed to set goose dialect")
	}

	switch *command {
	case "up":
		if err := goose.Up(db, migrationDir); err != nil {
			logger.Fatal().Err(err).Msg("failed to run migrations up")
		}
		logger.Info().Msg("migrations applied successfully")

	case "down":
		if err := goose.Down(db, migrationDir); err != nil {
			logger.Fatal().Err(err).Msg("failed to run migrations down")
		}
		logger.Info().Msg("migrations rolled back successfully")

	case "status":
		if err := goose.Status(db, migrationDir); err != nil {
			logger.Fatal().Err(err).Msg("failed to get migration status")
		}

	default:
		logger.Fatal().Str("command", *command).Msg("unknown command. Use: up, down, or status")
	}
}
