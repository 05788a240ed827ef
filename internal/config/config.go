package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Catalog sources.
const (
	CatalogEmbedded = "embedded"
	CatalogPostgres = "postgres"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"bc-quiz"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Security Security
	Quiz     Quiz
	CORS     CORS
}

// Postgres captures connection info for the catalog database. An empty
// host means no database is configured.
type Postgres struct {
	Host     string `env:"PG_HOST"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER"`
	Password string `env:"PG_PASSWORD"`
	Database string `env:"PG_DATABASE"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns int    `env:"PG_MAX_CONNS" envDefault:"10"`
}

// Enabled reports whether a database host is configured.
func (p Postgres) Enabled() bool {
	return p.Host != ""
}

// ConnString renders a keyword/value connection string for a single
// connection (database/sql, goose).
func (p Postgres) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quote(p.Host), p.Port, quote(p.User), quote(p.Password), quote(p.Database), quote(p.SSLMode))
}

// quote keeps empty values and spaces from breaking keyword/value parsing.
func quote(v string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v) + "'"
}

// DSN is ConnString plus pgxpool sizing.
func (p Postgres) DSN() string {
	return fmt.Sprintf("%s pool_max_conns=%d", p.ConnString(), p.MaxConns)
}

// Redis holds session store configuration. An empty address selects the
// in-process store.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Enabled reports whether a Redis address is configured.
func (r Redis) Enabled() bool {
	return r.Addr != ""
}

// Security stores secrets for signing session tokens.
type Security struct {
	SessionTokenSecret string `env:"SESSION_TOKEN_SECRET,notEmpty"`
}

// Quiz groups questionnaire defaults.
type Quiz struct {
	DefaultRuleSet string        `env:"QUIZ_DEFAULT_RULE_SET" envDefault:"classic"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	CatalogSource  string        `env:"CATALOG_SOURCE" envDefault:"embedded"`
}

// CORS lists the origins allowed to open WebSocket connections.
type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *App) validate() error {
	switch c.Quiz.CatalogSource {
	case CatalogEmbedded:
	case CatalogPostgres:
		if !c.Postgres.Enabled() {
			return fmt.Errorf("CATALOG_SOURCE=postgres requires PG_HOST")
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.Quiz.CatalogSource)
	}
	if c.Quiz.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}
