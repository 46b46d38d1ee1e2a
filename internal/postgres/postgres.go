package postgres

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Config locates the session database. Unset or empty variables take the
// defaults below.
type Config struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     uint16 `env:"POSTGRES_PORT" envDefault:"5432"`
	Username string `env:"POSTGRES_USERNAME" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"POSTGRES_DB_NAME" envDefault:"wallet_client"`
	SSLMode  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
}

func NewConfigFromEnv() (*Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("%w: can't read postgres env", err)
	}
	return &c, nil
}

func (c *Config) String() string {
	return c.Redacted() + " password=" + c.Password
}

// Redacted leaves out the password.
func (c *Config) Redacted() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.DBName, c.SSLMode,
	)
}

// NewDB connects and brings the schema up to date.
func NewDB(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.String())
	if err != nil {
		return nil, fmt.Errorf("%w: can't connect to postgres", err)
	}

	if _, err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
