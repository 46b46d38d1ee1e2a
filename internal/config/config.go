package config

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

const DefaultAPIAddress = "http://localhost:8080/api/v1"

type APIConfig struct {
	Address           string        `yaml:"address" env:"WALLET_API_URL"`
	Timeout           time.Duration `yaml:"timeout" env:"WALLET_API_TIMEOUT"`         // zero means no timeout
	RequestsPerSecond int           `yaml:"requests_per_second" env:"WALLET_API_RPS"` // zero means unlimited
}

func (c *APIConfig) Setup() error {
	c.Address = cmp.Or(c.Address, DefaultAPIAddress)

	u, err := url.Parse(c.Address)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q in api address", u.Scheme)
	}

	if c.Timeout < 0 {
		c.Timeout = 0
	}
	if c.RequestsPerSecond < 0 {
		c.RequestsPerSecond = 0
	}

	return nil
}

type SessionStoreKind string

const (
	MemoryStore   SessionStoreKind = "memory"
	FileStore     SessionStoreKind = "file"
	PostgresStore SessionStoreKind = "postgres"
)

type SessionConfig struct {
	Name  string           `yaml:"name" env:"WALLET_SESSION_NAME"`
	Store SessionStoreKind `yaml:"store" env:"WALLET_SESSION_STORE"`
	File  string           `yaml:"file" env:"WALLET_SESSION_FILE"`
}

const (
	_sessionNameDefault  = "default"
	_sessionStoreDefault = FileStore
	_sessionFileName     = "session.yaml"
)

func (c *SessionConfig) Setup() error {
	c.Name = cmp.Or(c.Name, _sessionNameDefault)
	c.Store = cmp.Or(c.Store, _sessionStoreDefault)

	switch c.Store {
	case MemoryStore, PostgresStore:
	case FileStore:
		if c.File == "" {
			c.File = defaultSessionFile()
		}
	default:
		return fmt.Errorf("unknown session store %q", c.Store)
	}

	return nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".wallet-client", _sessionFileName)
	}
	return filepath.Join(home, ".wallet-client", _sessionFileName)
}

type ViewConfig struct {
	DateLayout string `yaml:"date_layout" env:"WALLET_DATE_LAYOUT"`
}

const _dateLayoutDefault = "2006-01-02 15:04:05"

func (c *ViewConfig) Setup() {
	c.DateLayout = cmp.Or(c.DateLayout, _dateLayoutDefault)
}

type ClientConfig struct {
	LogLevel string        `yaml:"log_level" env:"WALLET_LOG_LEVEL"`
	API      APIConfig     `yaml:"api"`
	Session  SessionConfig `yaml:"session"`
	View     ViewConfig    `yaml:"view"`
}

// ApplyEnv lets the environment override whatever the file said. Unset or
// empty variables leave the field alone.
func (c *ClientConfig) ApplyEnv() error {
	return env.Parse(c)
}

func (c *ClientConfig) ValidateAndSetup() error {
	c.LogLevel = cmp.Or(c.LogLevel, "info")

	if err := c.API.Setup(); err != nil {
		return fmt.Errorf("%w: can't setup api", err)
	}
	if err := c.Session.Setup(); err != nil {
		return fmt.Errorf("%w: can't setup session", err)
	}
	c.View.Setup()

	return nil
}

// LoadClientConfig reads filename if it exists; a missing file yields the
// defaults. Environment overrides are applied before validation.
func LoadClientConfig(filename string) (ClientConfig, error) {
	var cfg ClientConfig
	input, err := os.ReadFile(filename)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("%w: can't read file", err)
	default:
		if err := yaml.Unmarshal(input, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: can't unmarshal config", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, fmt.Errorf("%w: can't apply env", err)
	}

	if err := cfg.ValidateAndSetup(); err != nil {
		return cfg, fmt.Errorf("%w: can't setup cfg", err)
	}

	return cfg, nil
}
