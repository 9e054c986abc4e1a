package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/go-pg/pg/v10"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App      App      `toml:"app"`
	Database Database `toml:"database"`
	Session  Session  `toml:"session"`
	Upload   Upload   `toml:"upload"`
	Admin    Admin    `toml:"admin"`
}

type App struct {
	Host string `toml:"host" env:"APP_HOST"`
	Port int    `toml:"port" env:"APP_PORT"`
}

// Database holds store connection parameters. Host, credentials and name are
// normally supplied through the environment.
type Database struct {
	Driver     string `toml:"driver" env:"DB_DRIVER"`
	Host       string `toml:"host" env:"DB_HOST"`
	Port       int    `toml:"port" env:"DB_PORT"`
	User       string `toml:"user" env:"DB_USER"`
	Password   string `toml:"password" env:"DB_PASSWORD"`
	Name       string `toml:"name" env:"DB_NAME"`
	Path       string `toml:"path" env:"DB_PATH"`
	MaxConns   int    `toml:"max_conns" env:"DB_MAX_CONNS"`
	LogQueries bool   `toml:"log_queries" env:"DB_LOG_QUERIES"`
}

type Session struct {
	CookieName string        `toml:"cookie_name"`
	TTL        time.Duration `toml:"ttl" env:"SESSION_TTL"`
	Secure     bool          `toml:"secure" env:"SESSION_SECURE"`
}

type Upload struct {
	Dir       string `toml:"dir" env:"UPLOAD_DIR"`
	URLPrefix string `toml:"url_prefix"`
	MaxSize   int64  `toml:"max_size"`
}

// Admin configures the administrator identity. An empty PasswordHash keeps
// the built-in credential pair.
type Admin struct {
	Username     string `toml:"username" env:"ADMIN_USERNAME"`
	PasswordHash string `toml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
}

func Default() Config {
	return Config{
		App: App{
			Host: "0.0.0.0",
			Port: 3000,
		},
		Database: Database{
			Driver:   DriverPostgres,
			Host:     "localhost",
			Port:     5432,
			Path:     "newsdesk.db",
			MaxConns: 5,
		},
		Session: Session{
			CookieName: "session_id",
			TTL:        24 * time.Hour,
		},
		Upload: Upload{
			Dir:       "./public/uploads",
			URLPrefix: "/uploads",
			MaxSize:   5 << 20,
		},
		Admin: Admin{
			Username: "admin",
		},
	}
}

// Load reads the TOML file at path on top of the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.App.Port <= 0 {
		return fmt.Errorf("invalid app port %d", c.App.Port)
	}

	return nil
}

// PGOptions converts the database section into go-pg connection options.
func (d Database) PGOptions() *pg.Options {
	return &pg.Options{
		Addr:       fmt.Sprintf("%s:%d", d.Host, d.Port),
		User:       d.User,
		Password:   d.Password,
		Database:   d.Name,
		PoolSize:   d.MaxConns,
		MaxRetries: 3,
	}
}

// URL returns the Postgres connection URL used by the migration runner.
func (d Database) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
