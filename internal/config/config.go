package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrMissingDatabaseURL = errors.New("postgres driver requires database.url")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env      string   `mapstructure:"env"`  // local, dev, production
	User     string   `mapstructure:"user"` // learner the CLI acts for
	DB       DB       `mapstructure:"database"`
	Broker   Broker   `mapstructure:"broker"`
	Reminder Reminder `mapstructure:"reminder"`
}

// DB selects and configures the persistence backend.
type DB struct {
	Driver          string        `mapstructure:"driver"` // sqlite or postgres
	Path            string        `mapstructure:"path"`   // sqlite file
	URL             string        `mapstructure:"url"`    // postgres DSN
	MaxConnections  int           `mapstructure:"max_connections"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// Broker configures the event bus. An empty URL disables publishing.
type Broker struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

// Reminder configures the periodic due check.
type Reminder struct {
	Interval time.Duration `mapstructure:"interval"`
	Users    []string      `mapstructure:"users"`
}

// Validate reports configuration that cannot be used.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DB.URL == "" {
			return ErrMissingDatabaseURL
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.DB.Driver)
	}
	// The pool takes an int32; zero keeps the driver default.
	if c.DB.MaxConnections < 0 || c.DB.MaxConnections > math.MaxInt32 {
		return fmt.Errorf("database.max_connections must be between 0 and %d, got %d", math.MaxInt32, c.DB.MaxConnections)
	}
	if c.User == "" {
		return errors.New("user must not be empty")
	}
	return nil
}

// ReminderUsers returns the users the reminder job checks, falling back to
// the default user.
func (c *Config) ReminderUsers() []string {
	if len(c.Reminder.Users) > 0 {
		return c.Reminder.Users
	}
	return []string{c.User}
}

// Load reads configuration from an optional file, a .env file and
// PATHRECALL_* environment variables. When file is empty, config.yaml is
// looked up in ./config and the working directory.
func Load(file string) (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetDefault("env", "local")
	v.SetDefault("user", defaultUser())
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("broker.url", "")
	v.SetDefault("broker.exchange", "pathrecall.events")
	v.SetDefault("reminder.interval", "1h")
	v.SetDefault("reminder.users", []string{})

	v.SetEnvPrefix("PATHRECALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("database.path", "PATHRECALL_DB", "PATHRECALL_DATABASE_PATH")
	_ = v.BindEnv("database.url", "PATHRECALL_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("broker.url", "PATHRECALL_BROKER_URL", "RABBITMQ_URI")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
