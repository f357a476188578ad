package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig    `json:"server"`
	Inventory InventoryConfig `json:"inventory"`
	Database  DatabaseConfig  `json:"database"`
	Redis     RedisConfig     `json:"redis"`
	Catalog   CatalogConfig   `json:"catalog"`
	Log       LogConfig       `json:"log"`
}

type ServerConfig struct {
	Host                  string `json:"host"`
	Port                  int    `json:"port"`
	MetricsPort           int    `json:"metrics_port"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
}

// RequestTimeout bounds every request except checkout, whose length grows
// with the number of cart lines.
func (c ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// MetricsAddr is empty when metrics are only served on the main port.
func (c ServerConfig) MetricsAddr() string {
	if c.MetricsPort <= 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.Host, c.MetricsPort)
}

type InventoryConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func (c InventoryConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type DatabaseConfig struct {
	Enabled        bool   `json:"enabled"`
	Driver         string `json:"driver"`
	Host           string `json:"host"`
	Port           int    `json:"port"`
	User           string `json:"user"`
	Password       string `json:"password"`
	DBName         string `json:"dbname"`
	SSLMode        string `json:"sslmode"`
	MigrationsPath string `json:"migrations_path"`
}

type RedisConfig struct {
	Enabled     bool   `json:"enabled"`
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Password    string `json:"password"`
	DB          int    `json:"db"`
	SnapshotKey string `json:"snapshot_key"`
	SnapshotTTL int    `json:"snapshot_ttl_seconds"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type CatalogConfig struct {
	RefreshIntervalSeconds int `json:"refresh_interval_seconds"`
}

func (c CatalogConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

type LogConfig struct {
	Level string `json:"level"`
}

// LoadConfig reads the JSON file at path (a missing file is fine), loads an
// optional .env and applies POS_* environment overrides on top.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		switch {
		case err == nil:
			defer file.Close()
			if err := json.NewDecoder(file).Decode(cfg); err != nil {
				return nil, fmt.Errorf("decode config %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                  "0.0.0.0",
			Port:                  8080,
			RequestTimeoutSeconds: 90,
		},
		Inventory: InventoryConfig{
			TimeoutSeconds: 15,
		},
		Database: DatabaseConfig{
			Driver:         "postgres",
			Host:           "localhost",
			Port:           5432,
			User:           "postgres",
			DBName:         "pos",
			SSLMode:        "disable",
			MigrationsPath: "migrations",
		},
		Redis: RedisConfig{
			Host:        "localhost",
			Port:        6379,
			SnapshotKey: "catalog:snapshot",
			SnapshotTTL: 86400,
		},
		Catalog: CatalogConfig{
			RefreshIntervalSeconds: 60,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Inventory.BaseURL) == "" {
		return errors.New("inventory.base_url is required")
	}
	if c.Inventory.TimeoutSeconds <= 0 {
		return errors.New("inventory.timeout_seconds must be positive")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port must be positive")
	}
	if c.Server.RequestTimeoutSeconds <= 0 {
		return errors.New("server.request_timeout_seconds must be positive")
	}
	switch c.Database.Driver {
	case "postgres", "pgx":
	default:
		return fmt.Errorf("database.driver %q is not supported", c.Database.Driver)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Host, "POS_SERVER_HOST")
	setString(&c.Inventory.BaseURL, "POS_INVENTORY_BASE_URL")
	setString(&c.Database.Driver, "POS_DATABASE_DRIVER")
	setString(&c.Database.Host, "POS_DATABASE_HOST")
	setString(&c.Database.User, "POS_DATABASE_USER")
	setString(&c.Database.Password, "POS_DATABASE_PASSWORD")
	setString(&c.Database.DBName, "POS_DATABASE_NAME")
	setString(&c.Database.SSLMode, "POS_DATABASE_SSLMODE")
	setString(&c.Database.MigrationsPath, "POS_DATABASE_MIGRATIONS_PATH")
	setString(&c.Redis.Host, "POS_REDIS_HOST")
	setString(&c.Redis.Password, "POS_REDIS_PASSWORD")
	setString(&c.Log.Level, "POS_LOG_LEVEL")

	ints := []struct {
		dst *int
		key string
	}{
		{&c.Server.Port, "POS_SERVER_PORT"},
		{&c.Server.MetricsPort, "POS_SERVER_METRICS_PORT"},
		{&c.Server.RequestTimeoutSeconds, "POS_SERVER_REQUEST_TIMEOUT_SECONDS"},
		{&c.Inventory.TimeoutSeconds, "POS_INVENTORY_TIMEOUT_SECONDS"},
		{&c.Database.Port, "POS_DATABASE_PORT"},
		{&c.Redis.Port, "POS_REDIS_PORT"},
		{&c.Redis.DB, "POS_REDIS_DB"},
		{&c.Catalog.RefreshIntervalSeconds, "POS_CATALOG_REFRESH_INTERVAL_SECONDS"},
	}
	for _, v := range ints {
		if err := setInt(v.dst, v.key); err != nil {
			return err
		}
	}

	bools := []struct {
		dst *bool
		key string
	}{
		{&c.Database.Enabled, "POS_DATABASE_ENABLED"},
		{&c.Redis.Enabled, "POS_REDIS_ENABLED"},
	}
	for _, v := range bools {
		if err := setBool(v.dst, v.key); err != nil {
			return err
		}
	}

	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s must be number: %w", key, err)
	}
	*dst = i
	return nil
}

func setBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s must be boolean: %w", key, err)
	}
	*dst = b
	return nil
}
