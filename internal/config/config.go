package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Env            string        `yaml:"env"`
	LogLevel       string        `yaml:"log_level"`
	HTTPAddr       string        `yaml:"http_addr"`
	StorageBackend string        `yaml:"storage_backend"`
	DataFile       string        `yaml:"data_file"`
	SQLitePath     string        `yaml:"sqlite_path"`
	PostgresDSN    string        `yaml:"postgres_dsn"`
	ReminderPoll   time.Duration `yaml:"reminder_poll"`
}

var (
	cfg  *Config
	once sync.Once
)

// Load reads configuration once per process: defaults, then the YAML file
// named by HEALTHCOACH_CONFIG, then environment variables (a local .env
// file is loaded into the environment first). Invalid config panics.
func Load() *Config {
	once.Do(func() {
		_ = loadDotEnv(".env")
		c, err := LoadFrom(os.Getenv("HEALTHCOACH_CONFIG"))
		if err != nil {
			panic("Invalid config: " + err.Error())
		}
		cfg = c
	})
	return cfg
}

// LoadFrom builds a Config without caching. An empty path skips the YAML file.
func LoadFrom(path string) (*Config, error) {
	c := Defaults()
	if path != "" {
		if err := c.overlayYAML(path); err != nil {
			return nil, err
		}
	}
	c.Env = getEnv("APP_ENV", c.Env)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.StorageBackend = getEnv("STORAGE_BACKEND", c.StorageBackend)
	c.DataFile = getEnv("DATA_FILE", c.DataFile)
	c.SQLitePath = getEnv("SQLITE_PATH", c.SQLitePath)
	c.PostgresDSN = getEnv("POSTGRES_DSN", c.PostgresDSN)
	if v := os.Getenv("REMINDER_POLL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("REMINDER_POLL: %w", err)
		}
		c.ReminderPoll = d
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Defaults() *Config {
	return &Config{
		Env:            "development",
		LogLevel:       "info",
		HTTPAddr:       ":8088",
		StorageBackend: BackendFile,
		DataFile:       "data/health_coach_user_data.csv",
		SQLitePath:     "data/health_coach.db",
		ReminderPoll:   time.Minute,
	}
}

func (c *Config) overlayYAML(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendFile:
		if c.DataFile == "" {
			return errors.New("DATA_FILE is required when STORAGE_BACKEND=file")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORAGE_BACKEND=sqlite")
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of: file, sqlite, postgres (got %q)", c.StorageBackend)
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.ReminderPoll <= 0 {
		return errors.New("REMINDER_POLL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadDotEnv exports KEY=VALUE lines from path; missing files are ignored.
func loadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		os.Setenv(strings.TrimSpace(k), strings.TrimSpace(v))
	}
	return sc.Err()
}
