package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "SUMMARIZE_"

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Ytsheet      YtsheetConfig      `yaml:"ytsheet"`
	Spreadsheet  SpreadsheetConfig  `yaml:"spreadsheet"`
	Engine       EngineConfig       `yaml:"engine"`
	Notification NotificationConfig `yaml:"notification"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	Logging      LoggingConfig      `yaml:"logging"`
}

type ServerConfig struct {
	Host         string        `yaml:"host" env:"SERVER_HOST"`
	Port         int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig selects the relational driver. "mysql" is used in
// deployments, "sqlite" for local runs.
type DatabaseConfig struct {
	Driver     string      `yaml:"driver" env:"DATABASE_DRIVER"`
	SQLitePath string      `yaml:"sqlite_path" env:"SQLITE_PATH"`
	MySQL      MySQLConfig `yaml:"mysql"`
	Redis      RedisConfig `yaml:"redis"`
}

type MySQLConfig struct {
	Host            string        `yaml:"host" env:"MYSQL_HOST"`
	Port            int           `yaml:"port" env:"MYSQL_PORT"`
	Username        string        `yaml:"username" env:"MYSQL_USERNAME"`
	Password        string        `yaml:"password" env:"MYSQL_PASSWORD"`
	Database        string        `yaml:"database" env:"MYSQL_DATABASE"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST"`
	Port     int    `yaml:"port" env:"REDIS_PORT"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// YtsheetConfig configures the character sheet source.
type YtsheetConfig struct {
	BaseURL   string        `yaml:"base_url" env:"YTSHEET_BASE_URL"`
	Interval  time.Duration `yaml:"interval" env:"YTSHEET_INTERVAL"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type SpreadsheetConfig struct {
	SpreadsheetID   string        `yaml:"spreadsheet_id" env:"SPREADSHEET_ID"`
	CredentialsFile string        `yaml:"credentials_file" env:"GOOGLE_CREDENTIALS_FILE"`
	RetryCount      uint          `yaml:"retry_count"`
	RetryWait       time.Duration `yaml:"retry_wait"`
	Timezone        string        `yaml:"timezone"`
}

// EngineConfig controls a summary run.
type EngineConfig struct {
	// FailurePolicy is "fail_fast" or "skip".
	FailurePolicy string `yaml:"failure_policy" env:"FAILURE_POLICY"`
	// GMDedup is "player" or "character".
	GMDedup      string        `yaml:"gm_dedup" env:"GM_DEDUP"`
	ParseWorkers int           `yaml:"parse_workers"`
	LockTTL      time.Duration `yaml:"lock_ttl"`
}

type NotificationConfig struct {
	MaxItems int           `yaml:"max_items"`
	TTL      time.Duration `yaml:"ttl"`
}

// TelemetryConfig enables OTLP tracing when OTLPEndpoint is set.
type TelemetryConfig struct {
	ServiceName  string `yaml:"service_name"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
}

type LoggingConfig struct {
	// Output is "stdout", "stderr" or a file path.
	Output string `yaml:"output" env:"LOG_OUTPUT"`
}

// Load reads configuration from a YAML file, then applies environment
// overrides and defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Minute
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "summarize.db"
	}
	if c.Database.MySQL.Port == 0 {
		c.Database.MySQL.Port = 3306
	}
	if c.Database.Redis.Port == 0 {
		c.Database.Redis.Port = 6379
	}
	if c.Ytsheet.BaseURL == "" {
		c.Ytsheet.BaseURL = "https://yutorize.2-d.jp/ytsheet/sw2.5/"
	}
	if c.Ytsheet.Interval == 0 {
		c.Ytsheet.Interval = 5 * time.Second
	}
	if c.Ytsheet.Timeout == 0 {
		c.Ytsheet.Timeout = 30 * time.Second
	}
	if c.Spreadsheet.RetryCount == 0 {
		c.Spreadsheet.RetryCount = 3
	}
	if c.Spreadsheet.RetryWait == 0 {
		c.Spreadsheet.RetryWait = 10 * time.Second
	}
	if c.Spreadsheet.Timezone == "" {
		c.Spreadsheet.Timezone = "Asia/Tokyo"
	}
	if c.Engine.FailurePolicy == "" {
		c.Engine.FailurePolicy = "skip"
	}
	if c.Engine.GMDedup == "" {
		c.Engine.GMDedup = "player"
	}
	if c.Engine.ParseWorkers == 0 {
		c.Engine.ParseWorkers = 8
	}
	if c.Engine.LockTTL == 0 {
		c.Engine.LockTTL = 15 * time.Minute
	}
	if c.Notification.MaxItems == 0 {
		c.Notification.MaxItems = 100
	}
	if c.Notification.TTL == 0 {
		c.Notification.TTL = 7 * 24 * time.Hour
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = "summarize-character-sheets"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
}

// Validate rejects unknown enumerated values.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("invalid database.driver %q", c.Database.Driver)
	}
	switch c.Engine.FailurePolicy {
	case "fail_fast", "skip":
	default:
		return fmt.Errorf("invalid engine.failure_policy %q", c.Engine.FailurePolicy)
	}
	switch c.Engine.GMDedup {
	case "player", "character":
	default:
		return fmt.Errorf("invalid engine.gm_dedup %q", c.Engine.GMDedup)
	}
	if c.Engine.ParseWorkers < 0 {
		return fmt.Errorf("invalid engine.parse_workers %d", c.Engine.ParseWorkers)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DSN returns the go-sql-driver/mysql connection string.
func (m MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		m.Username, m.Password, m.Host, m.Port, m.Database)
}

// Addr returns the Redis address.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Location loads the display timezone.
func (s SpreadsheetConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}
