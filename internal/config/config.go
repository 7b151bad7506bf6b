package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Переменные окружения, которые перекрывают значения из файла
const (
	EnvDBPassword = "DB_PASSWORD"
	EnvJWTSecret  = "JWT_SECRET"
	EnvAdminToken = "ADMIN_TOKEN"
	EnvAMQPURL    = "AMQP_URL"
)

// Транспорты доставки уведомлений
const (
	TransportAMQP = "amqp"
	TransportHTTP = "http"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Business    BusinessConfig    `toml:"business"`
	Auth        AuthConfig        `toml:"auth"`
	Outbox      OutboxConfig      `toml:"outbox"`
	AMQP        AMQPConfig        `toml:"amqp"`
	PushGateway PushGatewayConfig `toml:"push_gateway"`
	Progress    ProgressConfig    `toml:"progress"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BusinessConfig параметры бизнеса, для которого работает сервис
type BusinessConfig struct {
	// UTCOffset смещение, в котором заданы рабочие часы постов, например "+03:00"
	UTCOffset string `toml:"utc_offset"`
}

// AuthConfig параметры аутентификации
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	// TokenTTL время жизни токена клиента в часах, 0 = бессрочно
	TokenTTL   int    `toml:"token_ttl"`
	AdminToken string `toml:"admin_token"`
}

// OutboxConfig параметры доставки уведомлений
type OutboxConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
	Schedule  string `toml:"schedule"`
	BatchSize int    `toml:"batch_size"`
	// MaxAttempts число неудачных попыток, после которого уведомление больше не отправляется
	MaxAttempts int `toml:"max_attempts"`
	// RetryBackoff пауза перед первой повторной попыткой в секундах, дальше удваивается
	RetryBackoff int `toml:"retry_backoff"`
}

// AMQPConfig параметры RabbitMQ
type AMQPConfig struct {
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// PushGatewayConfig параметры HTTP шлюза push-уведомлений
type PushGatewayConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// ProgressConfig параметры экспорта прогресса обслуживания
type ProgressConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"`
}

// Load читает конфигурацию из TOML файла, затем накладывает секреты
// из .env (если файл есть) и переменных окружения
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	// .env не обязателен
	_ = godotenv.Load()

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv(EnvAdminToken); v != "" {
		c.Auth.AdminToken = v
	}
	if v := os.Getenv(EnvAMQPURL); v != "" {
		c.AMQP.URL = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "post-booking-service"
	}
	if c.Business.UTCOffset == "" {
		c.Business.UTCOffset = "+00:00"
	}
	if c.Outbox.Transport == "" {
		c.Outbox.Transport = TransportAMQP
	}
	if c.Outbox.Schedule == "" {
		c.Outbox.Schedule = "@every 10s"
	}
	if c.Outbox.BatchSize == 0 {
		c.Outbox.BatchSize = 100
	}
	if c.Outbox.MaxAttempts == 0 {
		c.Outbox.MaxAttempts = 10
	}
	if c.Outbox.RetryBackoff == 0 {
		c.Outbox.RetryBackoff = 30
	}
	if c.AMQP.Exchange == "" {
		c.AMQP.Exchange = "notifications"
	}
	if c.PushGateway.Timeout == 0 {
		c.PushGateway.Timeout = 5
	}
	if c.Progress.Schedule == "" {
		c.Progress.Schedule = "@every 30s"
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.Port <= 0 || c.Database.User == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database host, port, user and dbname are required", ErrInvalidConfig)
	}
	if _, err := c.Business.Location(); err != nil {
		return err
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required (or %s)", ErrInvalidConfig, EnvJWTSecret)
	}
	if c.Auth.AdminToken == "" {
		return fmt.Errorf("%w: auth.admin_token is required (or %s)", ErrInvalidConfig, EnvAdminToken)
	}
	if c.Auth.TokenTTL < 0 {
		return fmt.Errorf("%w: auth.token_ttl must not be negative", ErrInvalidConfig)
	}
	if c.Outbox.Enabled {
		switch c.Outbox.Transport {
		case TransportAMQP:
			if c.AMQP.URL == "" {
				return fmt.Errorf("%w: amqp.url is required for amqp transport", ErrInvalidConfig)
			}
		case TransportHTTP:
			if c.PushGateway.URL == "" {
				return fmt.Errorf("%w: push_gateway.url is required for http transport", ErrInvalidConfig)
			}
		default:
			return fmt.Errorf("%w: unknown outbox.transport %q", ErrInvalidConfig, c.Outbox.Transport)
		}
		if c.Outbox.BatchSize < 0 {
			return fmt.Errorf("%w: outbox.batch_size must be positive", ErrInvalidConfig)
		}
		if c.Outbox.MaxAttempts < 0 || c.Outbox.RetryBackoff < 0 {
			return fmt.Errorf("%w: outbox.max_attempts and outbox.retry_backoff must be positive", ErrInvalidConfig)
		}
	}
	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location часовой пояс бизнеса с фиксированным смещением
func (b BusinessConfig) Location() (*time.Location, error) {
	offset := strings.TrimSpace(b.UTCOffset)
	if offset == "Z" || offset == "" {
		return time.UTC, nil
	}

	t, err := time.Parse("-07:00", offset)
	if err != nil {
		return nil, fmt.Errorf("%w: business.utc_offset %q must look like +03:00", ErrInvalidConfig, b.UTCOffset)
	}
	_, seconds := t.Zone()
	return time.FixedZone("UTC"+offset, seconds), nil
}

// RetryBackoffDuration пауза перед первой повторной доставкой
func (o OutboxConfig) RetryBackoffDuration() time.Duration {
	return time.Duration(o.RetryBackoff) * time.Second
}

// TokenTTLDuration время жизни токена клиента
func (a AuthConfig) TokenTTLDuration() time.Duration {
	return time.Duration(a.TokenTTL) * time.Hour
}
