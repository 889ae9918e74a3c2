package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"
	_ "time/tzdata" // база часовых поясов для образов без zoneinfo

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла
// Например BOOKING_DATABASE_PASSWORD или BOOKING_AUTH_JWT_SECRET
// Имена вложенных полей разбиваются по словам (split_words), теги envconfig
// не используются: envconfig подставил бы переменные без префикса (USER, PATH)
const EnvPrefix = "BOOKING"

var (
	// ErrReadConfig возвращается, когда не удалось прочитать файл конфигурации
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig возвращается, когда конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid config")
)

type Config struct {
	Server     ServerConfig     `toml:"server" split_words:"true"`
	Database   DatabaseConfig   `toml:"database" split_words:"true"`
	Logs       LogsConfig       `toml:"logs" split_words:"true"`
	Metrics    MetricsConfig    `toml:"metrics" split_words:"true"`
	Tracing    TracingConfig    `toml:"tracing" split_words:"true"`
	Auth       AuthConfig       `toml:"auth" split_words:"true"`
	Booking    BookingConfig    `toml:"booking" split_words:"true"`
	RateLimit  RateLimitConfig  `toml:"rate_limit" split_words:"true"`
	Migrations MigrationsConfig `toml:"migrations" split_words:"true"`
}

// ServerConfig таймауты задаются в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type LogsConfig struct {
	Level string `toml:"level" split_words:"true"`
	File  string `toml:"file" split_words:"true"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// TracingConfig пустой Endpoint отключает трассировку
type TracingConfig struct {
	Endpoint string `toml:"endpoint" split_words:"true"`
	Insecure bool   `toml:"insecure" split_words:"true"`
}

// AuthConfig секрет HS256 для проверки bearer токенов
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" split_words:"true"`
}

// BookingConfig часовой пояс барбершопов и сетка слотов
type BookingConfig struct {
	TimeZone        string `toml:"time_zone" split_words:"true"`
	OpeningTime     string `toml:"opening_time" split_words:"true"`
	ClosingTime     string `toml:"closing_time" split_words:"true"`
	SlotStepMinutes int    `toml:"slot_step_minutes" split_words:"true"`
}

// Location загружает часовой пояс по имени IANA
func (b BookingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(b.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: booking.time_zone %q: %v", ErrInvalidConfig, b.TimeZone, err)
	}
	return loc, nil
}

// Schedule собирает доменную сетку слотов
func (b BookingConfig) Schedule() (domain.SlotSchedule, error) {
	loc, err := b.Location()
	if err != nil {
		return domain.SlotSchedule{}, err
	}

	opening, err := types.NewTimeStringFromString(b.OpeningTime)
	if err != nil {
		return domain.SlotSchedule{}, fmt.Errorf("%w: booking.opening_time: %w", ErrInvalidConfig, err)
	}
	closing, err := types.NewTimeStringFromString(b.ClosingTime)
	if err != nil {
		return domain.SlotSchedule{}, fmt.Errorf("%w: booking.closing_time: %w", ErrInvalidConfig, err)
	}

	schedule := domain.SlotSchedule{
		Location:    loc,
		OpeningTime: opening,
		ClosingTime: closing,
		StepMinutes: b.SlotStepMinutes,
	}
	if err := schedule.Validate(); err != nil {
		return domain.SlotSchedule{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return schedule, nil
}

// RateLimitConfig лимит создания бронирований на один IP
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled" split_words:"true"`
	RequestsPerSecond float64 `toml:"requests_per_second" split_words:"true"`
	Burst             int     `toml:"burst" split_words:"true"`
}

type MigrationsConfig struct {
	AutoApply bool `toml:"auto_apply" split_words:"true"`
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "barbershop",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "barbershop-booking",
		},
		Booking: BookingConfig{
			TimeZone:        domain.DefaultTimeZone,
			OpeningTime:     domain.DefaultOpeningTime,
			ClosingTime:     domain.DefaultClosingTime,
			SlotStepMinutes: domain.DefaultSlotStepMinutes,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 1,
			Burst:             5,
		},
		Migrations: MigrationsConfig{
			AutoApply: true,
		},
	}
}

// Load читает конфигурацию в три слоя:
// 1. значения по умолчанию и TOML файл path (если файла нет, используются значения по умолчанию)
// 2. .env из текущей директории (если есть)
// 3. переменные окружения с префиксом BOOKING
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrReadConfig, path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: load .env: %v", ErrReadConfig, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrReadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные поля и согласованность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.requests_per_second and rate_limit.burst must be positive", ErrInvalidConfig)
	}
	if _, err := c.Booking.Schedule(); err != nil {
		return err
	}
	return nil
}
