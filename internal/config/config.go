package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Типы хранилищ
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

var (
	// ErrInvalidConfig возвращается при некорректной конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	BookingAPI BookingAPIConfig `toml:"booking_api"`
	Schedule   ScheduleConfig   `toml:"schedule"`
	Session    SessionConfig    `toml:"session"`
	Ledger     LedgerConfig     `toml:"ledger"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingAPIConfig настройки внешнего Booking API
type BookingAPIConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// ScheduleConfig часы работы барбершопа
type ScheduleConfig struct {
	Timezone        string           `toml:"timezone"`
	OpenTime        types.TimeString `toml:"open_time"`
	CloseTime       types.TimeString `toml:"close_time"`
	SlotStepMinutes int              `toml:"slot_step_minutes"`
}

// SessionConfig настройки хранилища сессий
type SessionConfig struct {
	Storage    string `toml:"storage"` // memory | redis
	RedisAddr  string `toml:"redis_addr"`
	RedisDB    int    `toml:"redis_db"`
	TTLHours   int    `toml:"ttl_hours"`
	CookieName string `toml:"cookie_name"`
}

// LedgerConfig настройки журнала отправленных записей (идемпотентность)
type LedgerConfig struct {
	Storage         string `toml:"storage"` // memory | postgres
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	DSNOverride     string `toml:"dsn"`
	PendingTTL      int    `toml:"pending_ttl"` // секунды, после них незавершённый резерв ключа снимается
}

// PendingTTLDuration возвращает срок жизни незавершённого резерва
func (c LedgerConfig) PendingTTLDuration() time.Duration {
	return time.Duration(c.PendingTTL) * time.Second
}

// DSN возвращает строку подключения к PostgreSQL
func (c LedgerConfig) DSN() string {
	if c.DSNOverride != "" {
		return c.DSNOverride
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Location возвращает часовой пояс барбершопа
func (c ScheduleConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// SessionTTL возвращает время жизни сессии
func (c SessionConfig) SessionTTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// Load загружает конфигурацию из TOML файла
// Перед этим подхватывает .env (если есть) и применяет переопределения из переменных окружения
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			Path:        "/metrics",
			ServiceName: "barber-booking",
		},
		BookingAPI: BookingAPIConfig{
			URL:     "http://localhost:8000",
			Timeout: 5,
		},
		Schedule: ScheduleConfig{
			Timezone:        "Europe/Moscow",
			OpenTime:        types.MustTimeString("09:00"),
			CloseTime:       types.MustTimeString("20:45"),
			SlotStepMinutes: 15,
		},
		Session: SessionConfig{
			Storage:    StorageMemory,
			TTLHours:   24 * 7,
			CookieName: "barber_session",
		},
		Ledger: LedgerConfig{
			Storage:         StorageMemory,
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			PendingTTL:      120,
		},
	}
}

// applyEnv применяет переопределения из окружения
func (c *Config) applyEnv() error {
	if v := os.Getenv("BOOKING_API_URL"); v != "" {
		c.BookingAPI.URL = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT=%q is not a number", ErrInvalidConfig, v)
		}
		c.Server.HTTPPort = port
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Session.RedisAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		c.Ledger.DSNOverride = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logs.Level = v
	}
	return nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.BookingAPI.URL == "" {
		return fmt.Errorf("%w: booking_api.url is required", ErrInvalidConfig)
	}
	if c.BookingAPI.Timeout <= 0 {
		return fmt.Errorf("%w: booking_api.timeout must be positive", ErrInvalidConfig)
	}

	if _, err := c.Schedule.Location(); err != nil {
		return fmt.Errorf("%w: schedule.timezone=%q: %v", ErrInvalidConfig, c.Schedule.Timezone, err)
	}
	if !c.Schedule.OpenTime.IsBefore(c.Schedule.CloseTime) {
		return fmt.Errorf("%w: schedule.open_time must be before close_time", ErrInvalidConfig)
	}
	if c.Schedule.SlotStepMinutes <= 0 || 60%c.Schedule.SlotStepMinutes != 0 {
		return fmt.Errorf("%w: schedule.slot_step_minutes must divide 60", ErrInvalidConfig)
	}

	switch c.Session.Storage {
	case StorageMemory:
	case StorageRedis:
		if c.Session.RedisAddr == "" {
			return fmt.Errorf("%w: session.redis_addr is required for redis storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown session.storage=%q", ErrInvalidConfig, c.Session.Storage)
	}
	if c.Session.TTLHours <= 0 {
		return fmt.Errorf("%w: session.ttl_hours must be positive", ErrInvalidConfig)
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("%w: session.cookie_name is required", ErrInvalidConfig)
	}

	switch c.Ledger.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("%w: unknown ledger.storage=%q", ErrInvalidConfig, c.Ledger.Storage)
	}
	if c.Ledger.PendingTTL <= 0 {
		return fmt.Errorf("%w: ledger.pending_ttl must be positive", ErrInvalidConfig)
	}

	return nil
}
