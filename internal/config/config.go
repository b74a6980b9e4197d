package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// DefaultTimezone часовой пояс клиники по умолчанию
const DefaultTimezone = "Atlantic/Reykjavik"

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Clinic       ClinicConfig       `toml:"clinic"`
	AuditService AuditServiceConfig `toml:"audit_service"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" validate:"required,min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" validate:"min=1"`
	WriteTimeout    int `toml:"write_timeout" validate:"min=1"`
	IdleTimeout     int `toml:"idle_timeout" validate:"min=1"`
	ShutdownTimeout int `toml:"shutdown_timeout" validate:"min=1"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" validate:"required"`
	Port            int    `toml:"port" validate:"required,min=1,max=65535"`
	User            string `toml:"user" validate:"required"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" validate:"required"`
	SSLMode         string `toml:"sslmode" validate:"oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `toml:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // в секундах, 0 - без ограничения
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
	File  string `toml:"file"` // пусто - только stdout
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path" validate:"required_if=Enabled true"`
	ServiceName string `toml:"service_name" validate:"required"`
}

// ClinicConfig настройки клиники
type ClinicConfig struct {
	Timezone            string `toml:"timezone" validate:"required,timezone"`
	SlotLengthMinutes   int    `toml:"slot_length_minutes"`
	BufferMinutes       int    `toml:"buffer_minutes"`
	BlockPublicHolidays *bool  `toml:"block_public_holidays"`
}

// AuditServiceConfig настройки сервиса аудита
// Пустой URL - события только логируются
type AuditServiceConfig struct {
	URL     string `toml:"url" validate:"omitempty,url"`
	Timeout int    `toml:"timeout"` // в секундах
}

// Load загружает конфигурацию из TOML файла
// Перед чтением переменных окружения подгружается .env, если он есть
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := c.Clinic.Policy().Validate(); err != nil {
		return fmt.Errorf("config validation failed: clinic: %w", err)
	}
	return nil
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location возвращает часовой пояс клиники
func (c ClinicConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Policy возвращает политику расписания по умолчанию (используется, пока в БД нет настроек)
func (c ClinicConfig) Policy() domain.SchedulingPolicy {
	policy := domain.DefaultSchedulingPolicy()
	if c.SlotLengthMinutes != 0 {
		policy.SlotLengthMinutes = c.SlotLengthMinutes
	}
	if c.BufferMinutes != 0 {
		policy.BufferMinutes = c.BufferMinutes
	}
	if c.BlockPublicHolidays != nil {
		policy.BlockPublicHolidays = *c.BlockPublicHolidays
	}
	return policy
}

// TimeoutDuration возвращает таймаут запросов к сервису аудита
func (a AuditServiceConfig) TimeoutDuration() time.Duration {
	return time.Duration(a.Timeout) * time.Second
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         5432,
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "clinic-scheduler",
		},
		Clinic: ClinicConfig{
			Timezone: DefaultTimezone,
		},
		AuditService: AuditServiceConfig{
			Timeout: 5,
		},
	}
}

// applyEnv переопределяет значения из переменных окружения
func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_PORT %q: %w", v, err)
		}
		c.Server.HTTPPort = port
	}
	if v := os.Getenv("CLINIC_TIMEZONE"); v != "" {
		c.Clinic.Timezone = v
	}
	if v := os.Getenv("AUDIT_SERVICE_URL"); v != "" {
		c.AuditService.URL = v
	}
	return nil
}
