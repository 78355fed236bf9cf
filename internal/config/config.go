package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
)

// Config конфигурация сервиса, загружается из TOML-файла
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig политика бронирования
// Нулевые значения означают "использовать дефолт"
type BookingConfig struct {
	EarlyComerToleranceMinutes int `toml:"early_comer_tolerance_minutes"`
	ClientLeadTimeMinutes      int `toml:"client_lead_time_minutes"`
	LeadBufferMinutes          int `toml:"lead_buffer_minutes"`
	SpecialistFlyoverMinutes   int `toml:"specialist_flyover_minutes"`
	MaxWindowSlots             int `toml:"max_window_slots"`
	DailyBookingCap            int `toml:"daily_booking_cap"`
}

// Load загружает конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "massage-service"
	}

	return &cfg, nil
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// BookingPolicy собирает доменную политику бронирования,
// подставляя дефолты вместо незаполненных полей
func (c *BookingConfig) BookingPolicy() domain.BookingPolicy {
	policy := domain.DefaultBookingPolicy()

	if c.EarlyComerToleranceMinutes > 0 {
		policy.EarlyComerTolerance = time.Duration(c.EarlyComerToleranceMinutes) * time.Minute
	}
	if c.ClientLeadTimeMinutes > 0 {
		policy.ClientLeadTime = time.Duration(c.ClientLeadTimeMinutes) * time.Minute
	}
	if c.LeadBufferMinutes > 0 {
		policy.LeadBuffer = time.Duration(c.LeadBufferMinutes) * time.Minute
	}
	if c.SpecialistFlyoverMinutes > 0 {
		policy.SpecialistFlyover = time.Duration(c.SpecialistFlyoverMinutes) * time.Minute
	}
	if c.MaxWindowSlots > 0 {
		policy.MaxWindowSlots = c.MaxWindowSlots
	}
	if c.DailyBookingCap > 0 {
		policy.DailyBookingCap = c.DailyBookingCap
	}

	return policy
}
