package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
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
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN собирает строку подключения
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig бизнес-настройки движка доступности
type BookingConfig struct {
	// Шаг сетки слотов в минутах
	SlotCadenceMinutes int `toml:"slot_cadence_minutes"`
	// Рабочие часы салона - fallback, когда у мастера нет
	// индивидуального расписания на день недели
	BusinessHoursStart string `toml:"business_hours_start"`
	BusinessHoursEnd   string `toml:"business_hours_end"`
	// Дни недели, когда салон закрыт всегда (0=воскресенье ... 6=суббота).
	// Записи в расписаниях мастеров на эти дни игнорируются.
	ClosedWeekdays []int `toml:"closed_weekdays"`
	// Блокируют ли слот брони в статусе pending
	PendingBlocks bool `toml:"pending_blocks"`
	// Параллелизм прекомпьюта месяца
	MonthWorkers int `toml:"month_workers"`
	// Таймаут обсчета одного дня при прекомпьюте месяца, секунды
	DayTimeoutSeconds int `toml:"day_timeout_seconds"`
	// Бюджет запросов к БД при прекомпьюте месяца (token bucket)
	FetchRatePerSecond float64 `toml:"fetch_rate_per_second"`
	FetchBurst         int     `toml:"fetch_burst"`
	// Локаль сортировки каталога (BCP 47, например "es")
	CollationLocale string `toml:"collation_locale"`
}

// Load читает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults(md)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults(md toml.MetaData) {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "stella-booking-service"
	}

	b := &c.Booking
	if b.SlotCadenceMinutes == 0 {
		b.SlotCadenceMinutes = 30
	}
	if b.BusinessHoursStart == "" {
		b.BusinessHoursStart = "09:00"
	}
	if b.BusinessHoursEnd == "" {
		b.BusinessHoursEnd = "18:00"
	}
	if b.ClosedWeekdays == nil {
		// Салон не работает по воскресеньям
		b.ClosedWeekdays = []int{0}
	}
	// false и "не задано" для bool неразличимы по zero value,
	// поэтому смотрим в метаданные decode
	if !md.IsDefined("booking", "pending_blocks") {
		b.PendingBlocks = true
	}
	if b.MonthWorkers == 0 {
		b.MonthWorkers = 4
	}
	if b.DayTimeoutSeconds == 0 {
		b.DayTimeoutSeconds = 3
	}
	if b.FetchRatePerSecond == 0 {
		b.FetchRatePerSecond = 20
	}
	if b.FetchBurst == 0 {
		b.FetchBurst = 10
	}
	if b.CollationLocale == "" {
		b.CollationLocale = "es"
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if c.Booking.SlotCadenceMinutes < 5 || c.Booking.SlotCadenceMinutes > 240 {
		return fmt.Errorf("booking.slot_cadence_minutes must be within [5, 240]")
	}
	for _, wd := range c.Booking.ClosedWeekdays {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("booking.closed_weekdays: weekday %d out of range [0, 6]", wd)
		}
	}
	if c.Booking.MonthWorkers < 1 {
		return fmt.Errorf("booking.month_workers must be positive")
	}
	return nil
}
