package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB  int    `mapstructure:"REDIS_SESSION_DB"`
	RedisCatalogDB  int    `mapstructure:"REDIS_CATALOG_DB"`
	RedisReminderDB int    `mapstructure:"REDIS_REMINDER_DB"`

	// Mongo archive for confirmed bookings.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Upstream services the engine consumes.
	TenantID        string `mapstructure:"TENANT_ID"`
	CatalogURL      string `mapstructure:"CATALOG_URL"`
	AvailabilityURL string `mapstructure:"AVAILABILITY_URL"`
	BookingsURL     string `mapstructure:"BOOKINGS_URL"`

	// Session handling.
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`
	SessionSecret     string `mapstructure:"SESSION_SECRET"`

	// Deposit policy. Both the wizard totals and the payment summary read
	// these, so there is a single source of truth for the booking fee.
	DepositRatePercent int   `mapstructure:"DEPOSIT_RATE_PERCENT"`
	DepositMinimum     int64 `mapstructure:"DEPOSIT_MINIMUM"`

	// Pricing knobs, in minor currency units or percent.
	TaxRatePercent       int   `mapstructure:"TAX_RATE_PERCENT"`
	PeakSurcharge        int64 `mapstructure:"PEAK_SURCHARGE"`
	InstallmentThreshold int64 `mapstructure:"INSTALLMENT_THRESHOLD"`

	// Availability window.
	CalendarDays int `mapstructure:"CALENDAR_DAYS"`
	CatalogTTL   int `mapstructure:"CATALOG_TTL_MINUTES"`

	// Opening hours, minutes from midnight. Sundays are closed.
	WeekdayOpenMinute   int `mapstructure:"WEEKDAY_OPEN_MINUTE"`
	WeekdayCloseMinute  int `mapstructure:"WEEKDAY_CLOSE_MINUTE"`
	SaturdayOpenMinute  int `mapstructure:"SATURDAY_OPEN_MINUTE"`
	SaturdayCloseMinute int `mapstructure:"SATURDAY_CLOSE_MINUTE"`

	// Appointment reminders.
	RemindersEnabled    bool `mapstructure:"REMINDERS_ENABLED"`
	ReminderLeadMinutes int  `mapstructure:"REMINDER_LEAD_MINUTES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_CATALOG_DB", 1)
	viper.SetDefault("REDIS_REMINDER_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("TENANT_ID", "ccb12b4d-ade6-467d-a614-7c9d198ddc70")
	viper.SetDefault("CATALOG_URL", "http://localhost:8787")
	viper.SetDefault("AVAILABILITY_URL", "http://localhost:8787")
	viper.SetDefault("BOOKINGS_URL", "http://localhost:8787")
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("SESSION_SECRET", "")
	viper.SetDefault("DEPOSIT_RATE_PERCENT", 20)
	viper.SetDefault("DEPOSIT_MINIMUM", 5000)
	viper.SetDefault("TAX_RATE_PERCENT", 15)
	viper.SetDefault("PEAK_SURCHARGE", 2000)
	viper.SetDefault("INSTALLMENT_THRESHOLD", 20000)
	viper.SetDefault("CALENDAR_DAYS", 30)
	viper.SetDefault("CATALOG_TTL_MINUTES", 10)
	viper.SetDefault("WEEKDAY_OPEN_MINUTE", 9*60)
	viper.SetDefault("WEEKDAY_CLOSE_MINUTE", 17*60)
	viper.SetDefault("SATURDAY_OPEN_MINUTE", 8*60)
	viper.SetDefault("SATURDAY_CLOSE_MINUTE", 16*60)
	viper.SetDefault("REMINDERS_ENABLED", true)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 120)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}
