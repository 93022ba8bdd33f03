package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"kitchenpos/internal/core/domain/model/promo"
	"kitchenpos/internal/jobs"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTPPort      string
	LogLevel      slog.Level
	StorageDriver string
	DataDir       string
	MenuPath      string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	PromoTZ          string
	PromoWeekday     time.Weekday
	PromoCategory    string
	PromoType        string
	PromoConfirmText string

	DeliveryGracePeriod time.Duration

	WSAllowedOrigins []string
}

// LoadConfig reads the configuration through getenv, normally os.Getenv after the
// .env file was loaded. Everything but the database credentials has a default.
func LoadConfig(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	config := Config{
		HTTPPort:         get("HTTP_PORT", "8080"),
		StorageDriver:    strings.ToLower(get("STORAGE_DRIVER", StorageFile)),
		DataDir:          get("DATA_DIR", "data"),
		MenuPath:         get("MENU_PATH", "menu.yaml"),
		DBHost:           get("DB_HOST", ""),
		DBPort:           get("DB_PORT", "5432"),
		DBUser:           get("DB_USER", ""),
		DBPassword:       getenv("DB_PASSWORD"),
		DBName:           get("DB_NAME", ""),
		DBSslMode:        get("DB_SSLMODE", "disable"),
		PromoTZ:          get("PROMO_TZ", promo.DefaultTimeZone),
		PromoCategory:    get("PROMO_CATEGORY", promo.DefaultCategory),
		PromoType:        get("PROMO_TYPE", promo.DefaultType),
		PromoConfirmText: get("PROMO_CONFIRM_TEXT", ""),
		WSAllowedOrigins: splitList(getenv("WS_ALLOWED_ORIGINS")),
	}

	if err := config.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	weekday, err := promo.ParseWeekday(getenv("PROMO_WEEKDAY"))
	if err != nil {
		return Config{}, fmt.Errorf("PROMO_WEEKDAY: %w", err)
	}
	config.PromoWeekday = weekday

	grace, err := parseGracePeriod(getenv("DELIVERY_GRACE_PERIOD"))
	if err != nil {
		return Config{}, fmt.Errorf("DELIVERY_GRACE_PERIOD: %w", err)
	}
	config.DeliveryGracePeriod = grace

	switch config.StorageDriver {
	case StorageFile:
	case StoragePostgres:
		if config.DBHost == "" || config.DBUser == "" || config.DBName == "" {
			return Config{}, fmt.Errorf("STORAGE_DRIVER=%s needs DB_HOST, DB_USER and DB_NAME", StoragePostgres)
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER: unknown driver %q", config.StorageDriver)
	}

	return config, nil
}

// DSN is the gorm postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// parseGracePeriod accepts a Go duration ("3m", "90s") or a plain number of seconds.
func parseGracePeriod(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return jobs.DefaultGracePeriod, nil
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		if seconds <= 0 {
			return 0, fmt.Errorf("%d is not a positive number of seconds", seconds)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s is not a positive duration", raw)
	}
	return d, nil
}

// splitList turns "a, b,,c" into [a b c].
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
