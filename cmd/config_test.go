package cmd

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig(envOf(nil))

	require.NoError(t, err)
	assert.Equal(t, "8080", config.HTTPPort)
	assert.Equal(t, slog.LevelInfo, config.LogLevel)
	assert.Equal(t, StorageFile, config.StorageDriver)
	assert.Equal(t, "data", config.DataDir)
	assert.Equal(t, "menu.yaml", config.MenuPath)
	assert.Equal(t, "America/Mexico_City", config.PromoTZ)
	assert.Equal(t, time.Thursday, config.PromoWeekday)
	assert.Equal(t, "ramen", config.PromoCategory)
	assert.Equal(t, "2x1", config.PromoType)
	assert.Empty(t, config.PromoConfirmText)
	assert.Equal(t, 180*time.Second, config.DeliveryGracePeriod)
	assert.Empty(t, config.WSAllowedOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	config, err := LoadConfig(envOf(map[string]string{
		"HTTP_PORT":             "9000",
		"LOG_LEVEL":             "debug",
		"STORAGE_DRIVER":        "Postgres",
		"DB_HOST":               "db",
		"DB_USER":               "pos",
		"DB_PASSWORD":           "secret",
		"DB_NAME":               "pos",
		"PROMO_TZ":              "Europe/Madrid",
		"PROMO_WEEKDAY":         "fri",
		"PROMO_CONFIRM_TEXT":    "YES",
		"DELIVERY_GRACE_PERIOD": "90",
		"WS_ALLOWED_ORIGINS":    " https://pos.local, ,https://kds.local",
	}))

	require.NoError(t, err)
	assert.Equal(t, "9000", config.HTTPPort)
	assert.Equal(t, slog.LevelDebug, config.LogLevel)
	assert.Equal(t, StoragePostgres, config.StorageDriver)
	assert.Equal(t, time.Friday, config.PromoWeekday)
	assert.Equal(t, "YES", config.PromoConfirmText)
	assert.Equal(t, 90*time.Second, config.DeliveryGracePeriod)
	assert.Equal(t, []string{"https://pos.local", "https://kds.local"}, config.WSAllowedOrigins)
	assert.Equal(t, "host=db port=5432 user=pos password=secret dbname=pos sslmode=disable", config.DSN())
}

func TestLoadConfig_Rejections(t *testing.T) {
	cases := map[string]map[string]string{
		"log level":         {"LOG_LEVEL": "loud"},
		"weekday":           {"PROMO_WEEKDAY": "someday"},
		"grace":             {"DELIVERY_GRACE_PERIOD": "soon"},
		"negative grace":    {"DELIVERY_GRACE_PERIOD": "-5"},
		"driver":            {"STORAGE_DRIVER": "mongo"},
		"postgres no creds": {"STORAGE_DRIVER": "postgres"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(envOf(env))
			assert.Error(t, err)
		})
	}
}

func TestParseGracePeriod(t *testing.T) {
	d, err := parseGracePeriod("2m30s")
	require.NoError(t, err)
	assert.Equal(t, 150*time.Second, d)

	d, err = parseGracePeriod("")
	require.NoError(t, err)
	assert.Equal(t, 180*time.Second, d)

	_, err = parseGracePeriod("0s")
	assert.Error(t, err)
}
