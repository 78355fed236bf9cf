package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.local"
port = 5432
user = "svc"
password = "secret"
dbname = "massage"
sslmode = "require"

[logs]
file = "logs/app.log"
level = "debug"

[metrics]
enabled = true

[booking]
client_lead_time_minutes = 45
daily_booking_cap = 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Logs.Level)

	// Дефолты для незаполненных полей
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "massage-service", cfg.Metrics.ServiceName)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable",
	}

	assert.Equal(t, "host=localhost port=5432 user=u password=p dbname=d sslmode=disable", cfg.DSN())
}

func TestBookingPolicy(t *testing.T) {
	t.Run("пустая секция дает дефолтную политику", func(t *testing.T) {
		var cfg BookingConfig
		assert.Equal(t, domain.DefaultBookingPolicy(), cfg.BookingPolicy())
	})

	t.Run("заполненные поля перекрывают дефолты", func(t *testing.T) {
		cfg := BookingConfig{
			ClientLeadTimeMinutes: 45,
			DailyBookingCap:       3,
		}

		policy := cfg.BookingPolicy()
		assert.Equal(t, 45*time.Minute, policy.ClientLeadTime)
		assert.Equal(t, 3, policy.DailyBookingCap)

		// Остальное остается дефолтным
		defaults := domain.DefaultBookingPolicy()
		assert.Equal(t, defaults.LeadBuffer, policy.LeadBuffer)
		assert.Equal(t, defaults.SpecialistFlyover, policy.SpecialistFlyover)
		assert.Equal(t, defaults.EarlyComerTolerance, policy.EarlyComerTolerance)
		assert.Equal(t, defaults.MaxWindowSlots, policy.MaxWindowSlots)
	})
}
