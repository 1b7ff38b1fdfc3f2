package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
[database]
host = "localhost"
user = "stella"
dbname = "stella_booking"
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	b := cfg.Booking
	assert.Equal(t, 30, b.SlotCadenceMinutes)
	assert.Equal(t, "09:00", b.BusinessHoursStart)
	assert.Equal(t, "18:00", b.BusinessHoursEnd)
	assert.Equal(t, []int{0}, b.ClosedWeekdays)
	assert.Equal(t, 4, b.MonthWorkers)
	assert.Equal(t, "es", b.CollationLocale)
}

func TestLoad_PendingBlocksDefaultsToTrue(t *testing.T) {
	// Ключ не задан - pending-брони блокируют слоты
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)
	assert.True(t, cfg.Booking.PendingBlocks)
}

func TestLoad_PendingBlocksExplicitFalse(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[booking]
pending_blocks = false
`))
	require.NoError(t, err)
	assert.False(t, cfg.Booking.PendingBlocks)
}

func TestLoad_ClosedWeekdaysExplicitEmpty(t *testing.T) {
	// Пустой список - салон открыт каждый день, дефолт не подставляется
	cfg, err := Load(writeConfig(t, minimalConfig+`
[booking]
closed_weekdays = []
`))
	require.NoError(t, err)
	assert.Empty(t, cfg.Booking.ClosedWeekdays)
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing database host", `
[database]
user = "stella"
dbname = "stella_booking"
`},
		{"cadence out of range", minimalConfig + `
[booking]
slot_cadence_minutes = 3
`},
		{"closed weekday out of range", minimalConfig + `
[booking]
closed_weekdays = [7]
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}
