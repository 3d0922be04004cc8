package common

import (
	"testing"
	"time"

	"github.com/andersfylling/disgord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	for _, key := range []string{"DEVELOPER_ID", "COMMAND_PREFIX", "REMINDER_INTERVAL", "DEBUG", "DATABASE_DRIVER", "DATABASE_DSN", "DELIVERY_RATE"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "!", cfg.CommandPrefix)
	assert.Equal(t, time.Second, cfg.ReminderInterval)
	assert.Equal(t, "sqlite3", cfg.DatabaseDriver)
	assert.Equal(t, "reminderbot.db", cfg.DatabaseDSN)
	assert.Equal(t, float64(5), cfg.DeliveryRate)
	assert.False(t, cfg.Debug)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DEVELOPER_ID", "42")
	t.Setenv("COMMAND_PREFIX", "?")
	t.Setenv("REMINDER_INTERVAL", "250")
	t.Setenv("DATABASE_DRIVER", "MongoDB")
	t.Setenv("DEBUG", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, disgord.NewSnowflake(42), cfg.DeveloperID)
	assert.Equal(t, "?", cfg.CommandPrefix)
	assert.Equal(t, 250*time.Millisecond, cfg.ReminderInterval)
	assert.Equal(t, "mongodb", cfg.DatabaseDriver)
	assert.True(t, cfg.Debug)
}

func TestLoadConfigRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
