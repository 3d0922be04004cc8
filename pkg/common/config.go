package common

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/andersfylling/disgord"
	"github.com/joho/godotenv"
)

// Config holds the environment configuration of the bot.
type Config struct {
	DiscordToken     string
	DeveloperID      disgord.Snowflake
	CommandPrefix    string
	ReminderInterval time.Duration
	Debug            bool
	LogFile          string

	DatabaseDriver string
	DatabaseDSN    string
	MongoDatabase  string

	DeliveryRate  float64
	DeliveryBurst int
}

// LoadConfig reads the configuration from the environment.
// A .env file in the working directory is loaded first if it exists.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		// Discord bot token.
		DiscordToken: os.Getenv("DISCORD_TOKEN"),

		// Developer (Discord user) ID.
		DeveloperID: disgord.NewSnowflake(getUint("DEVELOPER_ID", 0)),

		// Global command prefix.
		CommandPrefix: getString("COMMAND_PREFIX", "!"),

		// Poll interval of the reminder workers.
		ReminderInterval: time.Duration(getUint("REMINDER_INTERVAL", 1000)) * time.Millisecond,

		Debug:   getBool("DEBUG", false),
		LogFile: getString("LOG_FILE", "reminderbot.log"),

		DatabaseDriver: strings.ToLower(getString("DATABASE_DRIVER", "sqlite3")),
		DatabaseDSN:    getString("DATABASE_DSN", "reminderbot.db"),
		MongoDatabase:  getString("MONGO_DATABASE", "reminderbot"),

		DeliveryRate:  getFloat("DELIVERY_RATE", 5),
		DeliveryBurst: int(getUint("DELIVERY_BURST", 5)),
	}

	if cfg.DiscordToken == "" {
		return nil, errors.New("DISCORD_TOKEN is not set")
	}
	if cfg.ReminderInterval <= 0 {
		cfg.ReminderInterval = time.Second
	}

	return cfg, nil
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getUint(key string, def uint64) uint64 {
	v, err := strconv.ParseUint(os.Getenv(key), 10, 64)
	if err != nil {
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
