package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Telegram bot configuration.
	BotToken        string `mapstructure:"BOT_TOKEN"`
	WebhookURL      string `mapstructure:"WEBHOOK_URL"`
	ChannelUsername string `mapstructure:"CHANNEL_USERNAME"`
	ChannelMuted    bool   `mapstructure:"CHANNEL_MUTED"`

	// MongoDB holds the user profile store.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Google Calendar is the booking store.
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	CalendarID            string `mapstructure:"CALENDAR_ID"`
	CalendarEmbedURL      string `mapstructure:"CALENDAR_EMBED_URL"`
	CalendarTimeZone      string `mapstructure:"CALENDAR_TIMEZONE"`
	UTCOffsetHours        int    `mapstructure:"UTC_OFFSET_HOURS"`

	// Bookable facilities and their calendar event colour IDs.
	Facilities          []string          `mapstructure:"FACILITIES"`
	FacilityColours     map[string]string `mapstructure:"FACILITY_COLOURS"`
	AlternateFacilities map[string]string `mapstructure:"ALTERNATE_FACILITIES"`
	Companies           []string          `mapstructure:"COMPANIES"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`
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
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "keys/service_account.json")
	viper.SetDefault("CALENDAR_TIMEZONE", "Asia/Singapore")
	viper.SetDefault("UTC_OFFSET_HOURS", 8)
	viper.SetDefault("CHANNEL_MUTED", true)
	viper.SetDefault("FACILITIES", []string{"LT 1", "LT 2", "CONF ROOM", "RTS", "STINGRAY SQ"})
	viper.SetDefault("FACILITY_COLOURS", map[string]string{
		"LT 1":        "1",
		"LT 2":        "7",
		"CONF ROOM":   "2",
		"RTS":         "5",
		"STINGRAY SQ": "6",
	})
	viper.SetDefault("ALTERNATE_FACILITIES", map[string]string{
		"LT 1": "LT 2",
		"LT 2": "LT 1",
	})
	viper.SetDefault("COMPANIES", []string{"HQ", "ALPHA", "BRAVO", "CHARLIE", "SUPPORT"})

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location returns the fixed-offset zone all booking dates and times are
// interpreted in. No DST arithmetic is applied beyond this single offset.
func Location() *time.Location {
	return time.FixedZone(AppConfig.CalendarTimeZone, AppConfig.UTCOffsetHours*3600)
}

// IsFacility reports whether name is one of the configured facilities.
func IsFacility(name string) bool {
	for _, f := range AppConfig.Facilities {
		if f == name {
			return true
		}
	}
	return false
}

// AlternateFor returns the substitutable facility configured for name, or "".
func AlternateFor(name string) string {
	return AppConfig.AlternateFacilities[name]
}
