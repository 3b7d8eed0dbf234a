package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	EventURL        string
	CheckInterval   time.Duration
	NavTimeout      time.Duration
	SelectorTimeout time.Duration

	DataFile       string
	LogFile        string
	HistoryCSVPath string

	HistoryDBEnabled bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MetricsAddr string
	ChromeBin   string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		EventURL:        getEnv("EVENT_URL", "https://www.eventim.co.uk/event/cem-yilmaz-eventim-apollo-20391162/?affiliate=PP2"),
		CheckInterval:   getEnvDuration("CHECK_INTERVAL", 3*time.Hour),
		NavTimeout:      getEnvDuration("NAV_TIMEOUT", 60*time.Second),
		SelectorTimeout: getEnvDuration("SELECTOR_TIMEOUT", 10*time.Second),

		DataFile:       getEnv("DATA_FILE", "seat_data.json"),
		LogFile:        getEnv("LOG_FILE", "seat_monitor.log"),
		HistoryCSVPath: getEnv("HISTORY_CSV_PATH", "./output/seat_history.csv"),

		HistoryDBEnabled: getEnvBool("HISTORY_DB_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "monitor"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "monitor123"),
		PostgresDB:       getEnv("POSTGRES_DB", "seat_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MetricsAddr: getEnv("METRICS_ADDR", ""),
		ChromeBin:   getEnv("CHROME_BIN", ""),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
