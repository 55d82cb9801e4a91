package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Ledger   LedgerConfig
	Cache    CacheConfig
	Telegram TelegramConfig
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
}

type LedgerConfig struct {
	URL     string
	Timeout time.Duration
}

type CacheConfig struct {
	Path            string
	RefreshInterval time.Duration
}

type TelegramConfig struct {
	Token   string
	AdminID int64
}

// ServerConfig configures ledgerd.
type ServerConfig struct {
	Port     string
	Store    string
	BoltPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type LoggerConfig struct {
	Level string
}

// Load reads the environment, after merging the first .env file found in the
// working directory or its parents. Variables already set win over .env.
func Load() (*Config, error) {
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	ledgerTimeout, err := strconv.Atoi(getEnv("LEDGER_TIMEOUT_SECONDS", "10"))
	if err != nil {
		return nil, err
	}
	refresh, err := strconv.Atoi(getEnv("REFRESH_INTERVAL_SECONDS", "60"))
	if err != nil {
		return nil, err
	}
	adminID, err := strconv.ParseInt(getEnv("TELEGRAM_ADMIN_ID", "0"), 10, 64)
	if err != nil {
		return nil, err
	}

	return &Config{
		Ledger: LedgerConfig{
			URL:     getEnv("LEDGER_URL", "http://localhost:8080/api"),
			Timeout: time.Duration(ledgerTimeout) * time.Second,
		},
		Cache: CacheConfig{
			Path:            getEnv("CACHE_PATH", "money.db"),
			RefreshInterval: time.Duration(refresh) * time.Second,
		},
		Telegram: TelegramConfig{
			Token:   getEnv("TELEGRAM_TOKEN", ""),
			AdminID: adminID,
		},
		Server: ServerConfig{
			Port:     getEnv("LEDGERD_PORT", "8080"),
			Store:    getEnv("LEDGERD_STORE", "bolt"),
			BoltPath: getEnv("LEDGERD_BOLT_PATH", "ledger.db"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ledger"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
