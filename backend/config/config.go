package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// Storage backend: memory, sqlite, postgres, badger or redis.
	StorageDriver string
	SQLitePath    string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	BadgerPath    string
	RedisAddr     string
	RedisPrefix   string

	JWTSecret      string
	LogMode        string
	LoginDelay     time.Duration
	ChatSimulation bool
	AppVersion     string

	// Warnings collects values that could not be parsed and fell back to defaults.
	Warnings []string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		StorageDriver: getEnv("STORAGE_DRIVER", "sqlite"),
		SQLitePath:    getEnv("SQLITE_PATH", "pluain.db"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "pluain"),
		BadgerPath:    getEnv("BADGER_PATH", "data/badger"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPrefix:   getEnv("REDIS_PREFIX", "pluain:"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		LogMode:       getEnv("LOG_MODE", "development"),
		AppVersion:    getEnv("APP_VERSION", "1.0.0"),
	}
	cfg.LoginDelay = cfg.getEnvAsDuration("LOGIN_DELAY", time.Second)
	cfg.ChatSimulation = cfg.getEnvAsBool("CHAT_SIMULATION", true)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func (c *Config) getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		c.Warnings = append(c.Warnings, key+": invalid duration "+strconv.Quote(raw))
		return defaultValue
	}
	return d
}

func (c *Config) getEnvAsBool(key string, defaultValue bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		c.Warnings = append(c.Warnings, key+": invalid bool "+strconv.Quote(raw))
		return defaultValue
	}
	return b
}
