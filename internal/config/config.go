package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Драйверы хранилища
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config содержит конфигурацию сервиса
type Config struct {
	Port int

	StoreDriver         string
	MongoURI            string
	MongoDB             string
	MongoConnectTimeout time.Duration

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	BalanceCacheTTL time.Duration

	PaymentMaxRetries    int
	PaymentRetryInterval time.Duration

	MaturitySweepSchedule string

	MaxPrincipal  float64
	MaxTermMonths int

	OTELEndpoint    string
	OTELServiceName string
	LogLevel        string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getEnvInt("PORT", 8585),
		StoreDriver:           getEnvString("STORE_DRIVER", StoreMongo),
		MongoURI:              getEnvString("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:               getEnvString("MONGO_DB", "coinme"),
		MongoConnectTimeout:   getEnvDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		RedisAddr:             getEnvString("REDIS_ADDR", ""),
		RedisPassword:         getEnvString("REDIS_PASSWORD", ""),
		RedisDB:               getEnvInt("REDIS_DB", 0),
		BalanceCacheTTL:       getEnvDuration("BALANCE_CACHE_TTL", 5*time.Minute),
		PaymentMaxRetries:     getEnvInt("PAYMENT_MAX_RETRIES", 5),
		PaymentRetryInterval:  getEnvDuration("PAYMENT_RETRY_INTERVAL", 20*time.Millisecond),
		MaturitySweepSchedule: os.Getenv("MATURITY_SWEEP_SCHEDULE"),
		MaxPrincipal:          getEnvFloat("MAX_PRINCIPAL", 1e9),
		MaxTermMonths:         getEnvInt("MAX_TERM_MONTHS", 600),
		OTELEndpoint:          getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:       getEnvString("OTEL_SERVICE_NAME", "coinme"),
		LogLevel:              getEnvString("LOG_LEVEL", "INFO"),
	}

	// пустое значение отключает обход, отсутствие переменной включает его раз в час
	if _, ok := os.LookupEnv("MATURITY_SWEEP_SCHEDULE"); !ok {
		cfg.MaturitySweepSchedule = "@hourly"
	}

	switch cfg.StoreDriver {
	case StoreMongo, StoreMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q, expected mongo or memory", cfg.StoreDriver)
	}
	if cfg.PaymentMaxRetries < 0 {
		return nil, fmt.Errorf("PAYMENT_MAX_RETRIES must not be negative, got %d", cfg.PaymentMaxRetries)
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию без чтения окружения
func Default() *Config {
	return &Config{
		Port:                  8585,
		StoreDriver:           StoreMemory,
		MongoDB:               "coinme",
		MongoConnectTimeout:   10 * time.Second,
		BalanceCacheTTL:       5 * time.Minute,
		PaymentMaxRetries:     5,
		PaymentRetryInterval:  20 * time.Millisecond,
		MaturitySweepSchedule: "@hourly",
		MaxPrincipal:          1e9,
		MaxTermMonths:         600,
		OTELServiceName:       "coinme",
		LogLevel:              "INFO",
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// CacheEnabled сообщает, настроен ли Redis для кеша балансов
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}
