package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported storage drivers
const (
	storageMongo    = "mongo"
	storagePostgres = "postgres"
)

// config holds application, storage, cache, Kafka and logging settings.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	StorageDriver string

	MongoURI            string
	MongoDB             string
	MongoCollection     string
	MongoConnectTimeout time.Duration

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisExp          time.Duration

	KafkaBrokers []string
	KafkaTopic   string
}

// parseConfig loads environment variables from a file and returns
// the application configuration. Variables already set in the process environment win.
func parseConfig(path string) (*config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	var err error
	getInt := func(key, defaultValue string) int {
		if err != nil {
			return 0
		}
		var n int
		if n, err = strconv.Atoi(getEnv(key, defaultValue)); err != nil {
			err = fmt.Errorf("%s: %w", key, err)
		}
		return n
	}

	cfg := &config{
		// Application config
		AppHost:  getEnv("APP_HOST", ""),
		AppPort:  getEnv("APP_PORT", "5000"),
		LogLevel: getEnv("APP_LOG_LEVEL", "info"),

		StorageDriver: getEnv("STORAGE_DRIVER", storageMongo),

		// MongoDB config
		MongoURI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:             getEnv("MONGO_DB", "transaction_db"),
		MongoCollection:     getEnv("MONGO_COLLECTION", "transactions"),
		MongoConnectTimeout: time.Duration(getInt("MONGO_CONNECT_TIMEOUT_SECOND", "10")) * time.Second,

		// PostgreSQL config
		PGHost:         getEnv("POSTGRES_HOST", "localhost"),
		PGPort:         getInt("POSTGRES_PORT", "5432"),
		PGUser:         getEnv("POSTGRES_USER", "user"),
		PGPassword:     getEnv("POSTGRES_PASSWORD", "password"),
		PGDB:           getEnv("POSTGRES_DB", "database"),
		PGMaxOpenConns: getInt("POSTGRES_MAX_OPEN_CONNS", "16"),
		PGMaxIdleConns: getInt("POSTGRES_MAX_IDLE_CONNS", "8"),

		// Redis config, cache disabled without a host
		RedisHost:         getEnv("REDIS_HOST", ""),
		RedisPort:         getInt("REDIS_PORT", "6379"),
		RedisDB:           getInt("REDIS_DB", "0"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisPoolSize:     getInt("REDIS_POOL_SIZE", "10"),
		RedisMinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", "2"),
		RedisExp:          time.Duration(getInt("REDIS_EXP_SECOND", "60")) * time.Second,

		// Kafka config, publishing disabled without brokers
		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "transactions"),
	}
	if err != nil {
		return nil, err
	}

	if cfg.StorageDriver != storageMongo && cfg.StorageDriver != storagePostgres {
		return nil, fmt.Errorf("STORAGE_DRIVER: unsupported driver %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// postgresDSN builds the connection string for the pgx driver.
func (c *config) postgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDB)
}
