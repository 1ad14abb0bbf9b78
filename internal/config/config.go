package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type StoreBackend string

const (
	BackendMemory   StoreBackend = "memory"
	BackendFile     StoreBackend = "file"
	BackendPostgres StoreBackend = "postgres"
)

type Config struct {
	HTTPPort string
	Debug    bool

	StoreBackend StoreBackend
	DataFile     string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	KafkaBrokers    string
	KafkaTopic      string
	AuditTopic      string
	OutboxPollEvery time.Duration

	AdminUsername string
	AdminPassword string

	// OperatorIdentity signs ledger mutations. Empty means no write
	// authority: the service starts read-only and every mutating
	// operation fails fast.
	OperatorIdentity string

	// EnforceHandoffExpiry rejects confirms after the pending handoff
	// expiry instead of the default grace behavior.
	EnforceHandoffExpiry bool

	// EmitDiscards publishes audit events for pending handoffs
	// displaced by re-initiates.
	EmitDiscards bool

	MinHandoffDuration time.Duration
}

// Load reads .env (or .example.env) from the working directory or its
// parents, then assembles the config from the environment.
func Load() Config {
	loadEnv()

	return Config{
		HTTPPort:             envOr("HTTP_PORT", "9000"),
		Debug:                envBool("DEBUG"),
		StoreBackend:         StoreBackend(envOr("STORE_BACKEND", string(BackendMemory))),
		DataFile:             envOr("DATA_FILE", "ledger.json"),
		DBHost:               os.Getenv("DB_HOST"),
		DBPort:               envInt("DB_PORT", 5432),
		DBUser:               os.Getenv("POSTGRES_USER"),
		DBPassword:           os.Getenv("POSTGRES_PASSWORD"),
		DBName:               os.Getenv("POSTGRES_DB"),
		KafkaBrokers:         os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:           envOr("KAFKA_TOPIC", "custody_events"),
		AuditTopic:           envOr("AUDIT_TOPIC", "audit_logs"),
		OutboxPollEvery:      envDuration("OUTBOX_POLL_INTERVAL", 2*time.Second),
		AdminUsername:        envOr("ADMIN_USERNAME", "admin"),
		AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
		OperatorIdentity:     os.Getenv("OPERATOR_IDENTITY"),
		EnforceHandoffExpiry: envBool("ENFORCE_HANDOFF_EXPIRY"),
		EmitDiscards:         envBool("EMIT_DISCARDS"),
		MinHandoffDuration:   envDuration("MIN_HANDOFF_DURATION", time.Hour),
	}
}

// DSN renders the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func (c Config) PostgresConfigured() bool {
	return c.DBHost != "" && c.DBName != ""
}

func loadEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	possiblePaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(cwd, "..", ".env"),
		filepath.Join(cwd, "..", "..", ".env"),
	}

	for _, envPath := range possiblePaths {
		if err := godotenv.Load(envPath); err == nil {
			return
		}
	}

	for _, envPath := range possiblePaths {
		examplePath := filepath.Join(filepath.Dir(envPath), ".example.env")
		if err := godotenv.Load(examplePath); err == nil {
			return
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
