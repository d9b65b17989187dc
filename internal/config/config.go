package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Server configuration
type ServerConfig struct {
	Port string
	Host string
}

// MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
}

// Auth holds identity-provider verification settings. Tokens are issued by
// the external provider; only verification happens in this process.
type AuthConfig struct {
	TokenSecret string
	Issuer      string
	Audience    string
}

// Stripe configuration
type StripeConfig struct {
	SecretKey string
}

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Auth   AuthConfig
	Stripe StripeConfig

	// BootstrapAdminEmail is the single address that self-registers as a
	// verified Admin. Seeding convenience, not a general rule.
	BootstrapAdminEmail string

	RequestTimeoutSec int
	LogMode           string
}

// Default configuration values
const (
	DefaultServerPort          = "5000"
	DefaultServerHost          = ""
	DefaultMongoURI            = "mongodb://localhost:27017"
	DefaultMongoDB             = "crewpay"
	DefaultBootstrapAdminEmail = "admin@crewpay.local"
	DefaultRequestTimeoutSec   = 15
	DefaultLogMode             = "prod"
	// Pagination defaults
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// New returns a new Config populated from the environment. A .env file in
// the working directory is loaded first when present.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", DefaultServerPort),
			Host: getEnv("SERVER_HOST", DefaultServerHost),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", DefaultMongoURI),
			Database: getEnv("MONGO_DB", DefaultMongoDB),
		},
		Auth: AuthConfig{
			TokenSecret: getEnv("TOKEN_SECRET", ""),
			Issuer:      getEnv("TOKEN_ISSUER", ""),
			Audience:    getEnv("TOKEN_AUDIENCE", ""),
		},
		Stripe: StripeConfig{
			SecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		},
		BootstrapAdminEmail: getEnv("BOOTSTRAP_ADMIN_EMAIL", DefaultBootstrapAdminEmail),
		RequestTimeoutSec:   getEnvInt("REQUEST_TIMEOUT_SEC", DefaultRequestTimeoutSec),
		LogMode:             getEnv("LOG_MODE", DefaultLogMode),
	}
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
