package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTIssuer          string
	JWTAudience        string
	JWTSigningKey      string
	AccessTokenMinutes int
	RefreshTokenDays   int

	// Password hashing
	PasswordPepper string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "finwatch"),
		DBPassword: getEnv("DB_PASSWORD", "finwatch"),
		DBName:     getEnv("DB_NAME", "finwatch"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTIssuer:          getEnv("JWT_ISSUER", "finwatch-api"),
		JWTAudience:        getEnv("JWT_AUDIENCE", "finwatch-clients"),
		JWTSigningKey:      getEnv("JWT_SIGNING_KEY", "fallback-signing-key-for-dev-only"),
		AccessTokenMinutes: getEnvInt("JWT_ACCESS_TOKEN_MINUTES", 15),
		RefreshTokenDays:   getEnvInt("JWT_REFRESH_TOKEN_DAYS", 7),

		// Password hashing
		PasswordPepper: getEnv("PASSWORD_PEPPER", ""),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, value, defaultValue)
		return defaultValue
	}
	return n
}
