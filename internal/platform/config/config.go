package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	JWTIssuer     string

	// Report cache; an empty RedisURL disables invalidation.
	RedisURL          string
	ReportCachePrefix string

	// Posting
	SerializationRetries int
	RetryBaseDelay       time.Duration
	EntryNumberPrefix    string
	GLCodes              domain.GLCodeMap

	// HTTP
	AllowedOrigins []string
	RateLimit      string `mapstructure:"RATE_LIMIT"` // ulule/limiter format, e.g. "100-M"
}

// glCodeKeys maps each well-known role to its environment variable.
var glCodeKeys = map[domain.GLRole]string{
	domain.RoleAccountsReceivable:   "GL_CODE_AR",
	domain.RoleAccountsPayable:      "GL_CODE_AP",
	domain.RoleTaxPayable:           "GL_CODE_TAX_PAYABLE",
	domain.RoleTaxRecoverable:       "GL_CODE_TAX_RECOVERABLE",
	domain.RoleRevenue:              "GL_CODE_REVENUE",
	domain.RoleExpense:              "GL_CODE_EXPENSE",
	domain.RoleBank:                 "GL_CODE_BANK",
	domain.RoleOpeningBalanceEquity: "GL_CODE_OPENING_BALANCE_EQUITY",
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "ledger-posting-core")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REPORT_CACHE_PREFIX", "reports")
	v.SetDefault("SERIALIZATION_RETRIES", 3)
	v.SetDefault("SERIALIZATION_RETRY_BASE_DELAY", "20ms")
	v.SetDefault("ENTRY_NUMBER_PREFIX", "JE-")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "300-M")
	for role, key := range glCodeKeys {
		v.SetDefault(key, domain.DefaultGLCodes().Code(role))
	}

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:          v.GetString("PGSQL_URL"),
		Port:                 v.GetString("PORT"),
		IsProduction:         v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:        v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTIssuer:            v.GetString("JWT_ISSUER"),
		RedisURL:             v.GetString("REDIS_URL"),
		ReportCachePrefix:    v.GetString("REPORT_CACHE_PREFIX"),
		SerializationRetries: v.GetInt("SERIALIZATION_RETRIES"),
		EntryNumberPrefix:    v.GetString("ENTRY_NUMBER_PREFIX"),
		RateLimit:            v.GetString("RATE_LIMIT"),
		GLCodes:              domain.GLCodeMap{},
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Report cache invalidation is disabled.")
	}
	if cfg.SerializationRetries < 1 {
		log.Printf("Warning: Invalid value for SERIALIZATION_RETRIES (%d). Defaulting to 3.\n", cfg.SerializationRetries)
		cfg.SerializationRetries = 3
	}

	delayStr := v.GetString("SERIALIZATION_RETRY_BASE_DELAY")
	delay, err := time.ParseDuration(delayStr)
	if err != nil || delay <= 0 {
		delay = 20 * time.Millisecond
		log.Printf("Warning: Invalid value for SERIALIZATION_RETRY_BASE_DELAY ('%s'). Defaulting to %s.\n", delayStr, delay)
	}
	cfg.RetryBaseDelay = delay

	for _, origin := range strings.Split(v.GetString("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	for role, key := range glCodeKeys {
		cfg.GLCodes[role] = strings.TrimSpace(v.GetString(key))
		if cfg.GLCodes[role] == "" {
			log.Printf("Warning: %s is empty. Postings that need the %s account will fail.\n", key, role)
		}
	}

	return cfg, nil
}
