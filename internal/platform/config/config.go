package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// RuleConfig holds the thresholds the behavioral rule engine evaluates
// against. It is injected at construction time; nothing in the engine reads
// the environment directly.
type RuleConfig struct {
	SmallTransactionThreshold decimal.Decimal
	SmallTransactionLimit     int
	WeeklySpendingLimit       decimal.Decimal
	CategoryDominanceRatio    decimal.Decimal
}

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	Rules RuleConfig
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "fbs-backend")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("RULE_SMALL_TXN_THRESHOLD", "10")
	viper.SetDefault("RULE_SMALL_TXN_LIMIT", 5)
	viper.SetDefault("RULE_WEEKLY_SPENDING_LIMIT", "500")
	viper.SetDefault("RULE_CATEGORY_DOMINANCE_RATIO", "0.5")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		log.Println("Warning: Google OAuth credentials not set. Google sign-in will not function.")
	}

	rules, err := loadRuleConfig()
	if err != nil {
		return nil, err
	}
	cfg.Rules = rules

	return cfg, nil
}

func loadRuleConfig() (RuleConfig, error) {
	smallThreshold, err := decimal.NewFromString(viper.GetString("RULE_SMALL_TXN_THRESHOLD"))
	if err != nil {
		return RuleConfig{}, err
	}
	weeklyLimit, err := decimal.NewFromString(viper.GetString("RULE_WEEKLY_SPENDING_LIMIT"))
	if err != nil {
		return RuleConfig{}, err
	}
	dominanceRatio, err := decimal.NewFromString(viper.GetString("RULE_CATEGORY_DOMINANCE_RATIO"))
	if err != nil {
		return RuleConfig{}, err
	}
	return RuleConfig{
		SmallTransactionThreshold: smallThreshold,
		SmallTransactionLimit:     viper.GetInt("RULE_SMALL_TXN_LIMIT"),
		WeeklySpendingLimit:       weeklyLimit,
		CategoryDominanceRatio:    dominanceRatio,
	}, nil
}
