package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// minJWTSecretLength is the minimum acceptable signing secret length in
// bytes. HS256 needs real entropy; startup is refused below this.
const minJWTSecretLength = 32

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTIssuer         string
	JWTAudience       string
	JWTExpiryDuration time.Duration

	RefreshTokenExpiryDuration time.Duration

	UploadsDir string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. It fails hard on misconfiguration the auth subsystem cannot
// recover from, such as a missing or too-short signing secret.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "vendora-backend")
	viper.SetDefault("JWT_AUDIENCE", "vendora-clients")
	viper.SetDefault("JWT_EXPIRY_DURATION", "30m")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("UPLOADS_DIR", "uploads")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:  viper.GetString("PGSQL_URL"),
		Port:         viper.GetString("PORT"),
		IsProduction: viper.GetBool("IS_PRODUCTION"),
		JWTSecret:    viper.GetString("JWT_SECRET"),
		JWTIssuer:    viper.GetString("JWT_ISSUER"),
		JWTAudience:  viper.GetString("JWT_AUDIENCE"),
		UploadsDir:   viper.GetString("UPLOADS_DIR"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL must be set")
	}

	if len(cfg.JWTSecret) < minJWTSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters, got %d", minJWTSecretLength, len(cfg.JWTSecret))
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_DURATION %q: %w", jwtExpiryStr, err)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	refreshExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshExpiryDuration, err := time.ParseDuration(refreshExpiryStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_TOKEN_EXPIRY_DURATION %q: %w", refreshExpiryStr, err)
	}
	if refreshExpiryDuration <= jwtExpiryDuration {
		return nil, fmt.Errorf("REFRESH_TOKEN_EXPIRY_DURATION (%s) must exceed JWT_EXPIRY_DURATION (%s)", refreshExpiryDuration, jwtExpiryDuration)
	}
	cfg.RefreshTokenExpiryDuration = refreshExpiryDuration

	return cfg, nil
}
