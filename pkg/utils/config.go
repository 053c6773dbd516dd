package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Security SecurityConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name        string `env:"APP_NAME" validate:"required"`
	Env         string `env:"APP_ENV" validate:"oneof=development production test"`
	Port        string `env:"PORT" validate:"required,numeric"`
	Debug       bool   `env:"DEBUG"`
	LogPath     string `env:"LOG_PATH"`
	FrontendURL string `env:"FRONTEND_URL" validate:"omitempty,url"`
}

func (c AppConfig) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

type DatabaseConfig struct {
	URL      string `env:"DATABASE_URL" validate:"required"`
	MaxConns int32  `env:"DB_MAX_CONNS" validate:"min=1"`
	MinConns int32  `env:"DB_MIN_CONNS" validate:"min=0"`
	Migrate  bool   `env:"DB_MIGRATE"`
}

type JWTConfig struct {
	Secret    string        `env:"JWT_SECRET" validate:"required,min=32"`
	ExpiresIn string        `env:"JWT_EXPIRES_IN" validate:"required"` // as written, e.g. "24h" or "7d"
	TTL       time.Duration `env:"JWT_EXPIRES_IN" validate:"gt=0"`
}

type SecurityConfig struct {
	BcryptRounds   int           `env:"BCRYPT_ROUNDS" validate:"min=10,max=15"`
	AuthRateLimit  int           `env:"AUTH_RATE_LIMIT" validate:"min=1"`
	AuthRateWindow time.Duration `env:"AUTH_RATE_WINDOW" validate:"gt=0"`
}

// AdminConfig describes the bootstrap admin account. Both fields empty disables it.
type AdminConfig struct {
	Email     string `env:"ADMIN_EMAIL" validate:"omitempty,email"`
	Password  string `env:"ADMIN_PASSWORD" validate:"required_with=Email"`
	FirstName string `env:"ADMIN_FIRST_NAME"`
	LastName  string `env:"ADMIN_LAST_NAME"`
}

func (c AdminConfig) Enabled() bool {
	return c.Email != "" && c.Password != ""
}

// LoadConfig reads .env (when present) into the process environment, then
// resolves every setting through viper with defaults and validates the result.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "user-api")
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("PORT", "3000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("DB_MIGRATE", true)
	v.SetDefault("JWT_EXPIRES_IN", "24h")
	v.SetDefault("BCRYPT_ROUNDS", 12)
	v.SetDefault("AUTH_RATE_LIMIT", 5)
	v.SetDefault("AUTH_RATE_WINDOW", "15m")
	v.SetDefault("ADMIN_FIRST_NAME", "System")
	v.SetDefault("ADMIN_LAST_NAME", "Admin")

	expiresIn := v.GetString("JWT_EXPIRES_IN")
	ttl, err := ParseDuration(expiresIn)
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}

	window, err := ParseDuration(v.GetString("AUTH_RATE_WINDOW"))
	if err != nil {
		return nil, fmt.Errorf("AUTH_RATE_WINDOW: %w", err)
	}

	config := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Env:         v.GetString("APP_ENV"),
			Port:        v.GetString("PORT"),
			Debug:       v.GetBool("DEBUG"),
			LogPath:     v.GetString("LOG_PATH"),
			FrontendURL: v.GetString("FRONTEND_URL"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
			MinConns: v.GetInt32("DB_MIN_CONNS"),
			Migrate:  v.GetBool("DB_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret:    v.GetString("JWT_SECRET"),
			ExpiresIn: expiresIn,
			TTL:       ttl,
		},
		Security: SecurityConfig{
			BcryptRounds:   v.GetInt("BCRYPT_ROUNDS"),
			AuthRateLimit:  v.GetInt("AUTH_RATE_LIMIT"),
			AuthRateWindow: window,
		},
		Admin: AdminConfig{
			Email:     v.GetString("ADMIN_EMAIL"),
			Password:  v.GetString("ADMIN_PASSWORD"),
			FirstName: v.GetString("ADMIN_FIRST_NAME"),
			LastName:  v.GetString("ADMIN_LAST_NAME"),
		},
	}

	if errs := ValidateStruct(config); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", FormatValidationErrors(errs))
	}

	return config, nil
}

// ParseDuration accepts everything time.ParseDuration does plus a whole-day
// suffix ("7d"), which is how token lifetimes are usually written.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}
