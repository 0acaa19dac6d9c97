package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Port        int    `env:"PORT" envDefault:"8080"`
		Env         string `env:"ENV" envDefault:"development"`
		FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	} `envPrefix:"APP_"`

	Database struct {
		Host     string `env:"HOST" envDefault:"localhost"`
		Port     int    `env:"PORT" envDefault:"5432"`
		User     string `env:"USER" envDefault:"postgres"`
		Password string `env:"PASSWORD,required"`
		Name     string `env:"NAME" envDefault:"hrms"`
		SSLMode  string `env:"SSL_MODE" envDefault:"disable"`
	} `envPrefix:"DB_"`

	JWT struct {
		Secret            string `env:"SECRET_KEY,required"`
		AccessExpiration  string `env:"ACCESS_EXPIRATION_TIME" envDefault:"1h"`
		RefreshExpiration string `env:"REFRESH_EXPIRATION_TIME" envDefault:"168h"`
	} `envPrefix:"JWT_"`

	// Approval matrix: how leave/overtime approver chains are resolved.
	// The chain walks the requester's division upward, one manager per
	// level, up to MaxDepth. EmptyChainPolicy decides what happens when
	// no approver could be resolved: "auto_approve" or "reject".
	Approval struct {
		MaxDepth         int    `env:"MAX_DEPTH" envDefault:"2"`
		MinApprovers     int    `env:"MIN_APPROVERS" envDefault:"1"`
		RequireHRFinal   bool   `env:"REQUIRE_HR_FINAL" envDefault:"false"`
		EmptyChainPolicy string `env:"EMPTY_CHAIN_POLICY" envDefault:"reject"`
	} `envPrefix:"APPROVAL_"`

	SMTP struct {
		Host     string `env:"HOST"`
		Port     int    `env:"PORT" envDefault:"587"`
		Username string `env:"USERNAME"`
		Password string `env:"PASSWORD"`
		From     string `env:"FROM" envDefault:"no-reply@kantorkita.id"`
	} `envPrefix:"SMTP_"`

	OAuth2Google struct {
		ClientID     string   `env:"CLIENT_ID"`
		ClientSecret string   `env:"CLIENT_SECRET"`
		RedirectURL  string   `env:"REDIRECT_URL"`
		Scopes       []string `env:"SCOPES" envSeparator:","`
	} `envPrefix:"GOOGLE_"`
}

func Load() (*Config, error) {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) {
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Approval.MaxDepth < 0 {
		return fmt.Errorf("APPROVAL_MAX_DEPTH must not be negative")
	}
	if c.Approval.MinApprovers < 0 {
		return fmt.Errorf("APPROVAL_MIN_APPROVERS must not be negative")
	}
	switch c.Approval.EmptyChainPolicy {
	case "auto_approve", "reject":
	default:
		return fmt.Errorf("APPROVAL_EMPTY_CHAIN_POLICY must be auto_approve or reject, got %q", c.Approval.EmptyChainPolicy)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
