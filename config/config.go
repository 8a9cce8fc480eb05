package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int      `env:"PORT" envDefault:"8080"`
	Dsn            string   `env:"DSN"`
	JwtSecret      string   `env:"JWT_SECRET"`
	JwtExpires     string   `env:"JWT_EXPIRES" envDefault:"15m"`
	RefreshSecret  string   `env:"REFRESH_SECRET"`
	RefreshExpiry  string   `env:"REFRESH_EXPIRY" envDefault:"168h"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	SecureCookies  bool     `env:"SECURE_COOKIES" envDefault:"false"`
}

func New() *Config {
	if loadErr := godotenv.Load(".env"); loadErr != nil {
		log.Printf("[Env]: unable to load .env file %v", loadErr)
	}

	var cfg Config

	if parseErr := env.Parse(&cfg); parseErr != nil {
		log.Printf("[Env]: failed to parse environment variables: %v", parseErr)
	}

	return &cfg
}

// Validate reports missing required settings. It runs once at startup so a
// misconfigured process fails before serving rather than mid-request.
func (c *Config) Validate() error {
	if c.Dsn == "" {
		return errors.New("DSN is required")
	}
	if c.JwtSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.RefreshSecret == "" {
		return errors.New("REFRESH_SECRET is required")
	}
	return nil
}
