package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// JWTSecret has an insecure default for local development only and must
	// be overridden in any real deployment.
	JWTSecret   string `envconfig:"JWT_SECRET" default:"supersecret"`
	JWTTTLHours int    `envconfig:"JWT_TTL_HOURS" default:"24"`

	// Groq provider settings
	GroqAPIKey     string `envconfig:"GROQ_API_KEY" required:"true"`
	GroqBaseURL    string `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`
	GroqModel      string `envconfig:"GROQ_MODEL" default:"llama3-70b-8192"`
	GroqTimeoutSec int    `envconfig:"GROQ_TIMEOUT_SEC" default:"60"`

	// Quota settings
	FreeDailyLimit int `envconfig:"FREE_DAILY_LIMIT" default:"5"`
	TextLimit      int `envconfig:"TEXT_LIMIT" default:"6000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
