package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig   `envconfig:"SERVER"`
	Database DatabaseConfig `envconfig:"DB"`
	GitHub   GitHubConfig   `envconfig:"GITHUB"`
	Log      LogConfig      `envconfig:"LOG"`
}

type ServerConfig struct {
	Port          string        `split_words:"true" default:"8080" validate:"required,numeric"`
	Mode          string        `split_words:"true" default:"release" validate:"oneof=debug release test"`
	ReadTimeout   time.Duration `split_words:"true" default:"15s" validate:"gt=0"`
	WriteTimeout  time.Duration `split_words:"true" default:"120s" validate:"gt=0"`
	ShutdownGrace time.Duration `split_words:"true" default:"15s" validate:"gt=0"`
}

type DatabaseConfig struct {
	Path string `split_words:"true" default:"./analytics.db" validate:"required"`
}

// GitHubConfig identifies the single repository every request is computed
// against and the credential used to read it.
type GitHubConfig struct {
	RepoOwner         string        `split_words:"true" validate:"required"`
	RepoName          string        `split_words:"true" validate:"required"`
	Token             string        `split_words:"true" validate:"required"`
	GraphqlURL        string        `split_words:"true" default:"https://api.github.com/graphql" validate:"required,url"`
	Timeout           time.Duration `split_words:"true" default:"30s" validate:"gt=0"`
	RequestsPerSecond float64       `split_words:"true" default:"10"`
}

type LogConfig struct {
	Level string `split_words:"true" default:"info" validate:"oneof=debug info warn error"`
}

type Loader struct {
	Validate *validator.Validate
}

func NewLoader() *Loader {
	return &Loader{Validate: validator.New()}
}

// Load reads .env (if present) and the process environment into a Config and
// validates it. Any error here is meant to stop the process.
func (l *Loader) Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("env load: %w", err)
	}

	if err := l.Validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// Load is a shorthand for NewLoader().Load().
func Load() (*Config, error) {
	return NewLoader().Load()
}

// Addr returns the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}
