package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// APIKeyEnv is the environment variable holding the upstream credential.
// The key never appears in config.yaml and never leaves the relay process.
const APIKeyEnv = "GEMINI_API_KEY"

type Config struct {
	Log    Log    `yaml:"log"`
	Server Server `yaml:"server"`
	Client Client `yaml:"client"`
}

type Server struct {
	// Listen address of the relay server
	Listen string `yaml:"listen" example:":8080" validate:"required"`
	// Allowed CORS origins, comma separated
	CORSOrigins string `yaml:"cors_origins" example:"http://localhost:5173"`
	// Upstream generateContent endpoint
	UpstreamURL string `yaml:"upstream_url" example:"https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent" validate:"required,url"`
	// Upstream request timeout in seconds
	TimeoutSeconds int `yaml:"timeout_seconds" example:"30" validate:"required,min=1"`

	// APIKey is read from the environment, never from the file.
	APIKey string `yaml:"-"`
}

type Client struct {
	// Base URL of the relay server
	ServerURL string `yaml:"server_url" example:"http://localhost:8080" validate:"required,url"`
	// Retries after a rate-limited attempt
	MaxRetries int `yaml:"max_retries" example:"3" validate:"min=0"`
	// First backoff delay in milliseconds, doubles per retry
	BaseDelayMS int `yaml:"base_delay_ms" example:"1000" validate:"required,min=1"`
	// Directory for history and theme files
	StateDir string `yaml:"state_dir" example:"data"`
	// Follow-up context cap in turns, 0 means unbounded
	HistoryTurnCap int `yaml:"history_turn_cap" example:"0" validate:"min=0"`
	// Suggestion variant used when /go is given no argument
	DefaultVariant string `yaml:"default_variant" example:"recycle" validate:"required,oneof=recycle upcycle"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// no file, defaults only
	case err != nil:
		return nil, oops.Errorf("failed to read config file: %w", err)
	default:
		if err = yaml.Unmarshal(data, &result); err != nil {
			return nil, oops.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if result.Server.Listen == "" {
		result.Server.Listen = ":8080"
	}
	if result.Server.UpstreamURL == "" {
		result.Server.UpstreamURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"
	}
	if result.Server.TimeoutSeconds == 0 {
		result.Server.TimeoutSeconds = 30
	}
	if result.Client.ServerURL == "" {
		result.Client.ServerURL = "http://localhost:8080"
	}
	if result.Client.MaxRetries == 0 {
		result.Client.MaxRetries = 3
	}
	if result.Client.BaseDelayMS == 0 {
		result.Client.BaseDelayMS = 1000
	}
	if result.Client.StateDir == "" {
		result.Client.StateDir = "data"
	}
	if result.Client.DefaultVariant == "" {
		result.Client.DefaultVariant = "recycle"
	}

	result.Server.APIKey = os.Getenv(APIKeyEnv)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
