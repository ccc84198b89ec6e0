// README: Config loader with env defaults for HTTP, LLM, collaborators, FAQ cache and handoff channels.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// flightPathCalls is the longest chain of sequential outbound calls one chat
// turn can make: model fallback, geocoding, city lookup, flight search.
const flightPathCalls = 4

var ErrMissingKey = errors.New("required configuration missing")

type LLMConfig struct {
	Provider  string // gemini | openai
	GeminiKey string
	OpenAIKey string
	Model     string
}

type FAQConfig struct {
	URLs []string
	File string
	TTL  time.Duration
}

type HandoffConfig struct {
	WebhookURL string
	SNSTopic   string
	AWSRegion  string
}

type OutboundConfig struct {
	Timeout time.Duration
	Workers int
}

type Config struct {
	HTTP struct {
		Addr        string
		ChatTimeout time.Duration
	}
	Log struct {
		Level  string
		Format string
	}
	Location *time.Location
	DB       struct {
		DSN string
	}
	Redis struct {
		Addr     string
		Password string
	}
	LLM      LLMConfig
	Cities   struct {
		LookupURL  string
		MapsAPIKey string
	}
	Flights struct {
		SearchURL string
	}
	FAQ      FAQConfig
	Handoff  HandoffConfig
	Outbound OutboundConfig
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set are never overridden.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TRIPCHAT_HTTP_ADDR", ":8080")
	cfg.Log.Level = envOrDefault("TRIPCHAT_LOG_LEVEL", "info")
	cfg.Log.Format = envOrDefault("TRIPCHAT_LOG_FORMAT", "json")

	tz := envOrDefault("TRIPCHAT_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return cfg, fmt.Errorf("TRIPCHAT_TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	cfg.DB.DSN = os.Getenv("TRIPCHAT_DB_DSN")
	cfg.Redis.Addr = os.Getenv("TRIPCHAT_REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("TRIPCHAT_REDIS_PASSWORD")

	cfg.LLM.Provider = strings.ToLower(envOrDefault("TRIPCHAT_LLM_PROVIDER", "gemini"))
	cfg.LLM.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.LLM.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.LLM.Model = os.Getenv("TRIPCHAT_LLM_MODEL")
	switch cfg.LLM.Provider {
	case "gemini":
		if cfg.LLM.GeminiKey == "" {
			return cfg, fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingKey)
		}
	case "openai":
		if cfg.LLM.OpenAIKey == "" {
			return cfg, fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingKey)
		}
	default:
		return cfg, fmt.Errorf("TRIPCHAT_LLM_PROVIDER %q: want gemini or openai", cfg.LLM.Provider)
	}

	cfg.Cities.LookupURL = envOrDefault("TRIPCHAT_CITY_LOOKUP_URL", "http://localhost:9001/cities")
	cfg.Cities.MapsAPIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.Flights.SearchURL = envOrDefault("TRIPCHAT_FLIGHT_SEARCH_URL", "http://localhost:9001/flights")

	cfg.FAQ.URLs = envList("TRIPCHAT_FAQ_URLS")
	cfg.FAQ.File = os.Getenv("TRIPCHAT_FAQ_FILE")
	cfg.FAQ.TTL = envOrDefaultDuration("TRIPCHAT_FAQ_TTL", 24*time.Hour)

	cfg.Handoff.WebhookURL = os.Getenv("TRIPCHAT_HANDOFF_WEBHOOK")
	cfg.Handoff.SNSTopic = os.Getenv("TRIPCHAT_HANDOFF_SNS_TOPIC")
	cfg.Handoff.AWSRegion = envOrDefault("AWS_REGION", "us-east-1")

	cfg.Outbound.Timeout = envOrDefaultDuration("TRIPCHAT_OUTBOUND_TIMEOUT", 15*time.Second)
	cfg.Outbound.Workers = envOrDefaultInt("TRIPCHAT_OUTBOUND_WORKERS", 16)
	cfg.HTTP.ChatTimeout = envOrDefaultDuration("TRIPCHAT_CHAT_TIMEOUT", flightPathCalls*cfg.Outbound.Timeout)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// envList splits a comma-separated variable, dropping blanks.
func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
