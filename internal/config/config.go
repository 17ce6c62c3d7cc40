// Package config reads server settings from the environment, optionally
// seeded by a .env file, with command line flags taking precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
}

// Enabled reports whether drafts should be kept in Postgres.
func (p Postgres) Enabled() bool {
	return p.Host != ""
}

func (p Postgres) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", p.User, p.Password, p.Host, p.Port, p.DB)
}

type Config struct {
	ListenAddr       string
	BackendURL       string
	BackendRateLimit float64
	BackendTimeout   time.Duration
	RefreshInterval  time.Duration
	PollIdleTTL      time.Duration
	WatchPolls       []int64
	AllowedOrigins   []string
	Postgres         Postgres
}

// Load loads .env if present and parses args (without the program name).
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to load .env file: %v", err)
	}
	return parse(args)
}

func parse(args []string) (*Config, error) {
	rateLimit, err := envFloat("BACKEND_RATE_LIMIT", 10)
	if err != nil {
		return nil, err
	}
	timeout, err := envDuration("BACKEND_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	interval, err := envDuration("REFRESH_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, err
	}
	idleTTL, err := envDuration("POLL_IDLE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Postgres: Postgres{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     envString("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DB:       os.Getenv("POSTGRES_DB"),
		},
	}
	var watch, origins string

	fs := flag.NewFlagSet("pollboard", flag.ContinueOnError)
	fs.StringVar(&cfg.ListenAddr, "listen", envString("LISTEN_ADDR", "0.0.0.0:8080"), "address the HTTP server listens on")
	fs.StringVar(&cfg.BackendURL, "backend-url", os.Getenv("BACKEND_URL"), "base URL of the poll backend")
	fs.Float64Var(&cfg.BackendRateLimit, "backend-rate-limit", rateLimit, "maximum backend requests per second")
	fs.DurationVar(&cfg.BackendTimeout, "backend-timeout", timeout, "timeout of a single backend request")
	fs.DurationVar(&cfg.RefreshInterval, "refresh-interval", interval, "interval between result refreshes")
	fs.DurationVar(&cfg.PollIdleTTL, "poll-idle-ttl", idleTTL, "how long an unwatched poll keeps refreshing after its last read")
	fs.StringVar(&watch, "watch", os.Getenv("WATCH_POLLS"), "comma separated poll ids refreshed from startup")
	fs.StringVar(&origins, "allowed-origins", envString("ALLOWED_ORIGINS", "*"), "comma separated CORS origins")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.BackendURL == "" {
		return nil, errors.New("BACKEND_URL is required")
	}
	if cfg.RefreshInterval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive, got %s", cfg.RefreshInterval)
	}
	if cfg.PollIdleTTL <= 0 {
		return nil, fmt.Errorf("poll idle ttl must be positive, got %s", cfg.PollIdleTTL)
	}

	cfg.WatchPolls, err = parsePollIDs(watch)
	if err != nil {
		return nil, err
	}
	cfg.AllowedOrigins = splitList(origins)

	return cfg, nil
}

func parsePollIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range splitList(s) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid poll id %q in watch list", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
