// Package config carga la configuración del servicio desde .env y variables de entorno.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type StoreBackend string

const (
	StoreMemory   StoreBackend = "memory"
	StoreREST     StoreBackend = "rest"
	StorePostgres StoreBackend = "postgres"
)

type Config struct {
	Port string

	LogLevel  string
	LogFormat string
	AppName   string

	Store StoreBackend

	// Backend Supabase-compatible: GoTrue en /auth/v1, PostgREST en /rest/v1.
	SupabaseURL string
	SupabaseKey string

	DBDSN string

	HTTPTimeout time.Duration

	PlansFile           string
	ProvisioningContact string
	WebhookSecret       string

	// DevPlan es el plan de las sesiones X-Debug-User-ID (sin identity provider).
	DevPlan string
}

// Load lee .env (si existe) y luego el entorno.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv arma la config solo desde variables de entorno.
func FromEnv() (*Config, error) {
	timeout, err := loadDuration("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:                getenv("PORT", "8080"),
		LogLevel:            os.Getenv("LOG_LEVEL"),
		LogFormat:           os.Getenv("LOG_FORMAT"),
		AppName:             getenv("APP_NAME", "petcontrol"),
		SupabaseURL:         strings.TrimRight(strings.TrimSpace(os.Getenv("SUPABASE_URL")), "/"),
		SupabaseKey:         strings.TrimSpace(os.Getenv("SUPABASE_KEY")),
		DBDSN:               strings.TrimSpace(os.Getenv("DB_DSN")),
		HTTPTimeout:         timeout,
		PlansFile:           strings.TrimSpace(os.Getenv("PLANS_FILE")),
		ProvisioningContact: strings.TrimSpace(os.Getenv("PROVISIONING_CONTACT")),
		WebhookSecret:       strings.TrimSpace(os.Getenv("WEBHOOK_SECRET")),
		DevPlan:             getenv("DEV_PLAN", "Elite"),
	}

	backend := StoreBackend(strings.ToLower(strings.TrimSpace(os.Getenv("STORE_BACKEND"))))
	if backend == "" {
		// Sin backend explícito: elegimos según lo que venga configurado.
		switch {
		case cfg.SupabaseURL != "":
			backend = StoreREST
		case cfg.DBDSN != "":
			backend = StorePostgres
		default:
			backend = StoreMemory
		}
	}
	cfg.Store = backend

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StoreREST:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return errors.New("STORE_BACKEND=rest requires SUPABASE_URL and SUPABASE_KEY")
		}
	case StorePostgres:
		if c.DBDSN == "" {
			return errors.New("STORE_BACKEND=postgres requires DB_DSN")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	return nil
}

// IdentityConfigured indica si hay proveedor de identidad (si no, modo dev).
func (c *Config) IdentityConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

func (c *Config) Addr() string { return ":" + c.Port }

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func loadDuration(key string, def time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
