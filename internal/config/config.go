package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the process needs, loaded once at startup and
// passed into the gateways and handlers. No env lookups happen after Load.
type Config struct {
	// Supabase project credentials. The anon key is used for table and
	// auth calls; the service-role key is used only by storage operations.
	SupabaseURL        string `envconfig:"SUPABASE_URL" required:"true"`
	SupabaseAnonKey    string `envconfig:"SUPABASE_ANON_KEY" required:"true"`
	SupabaseServiceKey string `envconfig:"SUPABASE_SERVICE_ROLE_KEY" required:"true"`

	// Server
	Port        string `envconfig:"PORT" default:"8080"`
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"*"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Shared timeout for the single outbound HTTP client. Individual
	// gateway calls do not override it.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// Error tracking
	SentryDSN string `envconfig:"SENTRY_DSN" default:""`
	AppEnv    string `envconfig:"APP_ENV" default:"development"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RestURL is the base URL of the PostgREST table API.
func (c *Config) RestURL() string { return c.SupabaseURL + "/rest/v1" }

// AuthURL is the base URL of the GoTrue auth API.
func (c *Config) AuthURL() string { return c.SupabaseURL + "/auth/v1" }

// StorageURL is the base URL of the storage API.
func (c *Config) StorageURL() string { return c.SupabaseURL + "/storage/v1" }
