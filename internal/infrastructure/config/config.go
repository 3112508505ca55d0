package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Storage StorageConfig
	Session SessionConfig
	HTTP    HTTPConfig
	Seed    SeedConfig
}

type StorageConfig struct {
	DataFile       string `env:"DATA_FILE,        default=data/data.json"`
	UploadDir      string `env:"UPLOAD_DIR,       default=uploads"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES, default=10485760"`
}

type SessionConfig struct {
	TTL           time.Duration `env:"SESSION_TTL,            default=8h"`
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL, default=10m"`
}

type HTTPConfig struct {
	BodyLimit   string   `env:"BODY_LIMIT,   default=2M"`
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`
}

// SeedConfig describes the admin written into a brand-new data file.
type SeedConfig struct {
	AdminName     string `env:"SEED_ADMIN_NAME,     default=Administrador"`
	AdminEmail    string `env:"SEED_ADMIN_EMAIL,    default=admin@smartaviation.com"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD"`
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Addr is the listen address.
func (c *Config) Addr() string { return ":" + c.Port }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom resolves configuration through an arbitrary lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
