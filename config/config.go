package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Role decides whether this instance runs the beacon poller.
type Role string

const (
	RoleLeader   Role = "leader"
	RoleFollower Role = "follower"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Beacon     BeaconConfig     `yaml:"beacon"`
	Strava     StravaConfig     `yaml:"strava"`
	Trail      TrailConfig      `yaml:"trail"`
	Database   DatabaseConfig   `yaml:"database"`
	Discord    DiscordConfig    `yaml:"discord"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// BeaconConfig holds the beacon poller configuration. The poller runs by
// default; disabled is an explicit kill switch.
type BeaconConfig struct {
	Disabled        bool          `yaml:"disabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"` // Ignored by YAML parser
	TimeoutSeconds  int           `yaml:"timeout_seconds"`
	CurrentRegion   string        `yaml:"current_region"`
	PrimaryRegion   string        `yaml:"primary_region"`
}

// StravaConfig holds the Strava API credentials and endpoints.
type StravaConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	UserID       string `yaml:"user_id"`
	BaseURL      string `yaml:"base_url"`
	TokenURL     string `yaml:"token_url"`
	RedirectURL  string `yaml:"redirect_url"`
}

// TrailConfig holds the trail conditions data source. Home coordinates are
// used to order trail systems by proximity; when unset the upstream order
// is kept.
type TrailConfig struct {
	DataURL string  `yaml:"data_url"`
	HomeLat float64 `yaml:"home_lat"`
	HomeLng float64 `yaml:"home_lng"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	EncryptionKey          string `yaml:"encryption_key"`
}

// DiscordConfig holds the outbound Discord webhook settings.
type DiscordConfig struct {
	WebhookURL string `yaml:"webhook_url"`
	Username   string `yaml:"username"`
	AvatarURL  string `yaml:"avatar_url"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Beacon.IntervalSeconds <= 0 {
		cfg.Beacon.IntervalSeconds = 45
	}
	cfg.Beacon.Interval = time.Duration(cfg.Beacon.IntervalSeconds) * time.Second

	if cfg.Beacon.TimeoutSeconds <= 0 {
		cfg.Beacon.TimeoutSeconds = 15
	}

	// Region identifiers fall back to the environment so deployments can
	// inject them without touching the config file.
	if cfg.Beacon.CurrentRegion == "" {
		cfg.Beacon.CurrentRegion = os.Getenv("FLY_REGION")
	}
	if cfg.Beacon.PrimaryRegion == "" {
		cfg.Beacon.PrimaryRegion = os.Getenv("PRIMARY_REGION")
	}

	if cfg.Strava.BaseURL == "" {
		cfg.Strava.BaseURL = "https://www.strava.com/api/v3"
	}
	if cfg.Strava.TokenURL == "" {
		cfg.Strava.TokenURL = "https://www.strava.com/api/v3/oauth/token"
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}

// ResolveRole decides at startup whether this instance should run the beacon
// poller. When both region identifiers are present they must match; if either
// is missing we default to running (fail-open). This is leader election by
// convention, not a distributed lock: two instances that both claim the
// primary region would both poll.
func (c *BeaconConfig) ResolveRole() Role {
	if c.CurrentRegion != "" && c.PrimaryRegion != "" && c.CurrentRegion != c.PrimaryRegion {
		return RoleFollower
	}
	return RoleLeader
}
