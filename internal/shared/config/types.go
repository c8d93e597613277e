package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MinAppVersion  string   `mapstructure:"min_app_version"`
	// TrustProxyHeader switches client addressing from the socket peer to
	// the first X-Forwarded-For hop. Only safe behind a reverse proxy that
	// overwrites the header.
	TrustProxyHeader bool `mapstructure:"trust_proxy_header"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

// GeofenceConfig describes the single fixed site geofence used by the
// location verification channel.
type GeofenceConfig struct {
	SiteLat           float64 `mapstructure:"site_lat"`
	SiteLng           float64 `mapstructure:"site_lng"`
	RadiusMeters      float64 `mapstructure:"radius_meters"`
	MaxAccuracyMeters float64 `mapstructure:"max_accuracy_meters"`
}

// WifiConfig describes the trusted-network verification channel.
// An empty allowlist fails closed; the disabled flag turns failures into
// an auditable DEV_BYPASS outcome, as does membership in BypassUserIDs.
type WifiConfig struct {
	Allowlist         []string `mapstructure:"allowlist"`
	AllowlistDisabled bool     `mapstructure:"allowlist_disabled"`
	BypassUserIDs     []string `mapstructure:"bypass_user_ids"`
}

type RateLimitWindowConfig struct {
	MaxHits  int `mapstructure:"max_hits"`
	WindowMS int `mapstructure:"window_ms"`
}

type RateLimitConfig struct {
	Burst     RateLimitWindowConfig `mapstructure:"burst"`
	Sustained RateLimitWindowConfig `mapstructure:"sustained"`
	GlobalIP  RateLimitWindowConfig `mapstructure:"global_ip"`
}

// ClockConfig carries the punch-policy knobs for the clock subsystem.
type ClockConfig struct {
	Timezone         string          `mapstructure:"timezone"`
	WeekStart        string          `mapstructure:"week_start"`
	TokenTTLHours    int             `mapstructure:"token_ttl_hours"`
	LunchMinutes     int             `mapstructure:"lunch_minutes"`
	DriftFlagMinutes int             `mapstructure:"drift_flag_minutes"`
	IdempotencyHours int             `mapstructure:"idempotency_hours"`
	StateReplayHours int             `mapstructure:"state_replay_hours"`
	Geofence         GeofenceConfig  `mapstructure:"geofence"`
	Wifi             WifiConfig      `mapstructure:"wifi"`
	RateLimit        RateLimitConfig `mapstructure:"rate_limit"`
}
