package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Provider identifiers accepted by SCHEDULING_PROVIDER.
const (
	ProviderCalendly = "calendly"
	ProviderCalcom   = "calcom"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database   DatabaseConfig
	Redis      RedisConfig
	Scheduling SchedulingConfig
	Places     PlacesConfig
	Feed       FeedConfig
	Admin      AdminConfig
	CORS       CORSConfig
	Log        LogConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SchedulingConfig holds everything the provider adapters need. Credentials
// for both supported providers live here; only the one named by Provider is
// consulted at startup.
type SchedulingConfig struct {
	Provider string

	CalendlyAPIToken     string
	CalendlyEventTypeURI string

	CalcomAPIKey      string
	CalcomEventTypeID int
	CalcomDuration    time.Duration

	WindowDays        int
	LeadTime          time.Duration
	AllowMockFallback bool
	UpstreamTimeout   time.Duration
}

type PlacesConfig struct {
	APIKey string
}

type FeedConfig struct {
	URL      string
	CacheTTL time.Duration
}

// AdminConfig carries the two secrets compared on every admin request.
type AdminConfig struct {
	Username string
	Password string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Scheduling = SchedulingConfig{
		Provider:             v.GetString("SCHEDULING_PROVIDER"),
		CalendlyAPIToken:     v.GetString("CALENDLY_API_TOKEN"),
		CalendlyEventTypeURI: v.GetString("CALENDLY_EVENT_TYPE_URI"),
		CalcomAPIKey:         v.GetString("CALCOM_API_KEY"),
		CalcomEventTypeID:    v.GetInt("CALCOM_EVENT_TYPE_ID"),
		CalcomDuration:       parseDuration(v.GetString("CALCOM_EVENT_DURATION"), 30*time.Minute),
		WindowDays:           v.GetInt("SCHEDULING_WINDOW_DAYS"),
		LeadTime:             parseDuration(v.GetString("SCHEDULING_LEAD_TIME"), time.Hour),
		AllowMockFallback:    v.GetBool("SCHEDULING_ALLOW_MOCK_FALLBACK"),
		UpstreamTimeout:      parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 15*time.Second),
	}

	cfg.Places = PlacesConfig{APIKey: v.GetString("PLACES_API_KEY")}

	cfg.Feed = FeedConfig{
		URL:      v.GetString("FEED_URL"),
		CacheTTL: parseDuration(v.GetString("FEED_CACHE_TTL"), 15*time.Minute),
	}

	cfg.Admin = AdminConfig{
		Username: v.GetString("ADMIN_USERNAME"),
		Password: v.GetString("ADMIN_PASSWORD"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "theaiwhotaughtme")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SCHEDULING_PROVIDER", ProviderCalendly)
	v.SetDefault("CALENDLY_API_TOKEN", "")
	v.SetDefault("CALENDLY_EVENT_TYPE_URI", "")
	v.SetDefault("CALCOM_API_KEY", "")
	v.SetDefault("CALCOM_EVENT_TYPE_ID", 0)
	v.SetDefault("CALCOM_EVENT_DURATION", "30m")
	v.SetDefault("SCHEDULING_WINDOW_DAYS", 7)
	v.SetDefault("SCHEDULING_LEAD_TIME", "1h")
	v.SetDefault("SCHEDULING_ALLOW_MOCK_FALLBACK", false)
	v.SetDefault("UPSTREAM_TIMEOUT", "15s")

	v.SetDefault("PLACES_API_KEY", "")

	v.SetDefault("FEED_URL", "https://www.theaiwhotaughtme.com/feed.xml")
	v.SetDefault("FEED_CACHE_TTL", "15m")

	v.SetDefault("ADMIN_USERNAME", "admin")
	// No default password: an unconfigured admin keeps the route closed.
	v.SetDefault("ADMIN_PASSWORD", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
