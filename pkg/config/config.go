package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups the application settings (read through Viper from env and optional files).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Assets    AssetsConfig
	ASPExcel  ASPExcelConfig
	Quota     QuotaConfig
	RateLimit RateLimitConfig
	Bootstrap BootstrapConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig PostgreSQL settings.
// When DatabaseURL is set it is used verbatim as the connection string.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	ForceIPv4   bool // dial the first A record, for hosts without IPv6 routes
	MaxConns    int
	MinConns    int
}

// ConnectionString returns DATABASE_URL when set, otherwise the DSN built from the parts.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN builds the PostgreSQL URL, escaping special characters in the password.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig token settings.
type JWTConfig struct {
	Secret     string
	Expiration int // minutes
	Issuer     string
}

// HTTPConfig HTTP server settings.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

// Addr returns host:port.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AssetsConfig local storage for product images and documents.
type AssetsConfig struct {
	Dir                string // root holding products/ and documents/
	RemotePhotoBaseURL string // fallback for img1Article / img2Article photos
}

// ASPExcelConfig remote force calculator.
type ASPExcelConfig struct {
	URL         string
	Timeout     time.Duration
	UserAgent   string
	Concurrency int // max parallel L lookups per search
}

// QuotaConfig per-user daily search quota.
type QuotaConfig struct {
	DefaultDailyLimit int
}

// RateLimitConfig token bucket per authenticated user on search and calc endpoints.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// BootstrapConfig optional admin account created at startup.
type BootstrapConfig struct {
	AdminEmail    string
	AdminPassword string
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Load reads the configuration from environment variables and, optionally, .env / config.env.
// Environment variables win over file values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // optional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "eriflex-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "berlivn"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "eriflex-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8000),
			CORSOrigins: splitList(getString(v, "CORS_ORIGINS", "http://localhost:5173")),
		},
		Assets: AssetsConfig{
			Dir:                getString(v, "ASSETS_DIR", "./data"),
			RemotePhotoBaseURL: getString(v, "REMOTE_PHOTO_BASE_URL", "https://eriflex-configurator.nvent.com/eriflex/design/photo_articles"),
		},
		ASPExcel: ASPExcelConfig{
			URL:         getString(v, "ASPEXCEL_URL", "https://eriflex-configurator.nvent.com/eriflex/admin/aspExcel/aspExcel.asp"),
			Timeout:     time.Duration(getInt(v, "ASPEXCEL_TIMEOUT_SECONDS", 10)) * time.Second,
			UserAgent:   getString(v, "ASPEXCEL_USER_AGENT", defaultUserAgent),
			Concurrency: getInt(v, "ASPEXCEL_CONCURRENCY", 4),
		},
		Quota: QuotaConfig{
			DefaultDailyLimit: getInt(v, "QUOTA_DEFAULT_DAILY_LIMIT", 20),
		},
		RateLimit: RateLimitConfig{
			RPS:   getFloat(v, "RATE_LIMIT_RPS", 2),
			Burst: getInt(v, "RATE_LIMIT_BURST", 5),
		},
		Bootstrap: BootstrapConfig{
			AdminEmail:    getString(v, "ADMIN_EMAIL", ""),
			AdminPassword: getString(v, "ADMIN_PASSWORD", ""),
		},
	}
	if cfg.DB.MaxConns <= 0 {
		cfg.DB.MaxConns = 20
	}
	if cfg.DB.MinConns < 0 || cfg.DB.MinConns > cfg.DB.MaxConns {
		cfg.DB.MinConns = 0
	}
	if cfg.ASPExcel.Concurrency <= 0 {
		cfg.ASPExcel.Concurrency = 1
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(v.GetString(key), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
