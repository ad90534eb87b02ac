package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the settings required to boot the wildfire engine.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Providers ProvidersConfig `yaml:"providers"`
	Alerts    AlertsConfig    `yaml:"alerts"`
	Region    RegionConfig    `yaml:"region"`
	Logging   LoggingConfig   `yaml:"logging"`
	Cache     CacheConfig     `yaml:"cache"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig controls HTTP listener behaviour.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	MetricsAddress  string        `yaml:"metricsAddress"`
	GracefulTimeout time.Duration `yaml:"gracefulTimeout"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
}

// ProvidersConfig groups the telemetry provider integrations.
type ProvidersConfig struct {
	Firms   FirmsConfig   `yaml:"firms"`
	Weather WeatherConfig `yaml:"weather"`
}

// FirmsConfig configures access to the NASA FIRMS hotspot feed.
type FirmsConfig struct {
	BaseURL  string        `yaml:"baseURL"`
	MapKey   string        `yaml:"mapKey"`
	Source   string        `yaml:"source"`
	Country  string        `yaml:"country"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

// WeatherConfig configures access to the OpenWeather current-conditions API.
type WeatherConfig struct {
	BaseURL     string        `yaml:"baseURL"`
	APIKey      string        `yaml:"apiKey"`
	CountryCode string        `yaml:"countryCode"`
	Timeout     time.Duration `yaml:"timeout"`
}

// AlertsConfig groups the notification channel integrations. Every
// credential is independently optional; absence triggers the documented
// fallback or skip behaviour.
type AlertsConfig struct {
	SMS      SMSConfig      `yaml:"sms"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// SMSConfig configures the Fast2SMS bulk endpoint.
type SMSConfig struct {
	Endpoint string        `yaml:"endpoint"`
	APIKey   string        `yaml:"apiKey"`
	Timeout  time.Duration `yaml:"timeout"`
}

// TelegramConfig configures the broadcast bot.
type TelegramConfig struct {
	BaseURL  string        `yaml:"baseURL"`
	BotToken string        `yaml:"botToken"`
	ChatID   string        `yaml:"chatID"`
	Timeout  time.Duration `yaml:"timeout"`
}

// RegionConfig names the default monitored region.
type RegionConfig struct {
	Default string `yaml:"default"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// CacheConfig controls Valkey-backed caching of hotspot responses.
type CacheConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Addr         string        `yaml:"addr"`
	Username     string        `yaml:"username"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	DialTimeout  time.Duration `yaml:"dialTimeout"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	MaxRetries   int           `yaml:"maxRetries"`
	TLS          bool          `yaml:"tls"`
}

// ArchiveConfig controls the optional Postgres archive; an empty DSN
// disables it.
type ArchiveConfig struct {
	DSN string `yaml:"dsn"`
}

// SchedulerConfig controls the background telemetry refresh; an empty spec
// disables it.
type SchedulerConfig struct {
	Spec string `yaml:"spec"`
}

// Load initialises Config from a YAML file and optional environment
// overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("WILDFIRE_ENGINE_CONFIG")
	}

	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Address:         ":8000",
			MetricsAddress:  ":2112",
			GracefulTimeout: 10 * time.Second,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
		},
		Providers: ProvidersConfig{
			Firms: FirmsConfig{
				BaseURL:  "https://firms.modaps.eosdis.nasa.gov",
				Source:   "VIIRS_SNPP_NRT",
				Country:  "IND",
				Timeout:  5 * time.Second,
				CacheTTL: 5 * time.Minute,
			},
			Weather: WeatherConfig{
				BaseURL:     "https://api.openweathermap.org",
				CountryCode: "IN",
				Timeout:     5 * time.Second,
			},
		},
		Alerts: AlertsConfig{
			SMS: SMSConfig{
				Endpoint: "https://www.fast2sms.com/dev/bulkV2",
				Timeout:  5 * time.Second,
			},
			Telegram: TelegramConfig{
				BaseURL: "https://api.telegram.org",
				Timeout: 5 * time.Second,
			},
		},
		Region:  RegionConfig{Default: "Nagpur"},
		Logging: LoggingConfig{Level: "info", JSON: false},
		Cache: CacheConfig{
			Enabled:      false,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
			MaxRetries:   2,
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WILDFIRE_SERVER_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("WILDFIRE_METRICS_ADDRESS"); v != "" {
		cfg.Server.MetricsAddress = v
	}
	if v := os.Getenv("NASA_FIRMS_MAP_KEY"); v != "" {
		cfg.Providers.Firms.MapKey = v
	}
	if v := os.Getenv("WILDFIRE_FIRMS_BASE_URL"); v != "" {
		cfg.Providers.Firms.BaseURL = v
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		cfg.Providers.Weather.APIKey = v
	}
	if v := os.Getenv("WILDFIRE_WEATHER_BASE_URL"); v != "" {
		cfg.Providers.Weather.BaseURL = v
	}
	if v := os.Getenv("FAST2SMS_API_KEY"); v != "" {
		cfg.Alerts.SMS.APIKey = v
	}
	if v := os.Getenv("WILDFIRE_SMS_ENDPOINT"); v != "" {
		cfg.Alerts.SMS.Endpoint = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Alerts.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Alerts.Telegram.ChatID = v
	}
	if v := os.Getenv("WILDFIRE_TELEGRAM_BASE_URL"); v != "" {
		cfg.Alerts.Telegram.BaseURL = v
	}
	if v := os.Getenv("WILDFIRE_DEFAULT_REGION"); v != "" {
		cfg.Region.Default = v
	}
	if v := os.Getenv("WILDFIRE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WILDFIRE_LOG_FORMAT"); v == "json" {
		cfg.Logging.JSON = true
	}
	if v := os.Getenv("WILDFIRE_CACHE_ENABLED"); v != "" {
		cfg.Cache.Enabled = strings.EqualFold(v, "true") || v == "1"
	}
	if v := os.Getenv("WILDFIRE_CACHE_ADDR"); v != "" {
		cfg.Cache.Addr = v
	}
	if v := os.Getenv("WILDFIRE_CACHE_USERNAME"); v != "" {
		cfg.Cache.Username = v
	}
	if v := os.Getenv("WILDFIRE_CACHE_PASSWORD"); v != "" {
		cfg.Cache.Password = v
	}
	if v := os.Getenv("WILDFIRE_CACHE_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Cache.DB = db
		}
	}
	if v := os.Getenv("WILDFIRE_CACHE_TLS"); strings.EqualFold(v, "true") || v == "1" {
		cfg.Cache.TLS = true
	}
	if v := os.Getenv("WILDFIRE_ARCHIVE_DSN"); v != "" {
		cfg.Archive.DSN = v
	}
	if v := os.Getenv("WILDFIRE_REFRESH_SCHEDULE"); v != "" {
		cfg.Scheduler.Spec = v
	}
	if v := os.Getenv("WILDFIRE_PROVIDER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Providers.Firms.Timeout = d
			cfg.Providers.Weather.Timeout = d
		}
	}
	if v := os.Getenv("WILDFIRE_FIRMS_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Providers.Firms.CacheTTL = d
		}
	}
}
