package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Directory   DirectoryConfig
	Catalog     CatalogConfig
	Preferences PreferencesConfig
	Display     DisplayConfig
	Plots       PlotsConfig
	Banner      BannerConfig
	Navigation  NavigationConfig
	Log         LogConfig
	Worker      WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// DirectoryConfig - настройки удалённого каталога заведений
type DirectoryConfig struct {
	BaseURL        string
	CatalogPath    string
	RequestTimeout int
}

type CatalogConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
	RefreshCron  string
	EventStream  string
}

// PreferencesConfig - хранилище избранного и посещённых заведений
type PreferencesConfig struct {
	Backend string
	Path    string
}

type DisplayConfig struct {
	TimeZone   string
	TimeLayout string
}

type PlotsConfig struct {
	DatasetPath string
}

type BannerConfig struct {
	AssetDir string
}

type NavigationConfig struct {
	Enabled bool
	Stream  string
	Group   string
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled bool
}

func setDefaults() {
	viper.SetDefault("API_HOST", "0.0.0.0")
	viper.SetDefault("API_PORT", 8080)
	viper.SetDefault("API_ENV", "development")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 2)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", 3600)
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", 600)

	viper.SetDefault("REDIS_ENABLED", true)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)

	viper.SetDefault("DIRECTORY_BASE_URL", "https://api.ffxivvenues.com/v1/")
	viper.SetDefault("DIRECTORY_CATALOG_PATH", "venue?approved=true")
	viper.SetDefault("DIRECTORY_REQUEST_TIMEOUT", 0)

	viper.SetDefault("CATALOG_CACHE_ENABLED", true)
	viper.SetDefault("CATALOG_CACHE_TTL", 3600)
	viper.SetDefault("CATALOG_REFRESH_CRON", "*/15 * * * *")
	viper.SetDefault("CATALOG_EVENT_STREAM", "stream:catalog:refreshed")

	viper.SetDefault("PREFERENCES_BACKEND", "file")
	viper.SetDefault("PREFERENCES_PATH", "./data/preferences.yaml")

	viper.SetDefault("DISPLAY_TIMEZONE", "Local")
	viper.SetDefault("DISPLAY_TIME_LAYOUT", "15:04")

	viper.SetDefault("NAVIGATION_ENABLED", true)
	viper.SetDefault("NAVIGATION_STREAM", "stream:navigation:requests")
	viper.SetDefault("NAVIGATION_GROUP", "lifestream")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("WORKER_ENABLED", true)
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	setDefaults()

	// .env is optional, the environment alone is enough
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Directory: DirectoryConfig{
			BaseURL:        viper.GetString("DIRECTORY_BASE_URL"),
			CatalogPath:    viper.GetString("DIRECTORY_CATALOG_PATH"),
			RequestTimeout: viper.GetInt("DIRECTORY_REQUEST_TIMEOUT"),
		},
		Catalog: CatalogConfig{
			CacheEnabled: viper.GetBool("CATALOG_CACHE_ENABLED"),
			CacheTTL:     time.Duration(viper.GetInt("CATALOG_CACHE_TTL")) * time.Second,
			RefreshCron:  viper.GetString("CATALOG_REFRESH_CRON"),
			EventStream:  viper.GetString("CATALOG_EVENT_STREAM"),
		},
		Preferences: PreferencesConfig{
			Backend: viper.GetString("PREFERENCES_BACKEND"),
			Path:    viper.GetString("PREFERENCES_PATH"),
		},
		Display: DisplayConfig{
			TimeZone:   viper.GetString("DISPLAY_TIMEZONE"),
			TimeLayout: viper.GetString("DISPLAY_TIME_LAYOUT"),
		},
		Plots: PlotsConfig{
			DatasetPath: viper.GetString("PLOT_DATASET_PATH"),
		},
		Banner: BannerConfig{
			AssetDir: viper.GetString("BANNER_ASSET_DIR"),
		},
		Navigation: NavigationConfig{
			Enabled: viper.GetBool("NAVIGATION_ENABLED"),
			Stream:  viper.GetString("NAVIGATION_STREAM"),
			Group:   viper.GetString("NAVIGATION_GROUP"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled: viper.GetBool("WORKER_ENABLED"),
		},
	}

	if cfg.Preferences.Backend != "file" && cfg.Preferences.Backend != "postgres" {
		return nil, fmt.Errorf("unsupported preferences backend %q", cfg.Preferences.Backend)
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// DisplayLocation возвращает часовой пояс зрителя; "Local" и пустое значение - системный пояс
func (c *Config) DisplayLocation() (*time.Location, error) {
	switch c.Display.TimeZone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Display.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid display timezone %q: %w", c.Display.TimeZone, err)
	}
	return loc, nil
}
