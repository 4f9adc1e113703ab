// FilePath: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server      ServerConfig
	Database    PostgresConfig
	Redis       RedisConfig
	OpenWeather OpenWeatherConfig
	Collector   CollectorConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// OpenWeatherConfig configures the upstream provider. Units default to
// metric so temperatures arrive in Celsius and need no conversion.
type OpenWeatherConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	WeatherURL     string        `mapstructure:"weather_url"`
	PollutionURL   string        `mapstructure:"pollution_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Units          string        `mapstructure:"units"`
}

// CollectorConfig configures the background collection worker.
type CollectorConfig struct {
	Interval     time.Duration `mapstructure:"interval"`
	Pacing       time.Duration `mapstructure:"pacing"`
	StopTimeout  time.Duration `mapstructure:"stop_timeout"`
	ErrorBackoff time.Duration `mapstructure:"error_backoff"`
	Sink         string        `mapstructure:"sink"`
	CSVPath      string        `mapstructure:"csv_path"`
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetEnvPrefix("AIRWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Load config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.sslmode", "disable")

	// Redis defaults
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.cache_ttl", "60s")

	// Upstream defaults
	viper.SetDefault("openweather.weather_url", "https://api.openweathermap.org/data/2.5/weather")
	viper.SetDefault("openweather.pollution_url", "https://api.openweathermap.org/data/2.5/air_pollution")
	viper.SetDefault("openweather.request_timeout", "10s")
	viper.SetDefault("openweather.units", "metric")

	// Collector defaults: hourly passes, one second between cities
	viper.SetDefault("collector.interval", "3600s")
	viper.SetDefault("collector.pacing", "1s")
	viper.SetDefault("collector.stop_timeout", "10s")
	viper.SetDefault("collector.error_backoff", "10s")
	viper.SetDefault("collector.sink", "postgres")
	viper.SetDefault("collector.csv_path", "cities_weather_data.csv")
}

func validateConfig(config *Config) error {
	if config.OpenWeather.APIKey == "" {
		return fmt.Errorf("openweather api_key is required")
	}
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if config.Collector.Sink != "postgres" && config.Collector.Sink != "csv" {
		return fmt.Errorf("collector sink must be postgres or csv, got %q", config.Collector.Sink)
	}
	if config.Collector.Interval < 60*time.Second {
		return fmt.Errorf("collector interval must be at least 60 seconds")
	}
	return nil
}
