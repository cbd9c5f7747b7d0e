package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig
	HTTPServer  HTTPServerConfig
	Logger      LoggerConfig

	Database       DatabaseConfig
	OpenRouter     OpenRouterConfig
	Import         ImportConfig
	GoogleCalendar GoogleCalendarConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type DatabaseConfig struct {
	URL string
}

// OpenRouterConfig configures the language-model client.
// APIKey is the single required secret: its absence fails at startup,
// never mid-extraction.
type OpenRouterConfig struct {
	APIKey   string
	Model    string
	BaseURL  string
	Referer  string
	AppTitle string
}

// ImportConfig tunes the text-import pipeline.
type ImportConfig struct {
	DefaultDueDays  int
	Timezone        string
	RateLimitPerMin int
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Database.URL = viper.GetString("database.url")
	if dbURL := viper.GetString("database_url"); dbURL != "" {
		cfg.Database.URL = dbURL
	}

	cfg.OpenRouter.APIKey = viper.GetString("openrouter.api_key")
	cfg.OpenRouter.Model = viper.GetString("openrouter.model")
	cfg.OpenRouter.BaseURL = viper.GetString("openrouter.base_url")
	cfg.OpenRouter.Referer = viper.GetString("openrouter.referer")
	cfg.OpenRouter.AppTitle = viper.GetString("openrouter.app_title")
	if key := viper.GetString("openrouter_api_key"); key != "" {
		cfg.OpenRouter.APIKey = key
	}

	cfg.Import.DefaultDueDays = viper.GetInt("import.default_due_days")
	cfg.Import.Timezone = viper.GetString("import.timezone")
	cfg.Import.RateLimitPerMin = viper.GetInt("import.rate_limit_per_min")

	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("openrouter.model", "deepseek/deepseek-chat")
	viper.SetDefault("openrouter.app_title", "Assessment Planner")

	viper.SetDefault("import.default_due_days", 14)
	viper.SetDefault("import.timezone", "UTC")
	viper.SetDefault("import.rate_limit_per_min", 30)
}
