// Package config loads AgentWatch configuration from a YAML file,
// environment variables and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     App     `mapstructure:"app"`
	Arxiv   Arxiv   `mapstructure:"arxiv"`
	News    News    `mapstructure:"news"`
	Notion  Notion  `mapstructure:"notion"`
	Refresh Refresh `mapstructure:"refresh"`
	Server  Server  `mapstructure:"server"`
	Output  Output  `mapstructure:"output"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// Arxiv holds preprint search configuration
type Arxiv struct {
	BaseURL    string `mapstructure:"base_url"`
	MaxResults int    `mapstructure:"max_results"`
	WindowDays int    `mapstructure:"window_days"`
	Timeout    string `mapstructure:"timeout"`
}

// News holds SerpAPI Google News configuration
type News struct {
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	MaxResults int    `mapstructure:"max_results"`
	Timeout    string `mapstructure:"timeout"`
}

// Notion holds workspace export configuration
type Notion struct {
	Token      string `mapstructure:"token"`
	DatabaseID string `mapstructure:"database_id"`
	Timeout    string `mapstructure:"timeout"`
}

// Refresh holds background trends refresh configuration
type Refresh struct {
	Interval string `mapstructure:"interval"`
}

// Server holds HTTP server configuration
type Server struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  string `mapstructure:"read_timeout"`
	WriteTimeout string `mapstructure:"write_timeout"`
	TemplateDir  string `mapstructure:"template_dir"`
}

// Output holds report output configuration
type Output struct {
	Directory string `mapstructure:"directory"`
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	// Configure viper
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".agentwatch")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	viper.SetDefault("arxiv.base_url", "http://export.arxiv.org/api/query")
	viper.SetDefault("arxiv.max_results", 5)
	viper.SetDefault("arxiv.window_days", 7)
	viper.SetDefault("arxiv.timeout", "10s")

	viper.SetDefault("news.base_url", "https://serpapi.com/search")
	viper.SetDefault("news.max_results", 5)
	viper.SetDefault("news.timeout", "10s")

	viper.SetDefault("notion.timeout", "15s")

	viper.SetDefault("refresh.interval", "2h")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "60s")
	viper.SetDefault("server.template_dir", "web/templates")

	viper.SetDefault("output.directory", "reports")
}

// bindEnvironmentVariables binds the credential environment variables the
// original deployment used, in addition to the AGENTWATCH_* scheme.
func bindEnvironmentVariables() {
	bindEnvKeys("news.api_key", []string{"SERPAPI_KEY", "AGENTWATCH_NEWS_API_KEY"})
	bindEnvKeys("notion.token", []string{"NOTION_TOKEN", "AGENTWATCH_NOTION_TOKEN"})
	bindEnvKeys("notion.database_id", []string{"NOTION_DB_ID", "AGENTWATCH_NOTION_DATABASE_ID"})
	bindEnvKeys("app.debug", []string{"AGENTWATCH_DEBUG"})
	bindEnvKeys("server.port", []string{"AGENTWATCH_PORT"})
	bindEnvKeys("refresh.interval", []string{"AGENTWATCH_REFRESH_INTERVAL"})
}

// bindEnvKeys binds multiple environment variable names to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	args := append([]string{viperKey}, envKeys...)
	if err := viper.BindEnv(args...); err != nil {
		fmt.Printf("Warning: Failed to bind env vars for %s: %v\n", viperKey, err)
	}
}

// Duration parses a duration string from the config, falling back to the
// given default when the value is empty or malformed.
func Duration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// Convenience accessors
func GetApp() App         { return Get().App }
func GetArxiv() Arxiv     { return Get().Arxiv }
func GetNews() News       { return Get().News }
func GetNotion() Notion   { return Get().Notion }
func GetRefresh() Refresh { return Get().Refresh }
func GetServer() Server   { return Get().Server }
func GetOutput() Output   { return Get().Output }

// HasValidSerpAPI reports whether a news API key is configured.
func HasValidSerpAPI() bool {
	return strings.TrimSpace(Get().News.APIKey) != ""
}

// HasValidNotion reports whether both workspace credentials are configured.
func HasValidNotion() bool {
	n := Get().Notion
	return strings.TrimSpace(n.Token) != "" && strings.TrimSpace(n.DatabaseID) != ""
}

// IsDebugMode reports whether debug mode is enabled.
func IsDebugMode() bool { return Get().App.Debug }

// Reset clears the cached global configuration. Intended for tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}
