package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("auto-catalog version %s, commit %s, built at %s", version, commit, date)
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
}

// DiscoveryConfig configures one discovery run: where the spec lives and
// how the resulting catalog is scoped.
type DiscoveryConfig struct {
	SpecURL          string        `mapstructure:"spec_url"`
	BaseURL          string        `mapstructure:"base_url"`
	IncludeResources []string      `mapstructure:"include_resources"`
	PathPrefix       string        `mapstructure:"path_prefix"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
}

type ServerMode string

const (
	ServerModeSSE   ServerMode = "sse"
	ServerModeSTDIO ServerMode = "stdio"
	ServerModeHTTP  ServerMode = "http"
)

type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	Host    string     `mapstructure:"host"`
	Mode    ServerMode `mapstructure:"mode"`
	Name    string     `mapstructure:"name"`
	Version string     `mapstructure:"version"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path"`
	AppendToFile      bool   `mapstructure:"append_to_file"`
	DisableConsole    bool   `mapstructure:"disable_console"`
}

// InitFlags initializes command line flags (without parsing)
func InitFlags() {
	pflag.String("mode", string(ServerModeSTDIO), "Server mode (stdio|sse|http)")
	pflag.String("spec-url", "", "URL of the OpenAPI/Swagger document")
	pflag.String("base-url", "", "Override for the API base URL")
	pflag.StringSlice("include-resources", nil, "Resource names to keep in the catalog")
	pflag.String("path-prefix", "", "Path prefix stripped before resource matching")
	// Note: no pflag.Parse() here as it's called in main.go
}

func Load() (*Config, error) {
	viper.Reset() // Ensure clean state

	viper.SetEnvPrefix("AUTO_CATALOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.name", "auto-catalog")
	viper.SetDefault("server.version", "0.1.0")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	// Registering defaults keeps these keys visible to Unmarshal so the
	// AUTO_CATALOG_DISCOVERY_* environment variables take effect.
	viper.SetDefault("discovery.spec_url", "")
	viper.SetDefault("discovery.base_url", "")
	viper.SetDefault("discovery.path_prefix", "")
	viper.SetDefault("discovery.fetch_timeout", 30*time.Second)

	// Load ./config.yaml when present; flags and env may carry everything
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/auto-catalog")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Set server mode from flag
	if mode := viper.GetString("mode"); mode != "" {
		switch ServerMode(mode) {
		case ServerModeSSE, ServerModeSTDIO, ServerModeHTTP:
			config.Server.Mode = ServerMode(mode)
		}
	}

	// Flag and environment overrides for discovery settings
	if specURL := viper.GetString("spec-url"); specURL != "" {
		config.Discovery.SpecURL = specURL
	}
	if baseURL := viper.GetString("base-url"); baseURL != "" {
		config.Discovery.BaseURL = baseURL
	}
	if resources := viper.GetStringSlice("include-resources"); len(resources) > 0 {
		config.Discovery.IncludeResources = resources
	}
	if prefix := viper.GetString("path-prefix"); prefix != "" {
		config.Discovery.PathPrefix = prefix
	}

	if config.Discovery.SpecURL == "" {
		return nil, fmt.Errorf("spec url is required, please adjust the config or pass --spec-url or AUTO_CATALOG_DISCOVERY_SPEC_URL environment variable")
	}

	return &config, nil
}
