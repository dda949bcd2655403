package ga4

import (
	"fmt"

	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
	"github.com/spf13/viper"
)

const (
	AuthModeOAuth          = "oauth"
	AuthModeServiceAccount = "service_account"
)

// DefaultOrganicSources is the source/medium allow-list used when a profile
// does not configure its own.
var DefaultOrganicSources = []string{
	"google / organic",
	"bing / organic",
	"duckduckgo / organic",
	"yahoo / organic",
	"yandex / organic",
}

type Config struct {
	PropertyID      string   `mapstructure:"property_id"`
	AuthMode        string   `mapstructure:"auth_mode"`
	CredentialsFile string   `mapstructure:"credentials_file"`
	TokenFile       string   `mapstructure:"token_file"`
	OrganicSources  []string `mapstructure:"organic_sources"`
	CurrentStart    string   `mapstructure:"current_start"`
	CurrentEnd      string   `mapstructure:"current_end"`
	PreviousStart   string   `mapstructure:"previous_start"`
	PreviousEnd     string   `mapstructure:"previous_end"`
	OutputDir       string   `mapstructure:"output_dir"`
	SnapshotDB      string   `mapstructure:"snapshot_db"`
}

// LoadConfig loads a GA4 analysis profile from the specified profile path
func LoadConfig(profilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)
	v.SetDefault("auth_mode", AuthModeOAuth)
	v.SetDefault("token_file", "token.json")
	v.SetDefault("output_dir", "reports")
	v.SetDefault("snapshot_db", "traffic-atlas.db")
	v.SetDefault("organic_sources", DefaultOrganicSources)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse ga4 profile: %w", err)
	}

	if config.PropertyID == "" {
		return nil, fmt.Errorf("property_id is required in profile %s", profilePath)
	}
	if config.AuthMode != AuthModeOAuth && config.AuthMode != AuthModeServiceAccount {
		return nil, fmt.Errorf("unsupported auth_mode %q", config.AuthMode)
	}
	return &config, nil
}

// AnalysisConfig maps the profile onto the immutable pipeline configuration.
func (c *Config) AnalysisConfig() domain.AnalysisConfig {
	return domain.AnalysisConfig{
		PropertyID:     c.PropertyID,
		OrganicSources: c.OrganicSources,
		Current:        domain.DateRange{Start: c.CurrentStart, End: c.CurrentEnd},
		Previous:       domain.DateRange{Start: c.PreviousStart, End: c.PreviousEnd},
		Axes:           domain.DefaultAxes(),
		OutputDir:      c.OutputDir,
	}
}
