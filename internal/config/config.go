package config

import (
	"strings"

	"github.com/spf13/viper"
)

// DefaultReleaseEndpoint serves public ffmpeg build metadata.
const DefaultReleaseEndpoint = "https://ffbinaries.com/api/v1"

// Config holds all the settings for the tool.
type Config struct {
	FFmpegPath      string `mapstructure:"ffmpeg_path"`
	AutoOverwrite   bool   `mapstructure:"auto_overwrite"`
	FullOutput      bool   `mapstructure:"full_output"`
	ReleaseEndpoint string `mapstructure:"release_endpoint"`
}

// Load initializes Viper and merges all config sources.
func Load(path string) (*Config, error) {
	v := viper.New()

	// 1. Set Defaults
	v.SetDefault("ffmpeg_path", "ffmpeg")
	v.SetDefault("auto_overwrite", true)
	v.SetDefault("full_output", false)
	v.SetDefault("release_endpoint", DefaultReleaseEndpoint)

	// 2. Read from File
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		// It's okay if the config file is missing; defaults and Env vars
		// still apply.
	}

	v.SetEnvPrefix("CCF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	err := v.Unmarshal(&cfg)
	return &cfg, err
}

// Save writes the settings back out so they persist across runs. The
// file is created if it does not exist yet.
func Save(path string, cfg *Config) error {
	v := viper.New()
	v.Set("ffmpeg_path", cfg.FFmpegPath)
	v.Set("auto_overwrite", cfg.AutoOverwrite)
	v.Set("full_output", cfg.FullOutput)
	v.Set("release_endpoint", cfg.ReleaseEndpoint)
	v.SetConfigType("yaml")
	return v.WriteConfigAs(path)
}
