package main

import (
	"fmt"
	"strings"

	"coding_challenge_api/internal/challengegen"
	"coding_challenge_api/internal/llm"
	"coding_challenge_api/internal/repository"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Database repository.Config `yaml:"database"`
	Server   ServerConfig      `yaml:"server"`

	Auth  AuthConfig  `yaml:"auth"`
	Clerk ClerkConfig `yaml:"clerk"`

	LLM       llm.Config          `yaml:"llm"`
	Generator challengegen.Config `yaml:"generator"`

	LogLevel string `yaml:"logLevel"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwtSecret"`
	// DebugMode skips the session token signature check. Local
	// development only.
	DebugMode bool `yaml:"debugMode"`
}

type ClerkConfig struct {
	WebhookSecret string `yaml:"webhookSecret"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
