package config

import (
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	ServerName string       `mapstructure:"server_name" yaml:"server_name"`
	Port       int          `mapstructure:"port" yaml:"port"`
	Gemini     GeminiConfig `mapstructure:"gemini" yaml:"gemini"`
	Search     SearchConfig `mapstructure:"search" yaml:"search"`
	Chat       ChatConfig   `mapstructure:"chat" yaml:"chat"`
	Store      StoreConfig  `mapstructure:"store" yaml:"store"`
	Redis      RedisConfig  `mapstructure:"redis" yaml:"redis"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	Model  string `mapstructure:"model" yaml:"model"`
}

type SearchConfig struct {
	APIKey   string `mapstructure:"api_key" yaml:"api_key"`
	EngineID string `mapstructure:"engine_id" yaml:"engine_id"`
}

type ChatConfig struct {
	// MaxHistoryTurns counts user+assistant pairs, not single messages.
	MaxHistoryTurns int `mapstructure:"max_history_turns" yaml:"max_history_turns"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"` // memory | redis
}

type RedisConfig struct {
	Address  string `mapstructure:"address" yaml:"address"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Password string `mapstructure:"password" yaml:"password"`
	Database int    `mapstructure:"database" yaml:"database"`
}

func LoadConfig() (*AppConfig, error) {
	var config AppConfig

	viper.SetConfigFile("config/config.yml")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return &config, err
	}
	if err := viper.Unmarshal(&config); err != nil {
		return &config, err
	}
	return &config, nil
}
