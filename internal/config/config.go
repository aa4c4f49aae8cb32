package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults
const (
	DefaultServerURL = "http://localhost:8000/api"
	DefaultDBPath    = "hospctl.db"
	DefaultTimeout   = 30 * time.Second
)

// Config - настройки клиента
type Config struct {
	ServerURL string        `mapstructure:"server_url"`
	DBPath    string        `mapstructure:"db_path"`
	LogLevel  string        `mapstructure:"log_level"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// Load читает конфигурацию в порядке приоритета: значения по умолчанию,
// затем опциональный hospctl.yml, затем переменные окружения HOSPCTL_*.
// Флаги командной строки накладываются поверх уже в CLI.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server_url", DefaultServerURL)
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("log_level", "info")

	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")
	v.SetConfigName("hospctl")
	v.SetConfigType("yml")

	v.SetEnvPrefix("HOSPCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Конфиг-файл опционален, любая другая ошибка чтения - фатальна
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}
