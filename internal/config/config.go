package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel       string `yaml:"log-level" env-default:"info"`
	HTTPPort       string `yaml:"http-port" env-default:"9090"`
	SocketPort     string `yaml:"socket-port" env-default:"8080"`
	StaticDir      string `yaml:"static-dir" env-default:"./static"`
	BotMoveDelayMS int    `yaml:"bot-move-delay-ms" env-default:"600"`
	Redis          Redis  `yaml:"redis"`
}

// Redis points at the optional cross-process message relay. An empty host
// leaves the relay disabled and the service purely local.
type Redis struct {
	Host string `yaml:"host" env-default:""`
	Port string `yaml:"port" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// BotMoveDelay is the realism delay before the AI answers a move.
func (that *Config) BotMoveDelay() time.Duration {
	return time.Duration(that.BotMoveDelayMS) * time.Millisecond
}
