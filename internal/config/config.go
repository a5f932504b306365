package config

import (
	"fmt"

	"github.com/leeyanqing2004/loyalty-platform/pkg/mq"
	"github.com/leeyanqing2004/loyalty-platform/pkg/mysql"
	"github.com/spf13/viper"
)

type Config struct {
	API      API          `mapstructure:"api"`
	Database mysql.Config `mapstructure:"database"`
	RabbitMQ mq.Config    `mapstructure:"rabbitmq"`
	Jobs     Jobs         `mapstructure:"jobs"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Jobs struct {
	RaffleSweepSchedule string `mapstructure:"raffle_sweep_schedule"`
	ReviewPollSeconds   int    `mapstructure:"review_poll_seconds"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Jobs.RaffleSweepSchedule == "" {
		cfg.Jobs.RaffleSweepSchedule = "@every 1m"
	}

	if cfg.Jobs.ReviewPollSeconds <= 0 {
		cfg.Jobs.ReviewPollSeconds = 30
	}

	return cfg, nil
}
