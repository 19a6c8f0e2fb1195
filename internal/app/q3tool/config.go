package q3tool

import (
	"errors"
	"fmt"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/haveachin/q3tool/internal/pkg/config"
	"github.com/haveachin/q3tool/pkg/q3"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ErrNoServerAddress = errors.New("no server address configured")

type ServerConfig struct {
	Address         string            `mapstructure:"address"`
	RconPassword    string            `mapstructure:"rconPassword"`
	Timeout         time.Duration     `mapstructure:"timeout"`
	BufferSize      datasize.ByteSize `mapstructure:"bufferSize"`
	StrictText      bool              `mapstructure:"strictText"`
	LogRconPassword bool              `mapstructure:"logRconPassword"`
}

func (cfg ServerConfig) TextMode() q3.TextMode {
	if cfg.StrictText {
		return q3.TextStrict
	}
	return q3.TextLossy
}

// ClientConfig translates the server section into the settings of a q3.Client.
func (cfg ServerConfig) ClientConfig(logger *zap.Logger) q3.ClientConfig {
	return q3.ClientConfig{
		Password:        cfg.RconPassword,
		TextMode:        cfg.TextMode(),
		BufferSize:      int(cfg.BufferSize.Bytes()),
		Timeout:         cfg.Timeout,
		Logger:          logger,
		LogRconPassword: cfg.LogRconPassword,
	}
}

type MonitorConfig struct {
	// Schedule is a cron spec like "@every 15s" or "*/1 * * * *".
	Schedule string `mapstructure:"schedule"`
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Monitor MonitorConfig `mapstructure:"monitor"`
}

// NewConfigFromMap decodes and validates the server and monitor sections of the config.
func NewConfigFromMap(data map[string]any) (Config, error) {
	var cfg Config
	if err := config.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.Server.Address == "" {
		return Config{}, ErrNoServerAddress
	}

	if _, err := cron.ParseStandard(cfg.Monitor.Schedule); err != nil {
		return Config{}, fmt.Errorf("invalid monitor schedule %q: %w", cfg.Monitor.Schedule, err)
	}

	return cfg, nil
}
