package cmd

import (
	"errors"
	"os"
	"sync"

	"github.com/haveachin/q3tool/internal/app/q3tool"
	"github.com/haveachin/q3tool/internal/pkg/config"
	"github.com/haveachin/q3tool/internal/plugin/api"
	"github.com/haveachin/q3tool/internal/plugin/prometheus"
	"github.com/haveachin/q3tool/internal/plugin/webhook"
	"github.com/haveachin/q3tool/pkg/event"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath = "config.yml"

	mu            sync.Mutex
	monitor       *q3tool.Monitor
	pluginManager *q3tool.PluginManager

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Monitors a server and serves its status to the enabled plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Info("loading monitor from config",
				zap.String("config", configPath),
			)

			if _, err := os.Stat(configPath); err != nil && errors.Is(err, os.ErrNotExist) {
				if err := safeWriteFromEmbeddedFS("configs", "."); err != nil {
					return err
				}
			}

			defaults, err := defaultConfig()
			if err != nil {
				return err
			}

			cfg, err := config.New(configPath, defaults, onConfigChange, logger)
			if err != nil {
				return err
			}
			defer cfg.Close()

			data, err := cfg.Read()
			if err != nil {
				return err
			}

			monitorCfg, err := q3tool.NewConfigFromMap(data)
			if err != nil {
				return err
			}

			eventBus := event.NewInternalBus()
			defer eventBus.DetachAllRecipients()

			mu.Lock()
			monitor = q3tool.NewMonitor(monitorCfg, eventBus, logger)
			pluginManager = &q3tool.PluginManager{
				API:      monitor,
				Logger:   logger,
				EventBus: eventBus,
			}
			pluginManager.RegisterPlugin(&webhook.Plugin{})
			pluginManager.RegisterPlugin(&prometheus.Plugin{})
			pluginManager.RegisterPlugin(&api.Plugin{})

			logger.Debug("loading plugins")
			if err := pluginManager.LoadPlugins(data); err != nil {
				logger.Error("failed to load plugins", zap.Error(err))
			}
			logger.Debug("enabling plugins")
			if err := pluginManager.EnablePlugins(); err != nil {
				logger.Error("failed to enable plugins", zap.Error(err))
			}
			mu.Unlock()

			defer func() {
				if err := pluginManager.DisablePlugins(); err != nil {
					logger.Error("failed to disable plugins", zap.Error(err))
				}
			}()

			if err := monitor.Start(); err != nil {
				return err
			}
			defer monitor.Stop()

			<-cmd.Context().Done()
			logger.Info("shutting down")
			return nil
		},
	}
)

func init() {
	configPath = envString(envVarPrefix+"CONFIG", configPath)
	serveCmd.Flags().StringVarP(&configPath, "config", "c", configPath, "path of the config file")
}

// defaultConfig returns the embedded config. It fills in every key missing from the user's file.
func defaultConfig() (map[string]any, error) {
	bb, err := files.ReadFile("configs/config.yml")
	if err != nil {
		return nil, err
	}
	return config.Parse(bb)
}

func onConfigChange(data map[string]any) {
	mu.Lock()
	defer mu.Unlock()

	if monitor == nil {
		return
	}

	monitorCfg, err := q3tool.NewConfigFromMap(data)
	if err != nil {
		logger.Error("failed to load monitor config",
			zap.Error(err),
		)
		return
	}

	logger.Debug("reloading monitor")
	if err := monitor.Reload(monitorCfg); err != nil {
		logger.Error("failed to reload monitor",
			zap.Error(err),
		)
	}

	logger.Debug("reloading plugins")
	if err := pluginManager.ReloadPlugins(data); err != nil {
		logger.Error("failed to reload plugins",
			zap.Error(err),
		)
	}
}
