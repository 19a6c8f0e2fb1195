package q3tool

import (
	"context"
	"errors"
	"sync"

	"github.com/haveachin/q3tool/pkg/event"
	"github.com/haveachin/q3tool/pkg/q3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var ErrPluginViaConfigDisabled = errors.New("plugin was disabled via config")

// API is the view plugins get of the monitored server.
type API interface {
	Snapshot() Snapshot
	Players(nameRegex string) ([]q3.Player, error)
	Rcon(ctx context.Context, command string) (string, error)
}

type PluginAPI interface {
	API
	EventBus() event.Bus
	Logger() *zap.Logger
}

// Plugin is an optional feature of the monitor daemon. Load and Reload receive the whole config
// and return ErrPluginViaConfigDisabled if the plugin should not run.
type Plugin interface {
	Name() string
	Version() string
	Load(cfg map[string]any) error
	Reload(cfg map[string]any) error
	Enable(PluginAPI) error
	Disable() error
}

type pluginAPI struct {
	API
	eventBus event.Bus
	logger   *zap.Logger
}

func (api pluginAPI) EventBus() event.Bus {
	return api.eventBus
}

func (api pluginAPI) Logger() *zap.Logger {
	return api.logger
}

type pluginState struct {
	plugin  Plugin
	loaded  bool
	enabled bool
}

type PluginManager struct {
	API      API
	Logger   *zap.Logger
	EventBus event.Bus

	mu      sync.Mutex
	plugins []*pluginState
}

func (pm *PluginManager) RegisterPlugin(p Plugin) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.plugins = append(pm.plugins, &pluginState{plugin: p})
}

func (pm *PluginManager) logger() *zap.Logger {
	if pm.Logger == nil {
		return zap.NewNop()
	}
	return pm.Logger
}

func (pm *PluginManager) pluginAPI(p Plugin) PluginAPI {
	return pluginAPI{
		API:      pm.API,
		eventBus: pm.EventBus,
		logger:   pm.logger().With(zap.String("plugin", p.Name())),
	}
}

// LoadPlugins passes the config to every registered plugin. Plugins that are disabled via
// config are skipped silently.
func (pm *PluginManager) LoadPlugins(cfg map[string]any) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	var result error
	for _, ps := range pm.plugins {
		pm.logger().Debug("loading plugin", logPlugin(ps.plugin)...)
		err := ps.plugin.Load(cfg)
		ps.loaded = err == nil
		if err == nil || errors.Is(err, ErrPluginViaConfigDisabled) {
			continue
		}
		result = multierr.Append(result, err)
	}
	return result
}

// EnablePlugins enables every loaded plugin.
func (pm *PluginManager) EnablePlugins() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	var result error
	for _, ps := range pm.plugins {
		if !ps.loaded || ps.enabled {
			continue
		}
		if err := pm.enable(ps); err != nil {
			result = multierr.Append(result, err)
		}
	}
	return result
}

func (pm *PluginManager) enable(ps *pluginState) error {
	pm.logger().Info("enabling plugin", logPlugin(ps.plugin)...)
	if err := ps.plugin.Enable(pm.pluginAPI(ps.plugin)); err != nil {
		return err
	}
	ps.enabled = true
	return nil
}

func (pm *PluginManager) disable(ps *pluginState) error {
	pm.logger().Info("disabling plugin", logPlugin(ps.plugin)...)
	if err := ps.plugin.Disable(); err != nil {
		return err
	}
	ps.enabled = false
	return nil
}

// ReloadPlugins passes a changed config to every plugin. Enabled plugins that got disabled via
// config are disabled and plugins that got enabled via config are loaded and enabled.
func (pm *PluginManager) ReloadPlugins(cfg map[string]any) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	var result error
	for _, ps := range pm.plugins {
		if !ps.enabled {
			err := ps.plugin.Load(cfg)
			ps.loaded = err == nil
			if errors.Is(err, ErrPluginViaConfigDisabled) {
				continue
			} else if err != nil {
				result = multierr.Append(result, err)
				continue
			}

			if err := pm.enable(ps); err != nil {
				result = multierr.Append(result, err)
			}
			continue
		}

		err := ps.plugin.Reload(cfg)
		if errors.Is(err, ErrPluginViaConfigDisabled) {
			ps.loaded = false
			if err := pm.disable(ps); err != nil {
				result = multierr.Append(result, err)
			}
			continue
		} else if err != nil {
			result = multierr.Append(result, err)
		}
	}
	return result
}

// DisablePlugins disables every enabled plugin.
func (pm *PluginManager) DisablePlugins() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	var result error
	for _, ps := range pm.plugins {
		if !ps.enabled {
			continue
		}
		if err := pm.disable(ps); err != nil {
			result = multierr.Append(result, err)
		}
	}
	return result
}
