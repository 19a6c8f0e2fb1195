package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/haveachin/q3tool/internal/app/q3tool"
	"github.com/haveachin/q3tool/internal/pkg/config"
	"github.com/haveachin/q3tool/pkg/ipfilter"
	"go.uber.org/zap"
)

type PluginConfig struct {
	API struct {
		Enable         bool     `mapstructure:"enable"`
		Bind           string   `mapstructure:"bind"`
		AllowRcon      bool     `mapstructure:"allowRcon"`
		AllowedIPs     []string `mapstructure:"allowedIPs"`
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
		AllowedMethods []string `mapstructure:"allowedMethods"`
		AllowedHeaders []string `mapstructure:"allowedHeaders"`
	} `mapstructure:"api"`
}

type Plugin struct {
	Config PluginConfig
	logger *zap.Logger
	api    q3tool.API

	quit chan bool
	done chan struct{}
}

func (p Plugin) Name() string {
	return "API"
}

func (p Plugin) Version() string {
	return "internal"
}

func (p *Plugin) Load(cfg map[string]any) error {
	pluginCfg := PluginConfig{}
	if err := config.Unmarshal(cfg, &pluginCfg); err != nil {
		return err
	}
	p.Config = pluginCfg

	if !p.Config.API.Enable {
		return q3tool.ErrPluginViaConfigDisabled
	}

	if _, err := ipfilter.Parse(ipfilter.ModeAllow, p.Config.API.AllowedIPs); err != nil {
		return err
	}

	return nil
}

func (p *Plugin) Reload(cfg map[string]any) error {
	var pluginCfg PluginConfig
	if err := config.Unmarshal(cfg, &pluginCfg); err != nil {
		return err
	}

	if !pluginCfg.API.Enable {
		return q3tool.ErrPluginViaConfigDisabled
	}

	if _, err := ipfilter.Parse(ipfilter.ModeAllow, pluginCfg.API.AllowedIPs); err != nil {
		return err
	}

	p.stopAPIServer()
	p.Config = pluginCfg
	p.startAPIServer()
	return nil
}

func (p *Plugin) Enable(api q3tool.PluginAPI) error {
	p.logger = api.Logger()
	p.api = api

	p.startAPIServer()
	return nil
}

func (p *Plugin) Disable() error {
	p.stopAPIServer()
	return nil
}

func (p *Plugin) startAPIServer() {
	p.quit = make(chan bool)
	p.done = make(chan struct{})
	go p.serve(p.Config, p.quit, p.done)
}

func (p *Plugin) stopAPIServer() {
	if p.quit == nil {
		return
	}
	close(p.quit)
	<-p.done
	p.quit = nil
}

func (p *Plugin) serve(cfg PluginConfig, quit <-chan bool, done chan<- struct{}) {
	defer close(done)

	router, err := newRouter(p.api, cfg)
	if err != nil {
		p.logger.Error("failed to build api router", zap.Error(err))
		return
	}

	srv := http.Server{
		Handler:           router,
		Addr:              cfg.API.Bind,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.logger.Error("failed to start server", zap.Error(err))
			return
		}
	}()

	p.logger.Info("started api server",
		zap.String("bind", cfg.API.Bind),
		zap.Bool("allowRcon", cfg.API.AllowRcon),
	)

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}

// newRouter builds the API routes. An empty allowedIPs list allows every client.
func newRouter(api q3tool.API, cfg PluginConfig) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	// Filter before RealIP so forwarded headers cannot bypass the filter.
	if len(cfg.API.AllowedIPs) > 0 {
		f, err := ipfilter.Parse(ipfilter.ModeAllow, cfg.API.AllowedIPs)
		if err != nil {
			return nil, err
		}
		r.Use(ipfilter.Middleware(f))
	}
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.API.AllowedOrigins,
		AllowedMethods:   cfg.API.AllowedMethods,
		AllowedHeaders:   cfg.API.AllowedHeaders,
		AllowCredentials: false,
	}))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", getStatusHandler(api))
		r.Route("/vars", func(r chi.Router) {
			r.Get("/", getVarsHandler(api))
			r.Get("/{key}", getVarHandler(api))
		})
		r.Get("/players", getPlayersHandler(api))
		r.Post("/rcon", postRconHandler(api, cfg.API.AllowRcon))
	})
	return r, nil
}
