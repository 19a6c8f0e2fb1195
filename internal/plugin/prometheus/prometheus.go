package prometheus

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/haveachin/q3tool/internal/app/q3tool"
	"github.com/haveachin/q3tool/internal/pkg/config"
	"github.com/haveachin/q3tool/pkg/event"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	up = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "q3tool_up",
		Help: "Whether the last poll of the server succeeded",
	})
	pollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "q3tool_polls_total",
		Help: "The total number of polls by result",
	}, []string{"result"})
	playersOnline = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "q3tool_players",
		Help: "The number of players on the server",
	})
	maxClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "q3tool_max_clients",
		Help: "The sv_maxclients value of the server",
	})
	playerScore = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "q3tool_player_score",
		Help: "The score of each player",
	}, []string{"name"})
	playerPing = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "q3tool_player_ping",
		Help: "The ping of each player in milliseconds",
	}, []string{"name"})
)

type PluginConfig struct {
	Prometheus struct {
		Enable bool   `mapstructure:"enable"`
		Bind   string `mapstructure:"bind"`
	} `mapstructure:"prometheus"`
}

type Plugin struct {
	Config   PluginConfig
	logger   *zap.Logger
	eventBus event.Bus
	eventID  string

	quit chan bool
	done chan struct{}
}

func (p Plugin) Name() string {
	return "Prometheus"
}

func (p Plugin) Version() string {
	return "internal"
}

func (p *Plugin) Load(cfg map[string]any) error {
	var pluginCfg PluginConfig
	if err := config.Unmarshal(cfg, &pluginCfg); err != nil {
		return err
	}
	p.Config = pluginCfg

	if !p.Config.Prometheus.Enable {
		return q3tool.ErrPluginViaConfigDisabled
	}

	if p.Config.Prometheus.Bind == "" {
		return errors.New("prometheus bind empty, not enabling prometheus plugin")
	}

	return nil
}

func (p *Plugin) Reload(cfg map[string]any) error {
	prevBind := p.Config.Prometheus.Bind
	if err := p.Load(cfg); err != nil {
		return err
	}

	if prevBind == p.Config.Prometheus.Bind {
		return nil
	}

	p.stopServer()
	p.startServer()
	return nil
}

func (p *Plugin) Enable(api q3tool.PluginAPI) error {
	p.logger = api.Logger()
	p.eventBus = api.EventBus()

	id, _ := p.eventBus.AttachHandlerFunc("", p.handleEvent,
		q3tool.StatusPolledEventTopic,
		q3tool.PollFailedEventTopic,
	)
	p.eventID = id

	p.startServer()
	return nil
}

func (p *Plugin) Disable() error {
	p.eventBus.DetachRecipient(p.eventID)
	p.stopServer()
	return nil
}

func (p *Plugin) startServer() {
	p.quit = make(chan bool)
	p.done = make(chan struct{})
	go p.serve(p.Config.Prometheus.Bind, p.quit, p.done)
}

func (p *Plugin) stopServer() {
	if p.quit == nil {
		return
	}
	close(p.quit)
	<-p.done
	p.quit = nil
}

func (p *Plugin) serve(bind string, quit <-chan bool, done chan<- struct{}) {
	defer close(done)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := http.Server{
		Handler:           mux,
		Addr:              bind,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		p.logger.Info("starting prometheus listener", zap.String("bind", bind))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.logger.Error("failed to start prometheus listener", zap.Error(err))
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}

func (p *Plugin) handleEvent(e event.Event) {
	switch e := e.Data.(type) {
	case q3tool.StatusPolledEvent:
		recordSnapshot(e.Snapshot)
	case q3tool.PollFailedEvent:
		up.Set(0)
		pollsTotal.WithLabelValues("error").Inc()
	}
}

func recordSnapshot(s q3tool.Snapshot) {
	up.Set(1)
	pollsTotal.WithLabelValues("ok").Inc()
	playersOnline.Set(float64(len(s.ServerInfo.Players)))

	if n, err := strconv.Atoi(s.ServerInfo.Vars["sv_maxclients"]); err == nil {
		maxClients.Set(float64(n))
	}

	// Players that left must not keep their last values.
	playerScore.Reset()
	playerPing.Reset()
	for _, pl := range s.ServerInfo.Players {
		playerScore.WithLabelValues(pl.Name).Set(float64(pl.Score))
		playerPing.WithLabelValues(pl.Name).Set(float64(pl.Ping))
	}
}
