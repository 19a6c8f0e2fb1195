package webhook

import (
	"context"
	"errors"
	"sync"

	"github.com/haveachin/q3tool/internal/app/q3tool"
	"github.com/haveachin/q3tool/internal/pkg/config"
	"github.com/haveachin/q3tool/pkg/event"
	"github.com/haveachin/q3tool/pkg/q3"
	"github.com/haveachin/q3tool/pkg/webhook"
	"go.uber.org/zap"
)

type Plugin struct {
	Config   PluginConfig
	logger   *zap.Logger
	eventBus event.Bus
	eventID  string

	mu   sync.RWMutex
	whks []webhook.Webhook
}

func (p *Plugin) Name() string {
	return "Webhook"
}

func (p *Plugin) Version() string {
	return "internal"
}

func (p *Plugin) Load(cfg map[string]any) error {
	var pluginCfg PluginConfig
	if err := config.Unmarshal(cfg, &pluginCfg); err != nil {
		return err
	}

	if len(pluginCfg.Webhooks) == 0 {
		return q3tool.ErrPluginViaConfigDisabled
	}

	whks, err := pluginCfg.loadWebhooks()
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.Config = pluginCfg
	p.whks = whks
	return nil
}

func (p *Plugin) Reload(cfg map[string]any) error {
	return p.Load(cfg)
}

func (p *Plugin) Enable(api q3tool.PluginAPI) error {
	p.logger = api.Logger()
	p.eventBus = api.EventBus()

	id, _ := p.eventBus.AttachHandlerFunc("", p.handleEvent)
	p.eventID = id

	return nil
}

func (p *Plugin) Disable() error {
	p.eventBus.DetachRecipient(p.eventID)
	return nil
}

type playerData struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Ping  int    `json:"ping"`
}

type eventData struct {
	Server      string            `json:"server"`
	Player      *playerData       `json:"player,omitempty"`
	Error       string            `json:"error,omitempty"`
	Changed     *bool             `json:"changed,omitempty"`
	Fingerprint uint64            `json:"fingerprint,omitempty"`
	Vars        map[string]string `json:"vars,omitempty"`
	Players     []playerData      `json:"players,omitempty"`
}

func newPlayerData(pl q3.Player) playerData {
	return playerData{
		Name:  pl.Name,
		Score: pl.Score,
		Ping:  pl.Ping,
	}
}

func (p *Plugin) handleEvent(e event.Event) {
	var data eventData
	switch e := e.Data.(type) {
	case q3tool.StatusPolledEvent:
		data.Server = e.Snapshot.Server
		changed := e.Changed
		data.Changed = &changed
		data.Fingerprint = e.Snapshot.Fingerprint
		data.Vars = e.Snapshot.ServerInfo.Vars
		data.Players = make([]playerData, 0, len(e.Snapshot.ServerInfo.Players))
		for _, pl := range e.Snapshot.ServerInfo.Players {
			data.Players = append(data.Players, newPlayerData(pl))
		}
	case q3tool.PollFailedEvent:
		data.Server = e.Server
		data.Error = e.Err.Error()
	case q3tool.PlayerJoinEvent:
		data.Server = e.Server
		pd := newPlayerData(e.Player)
		data.Player = &pd
	case q3tool.PlayerLeaveEvent:
		data.Server = e.Server
		pd := newPlayerData(e.Player)
		data.Player = &pd
	default:
		return
	}

	p.dispatchEvent(e, data)
}

func (p *Plugin) dispatchEvent(e event.Event, data eventData) {
	el := webhook.EventLog{
		Topics:     e.Topics,
		OccurredAt: e.OccurredAt,
		Data:       data,
	}

	p.mu.RLock()
	whks := p.whks
	p.mu.RUnlock()

	for _, wh := range whks {
		if err := wh.DispatchEvent(context.Background(), el); err != nil && !errors.Is(err, webhook.ErrEventTypeNotAllowed) {
			p.logger.Error("dispatching webhook event",
				zap.Error(err),
				zap.String("webhookId", wh.ID),
			)
		}
	}
}
