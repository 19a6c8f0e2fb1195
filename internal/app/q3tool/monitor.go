package q3tool

import (
	"context"
	"regexp"
	"sync"
	"time"

	"github.com/df-mc/atomic"
	"github.com/haveachin/q3tool/pkg/event"
	"github.com/haveachin/q3tool/pkg/q3"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Monitor polls a single server on a schedule and publishes the results to an event bus.
// Only the latest snapshot is kept.
type Monitor struct {
	// Transport overrides the UDP transport of the client. It has to be set before Start.
	Transport q3.Transport

	logger   *zap.Logger
	eventBus event.Bus
	snapshot *atomic.Value[Snapshot]

	mu      sync.Mutex
	cfg     Config
	client  *q3.Client
	cron    *cron.Cron
	entryID cron.EntryID
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	wg      sync.WaitGroup

	// pollMu is always acquired before mu.
	pollMu sync.Mutex
	// roster is the player list of the last successful poll; nil before the first one.
	roster []q3.Player
}

func NewMonitor(cfg Config, eventBus event.Bus, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}

	if eventBus == nil {
		eventBus = event.NewInternalBus()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Monitor{
		logger:   logger,
		eventBus: eventBus,
		snapshot: atomic.NewValue(Snapshot{Server: cfg.Server.Address}),
		cfg:      cfg,
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{logger}),
			cron.SkipIfStillRunning(cronLogger{logger}),
		)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start schedules the polls and runs the first one right away.
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return nil
	}

	m.client = m.newClient(m.cfg)
	id, err := m.cron.AddJob(m.cfg.Monitor.Schedule, m)
	if err != nil {
		return err
	}
	m.entryID = id
	m.started = true

	m.logger.Info("starting monitor",
		logServer(m.cfg.Server.Address),
		zap.String("schedule", m.cfg.Monitor.Schedule),
	)

	m.cron.Start()
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.Run()
	}()
	return nil
}

// Stop cancels a running poll and waits for it to return.
func (m *Monitor) Stop() {
	m.cancel()
	<-m.cron.Stop().Done()
	m.wg.Wait()
}

// Run implements cron.Job.
func (m *Monitor) Run() {
	m.Poll(m.ctx)
}

// Reload applies a new config. The snapshot is kept unless the server address changed.
func (m *Monitor) Reload(cfg Config) error {
	m.pollMu.Lock()
	defer m.pollMu.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started && cfg.Monitor.Schedule != m.cfg.Monitor.Schedule {
		id, err := m.cron.AddJob(cfg.Monitor.Schedule, m)
		if err != nil {
			return err
		}
		m.cron.Remove(m.entryID)
		m.entryID = id
	}

	if cfg.Server.Address != m.cfg.Server.Address {
		m.roster = nil
		m.snapshot.Store(Snapshot{Server: cfg.Server.Address})
	}

	m.cfg = cfg
	m.client = m.newClient(cfg)

	m.logger.Info("reloaded monitor",
		logServer(cfg.Server.Address),
		zap.String("schedule", cfg.Monitor.Schedule),
	)
	return nil
}

func (m *Monitor) newClient(cfg Config) *q3.Client {
	clientCfg := cfg.Server.ClientConfig(m.logger)
	clientCfg.Transport = m.Transport
	return q3.NewClient(cfg.Server.Address, clientCfg)
}

func (m *Monitor) currentClient() (*q3.Client, q3.TextMode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		m.client = m.newClient(m.cfg)
	}
	return m.client, m.cfg.Server.TextMode()
}

// Poll queries the server once, stores the result as the latest snapshot and publishes events.
func (m *Monitor) Poll(ctx context.Context) Snapshot {
	m.pollMu.Lock()
	defer m.pollMu.Unlock()

	client, mode := m.currentClient()
	prev := m.snapshot.Load()
	s := Snapshot{
		Server:      client.Host(),
		ServerInfo:  prev.ServerInfo,
		PolledAt:    time.Now(),
		Fingerprint: prev.Fingerprint,
	}

	info, raw, err := m.fetch(ctx, client, mode)
	if err != nil {
		s.Err = err
		m.snapshot.Store(s)

		m.logger.Warn("failed to poll server",
			zap.Error(err),
			logServer(s.Server),
		)
		m.eventBus.Push(PollFailedEvent{
			Server: s.Server,
			Err:    err,
		}, PollFailedEventTopic)
		return s
	}

	s.ServerInfo = info
	s.Fingerprint = fingerprint(raw)
	m.snapshot.Store(s)

	changed := !prev.Up() || prev.Fingerprint != s.Fingerprint
	m.logger.Debug("polled server", append(logSnapshot(s), logServer(s.Server), zap.Bool("changed", changed))...)

	if m.roster != nil {
		joined, left := diffRoster(m.roster, info.Players)
		for _, p := range left {
			m.logger.Info("player left", append(logPlayer(p), logServer(s.Server))...)
			m.eventBus.Push(PlayerLeaveEvent{
				Server: s.Server,
				Player: p,
			}, PlayerLeaveEventTopic)
		}
		for _, p := range joined {
			m.logger.Info("player joined", append(logPlayer(p), logServer(s.Server))...)
			m.eventBus.Push(PlayerJoinEvent{
				Server: s.Server,
				Player: p,
			}, PlayerJoinEventTopic)
		}
	}
	m.roster = info.Players

	m.eventBus.Push(StatusPolledEvent{
		Snapshot: s,
		Changed:  changed,
	}, StatusPolledEventTopic)
	return s
}

func (m *Monitor) fetch(ctx context.Context, client *q3.Client, mode q3.TextMode) (q3.ServerInfo, []byte, error) {
	raw, err := client.Do(ctx, q3.StatusRequest())
	if err != nil {
		return q3.ServerInfo{}, nil, err
	}

	info, err := q3.ParseStatusResponse(raw, mode)
	if err != nil {
		return q3.ServerInfo{}, nil, err
	}
	return info, raw, nil
}

// Snapshot returns the result of the latest poll.
func (m *Monitor) Snapshot() Snapshot {
	return m.snapshot.Load()
}

// Players returns the players of the latest snapshot whose names match nameRegex.
// An empty nameRegex matches every player.
func (m *Monitor) Players(nameRegex string) ([]q3.Player, error) {
	re, err := regexp.Compile(nameRegex)
	if err != nil {
		return nil, err
	}

	players := []q3.Player{}
	for _, p := range m.Snapshot().ServerInfo.Players {
		if re.MatchString(p.Name) {
			players = append(players, p)
		}
	}
	return players, nil
}

// Rcon sends a remote console command to the monitored server.
func (m *Monitor) Rcon(ctx context.Context, command string) (string, error) {
	client, _ := m.currentClient()
	return client.Rcon(ctx, command)
}

type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
