package q3tool

import (
	"github.com/haveachin/q3tool/pkg/q3"
	"go.uber.org/zap"
)

// This is just a collection of utility functions to have consistent log fields
// for every data field that is being logged.

func logServer(addr string) zap.Field {
	return zap.String("server", addr)
}

func logPlayer(p q3.Player) []zap.Field {
	return []zap.Field{
		zap.String("playerName", p.Name),
		zap.Int("playerScore", p.Score),
		zap.Int("playerPing", p.Ping),
	}
}

func logSnapshot(s Snapshot) []zap.Field {
	return []zap.Field{
		zap.Time("polledAt", s.PolledAt),
		zap.Uint64("fingerprint", s.Fingerprint),
		zap.Int("playerCount", len(s.ServerInfo.Players)),
		zap.Int("varCount", len(s.ServerInfo.Vars)),
	}
}

func logPlugin(p Plugin) []zap.Field {
	return []zap.Field{
		zap.String("pluginName", p.Name()),
		zap.String("pluginVersion", p.Version()),
	}
}
