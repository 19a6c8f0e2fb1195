//go:generate mockgen -destination=event_mock_test.go -package=q3tool_test github.com/haveachin/q3tool/pkg/event Bus
//go:generate mockgen -destination=q3_mock_test.go -package=q3tool_test github.com/haveachin/q3tool/pkg/q3 Transport
//go:generate mockgen -destination=q3tool_mock_test.go -package=q3tool_test github.com/haveachin/q3tool/internal/app/q3tool Plugin
package q3tool_test

import (
	"fmt"
	"strings"

	"github.com/haveachin/q3tool/internal/app/q3tool"
)

const testServer = "203.0.113.7:27960"

var getStatusPayload = []byte("\xFF\xFF\xFF\xFFgetstatus")

func testConfig() q3tool.Config {
	return q3tool.Config{
		Server: q3tool.ServerConfig{
			Address:      testServer,
			RconPassword: "secret",
		},
		Monitor: q3tool.MonitorConfig{
			Schedule: "@every 1h",
		},
	}
}

// statusPacket builds a getstatus response with the given player names, all with score 1 and
// ping 50.
func statusPacket(mapname string, names ...string) []byte {
	var sb strings.Builder
	sb.WriteString("\xFF\xFF\xFF\xFFstatusResponse\n")
	fmt.Fprintf(&sb, `\mapname\%s\sv_maxclients\16`, mapname)
	sb.WriteString("\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "1 50 %q\n", name)
	}
	return []byte(sb.String())
}

type statusPolledMatcher struct {
	changed bool
}

func (m statusPolledMatcher) Matches(x any) bool {
	e, ok := x.(q3tool.StatusPolledEvent)
	return ok && e.Changed == m.changed
}

func (m statusPolledMatcher) String() string {
	return fmt.Sprintf("is a StatusPolledEvent with Changed=%t", m.changed)
}
