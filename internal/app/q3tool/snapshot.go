package q3tool

import (
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/haveachin/q3tool/pkg/q3"
)

// Snapshot is the outcome of a single poll.
type Snapshot struct {
	Server     string
	ServerInfo q3.ServerInfo
	PolledAt   time.Time
	// Fingerprint is the xxhash of the raw status response.
	Fingerprint uint64
	// Err is set if the poll failed. ServerInfo then holds the data of the last successful poll.
	Err error
}

// Up reports whether the last poll succeeded.
func (s Snapshot) Up() bool {
	return !s.PolledAt.IsZero() && s.Err == nil
}

func fingerprint(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// diffRoster compares two player lists by name. Names are counted, so two players sharing a name
// are tracked as two separate players.
func diffRoster(prev, next []q3.Player) (joined, left []q3.Player) {
	count := map[string]int{}
	for _, p := range prev {
		count[p.Name]++
	}

	for _, p := range next {
		if count[p.Name] > 0 {
			count[p.Name]--
			continue
		}
		joined = append(joined, p)
	}

	for i := len(prev) - 1; i >= 0; i-- {
		p := prev[i]
		if count[p.Name] > 0 {
			count[p.Name]--
			left = append(left, p)
		}
	}

	for i, j := 0, len(left)-1; i < j; i, j = i+1, j-1 {
		left[i], left[j] = left[j], left[i]
	}

	return joined, left
}
