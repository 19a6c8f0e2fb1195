package q3tool

import (
	"github.com/haveachin/q3tool/pkg/q3"
)

const (
	// StatusPolledEventTopic is published after every successful poll.
	StatusPolledEventTopic = "StatusPolled"
	// PollFailedEventTopic is published when a poll did not produce a snapshot.
	PollFailedEventTopic  = "PollFailed"
	PlayerJoinEventTopic  = "PlayerJoin"
	PlayerLeaveEventTopic = "PlayerLeave"
)

type StatusPolledEvent struct {
	Snapshot Snapshot
	// Changed is false if the server sent the exact same response as in the previous poll.
	Changed bool
}

type PollFailedEvent struct {
	Server string
	Err    error
}

type PlayerJoinEvent struct {
	Server string
	Player q3.Player
}

type PlayerLeaveEvent struct {
	Server string
	Player q3.Player
}
