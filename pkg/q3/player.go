package q3

import (
	"strconv"
	"strings"
)

// Player is one entry of the roster in a statusResponse.
type Player struct {
	Score int `json:"score" yaml:"score"`
	Ping  int `json:"ping" yaml:"ping"`
	// Name is exactly what the server sent, including color escapes and the surrounding quotes.
	Name string `json:"name" yaml:"name"`
}

// ParsePlayer decodes a line of the form `<score> <ping> "<name>"`. The name is everything after
// the second space and is not re-split. A missing or non-numeric score or ping is a KindParse
// error naming the field.
func ParsePlayer(line string) (Player, error) {
	parts := strings.SplitN(line, " ", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}

	score, err := strconv.Atoi(parts[0])
	if err != nil {
		return Player{}, &Error{Kind: KindParse, Op: "decode player", Field: "score", Err: err}
	}

	ping, err := strconv.Atoi(parts[1])
	if err != nil {
		return Player{}, &Error{Kind: KindParse, Op: "decode player", Field: "ping", Err: err}
	}

	return Player{
		Score: score,
		Ping:  ping,
		Name:  parts[2],
	}, nil
}

// ParsePlayers decodes the newline separated player section. Decoding stops at the first line
// that starts with a NUL byte; that line and everything after it is ignored. The empty segment
// after a terminating newline marks the end of input. The returned slice is never nil.
func ParsePlayers(section string) ([]Player, error) {
	players := []Player{}
	if section == "" {
		return players, nil
	}

	lines := strings.Split(section, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "\x00") {
			break
		}

		p, err := ParsePlayer(line)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}

	return players, nil
}
