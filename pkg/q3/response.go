package q3

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// TextMode selects how response bytes that are not valid UTF-8 are handled.
type TextMode byte

const (
	// TextLossy replaces every invalid byte with U+FFFD.
	TextLossy TextMode = iota
	// TextStrict fails with a KindTextDecode error.
	TextStrict
)

func (m TextMode) String() string {
	switch m {
	case TextLossy:
		return "lossy"
	case TextStrict:
		return "strict"
	}
	return "unknown"
}

// ServerInfo is the decoded payload of a statusResponse.
type ServerInfo struct {
	Vars    Vars     `json:"vars" yaml:"vars"`
	Players []Player `json:"players" yaml:"players"`
}

// TrimOOBMarker removes a leading out-of-band marker from b, if any.
func TrimOOBMarker(b []byte) []byte {
	return bytes.TrimPrefix(b, OOBMarker)
}

// DecodeText converts b into a string according to mode.
func DecodeText(b []byte, mode TextMode) (string, error) {
	if mode == TextStrict {
		if offset := invalidUTF8Offset(b); offset >= 0 {
			return "", &Error{Kind: KindTextDecode, Op: "decode text", Offset: offset}
		}
		return string(b), nil
	}

	decoded, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return "", &Error{Kind: KindTextDecode, Op: "decode text", Err: err}
	}
	return string(decoded), nil
}

func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}

// ParseStatusResponse decodes a raw statusResponse packet. The header line is discarded, the
// next line holds the server variables and the remaining lines the player roster. A packet
// without any line break is a KindInvalidResponse error.
func ParseStatusResponse(b []byte, mode TextMode) (ServerInfo, error) {
	text, err := DecodeText(TrimOOBMarker(b), mode)
	if err != nil {
		return ServerInfo{}, err
	}

	_, body, ok := strings.Cut(text, "\n")
	if !ok {
		return ServerInfo{}, &Error{Kind: KindInvalidResponse, Op: "split header"}
	}

	varSection, playerSection, _ := strings.Cut(body, "\n")

	players, err := ParsePlayers(playerSection)
	if err != nil {
		return ServerInfo{}, err
	}

	return ServerInfo{
		Vars:    ParseVars(varSection),
		Players: players,
	}, nil
}
