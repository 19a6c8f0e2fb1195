package q3

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by the stage that produced it.
type Kind byte

const (
	// KindParse means a player score or ping was not a valid integer.
	KindParse Kind = iota + 1
	// KindTransport means binding, dialing, sending or receiving failed.
	KindTransport
	// KindTextDecode means the response was not valid UTF-8 under TextStrict.
	KindTextDecode
	// KindInvalidResponse means the response could not be split into its sections.
	KindInvalidResponse
	// KindMissingCredential means an rcon request was attempted without a password.
	KindMissingCredential
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindTransport:
		return "transport"
	case KindTextDecode:
		return "text decode"
	case KindInvalidResponse:
		return "invalid response"
	case KindMissingCredential:
		return "missing credential"
	}
	return "unknown"
}

// Sentinels for use with errors.Is. Any *Error matches the sentinel of its Kind.
var (
	ErrParse             = &Error{Kind: KindParse}
	ErrTransport         = &Error{Kind: KindTransport}
	ErrTextDecode        = &Error{Kind: KindTextDecode}
	ErrInvalidResponse   = &Error{Kind: KindInvalidResponse}
	ErrMissingCredential = &Error{Kind: KindMissingCredential}
)

// Error is the only error type returned by this package.
type Error struct {
	Kind Kind
	// Op is the operation that failed, e.g. "dial", "read" or "decode players".
	Op string
	// Field names the offending player field ("score" or "ping") for KindParse.
	Field string
	// Offset is the byte offset of the first invalid sequence for KindTextDecode.
	Offset int
	Err    error
}

func (e *Error) Error() string {
	msg := "q3: " + e.Kind.String()
	if e.Op != "" {
		msg += " (" + e.Op + ")"
	}

	switch e.Kind {
	case KindParse:
		if e.Field != "" {
			msg += fmt.Sprintf(": failed to parse %s", e.Field)
		}
	case KindTextDecode:
		msg += fmt.Sprintf(": invalid utf-8 at byte %d", e.Offset)
	case KindInvalidResponse:
		msg += ": response was empty or improperly formatted"
	case KindMissingCredential:
		msg += ": no rcon password configured"
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or zero if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
