package q3

import (
	"bytes"
	"strings"
)

// OOBMarker prefixes every connectionless packet in both directions.
var OOBMarker = []byte{0xFF, 0xFF, 0xFF, 0xFF}

const (
	CommandGetStatus = "getstatus"
	CommandRcon      = "rcon"
)

// Request is an out-of-band command. Arguments are appended verbatim, each preceded by a single
// space. Nothing is escaped, so arguments must not contain newlines or NUL bytes.
type Request struct {
	Command string
	Args    []string
}

// StatusRequest returns a getstatus request.
func StatusRequest() Request {
	return Request{Command: CommandGetStatus}
}

// RconRequest returns an rcon request for command authenticated with password. An empty password
// is rejected with a KindMissingCredential error.
func RconRequest(password, command string) (Request, error) {
	if password == "" {
		return Request{}, &Error{Kind: KindMissingCredential, Op: "encode rcon"}
	}

	return Request{
		Command: CommandRcon,
		Args:    []string{password, command},
	}, nil
}

// MarshalBinary encodes the request into its wire form. It satisfies the
// [encoding.BinaryMarshaler] interface and never fails.
func (r Request) MarshalBinary() ([]byte, error) {
	size := len(OOBMarker) + len(r.Command)
	for _, arg := range r.Args {
		size += 1 + len(arg)
	}

	b := bytes.NewBuffer(make([]byte, 0, size))
	b.Write(OOBMarker)
	b.WriteString(r.Command)
	for _, arg := range r.Args {
		b.WriteByte(' ')
		b.WriteString(arg)
	}

	return b.Bytes(), nil
}

// String returns the command line without the marker.
func (r Request) String() string {
	if len(r.Args) == 0 {
		return r.Command
	}
	return r.Command + " " + strings.Join(r.Args, " ")
}

// scrubbed returns a copy of r safe for logging. The rcon password is replaced by a fixed mask.
func (r Request) scrubbed() Request {
	if r.Command != CommandRcon || len(r.Args) == 0 {
		return r
	}

	args := make([]string, len(r.Args))
	copy(args, r.Args)
	args[0] = "xxxxx"
	return Request{Command: r.Command, Args: args}
}
