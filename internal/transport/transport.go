// Package transport moves scene building behind an isolated worker.
//
// A Boundary accepts build requests and answers with Messages. The
// in-process Worker runs each request on its own goroutine and replies with a
// serialized scene: one descriptor plus one buffer whose ownership passes to
// the receiver. The Client hides the boundary behind a single Load call and
// builds in the caller's goroutine when no boundary is available.
package transport

import (
	"errors"
	"io/fs"

	"github.com/Faultbox/molviz/internal/geometry"
	"github.com/Faultbox/molviz/internal/loader"
	"github.com/Faultbox/molviz/internal/wire"
)

// Transport errors.
var (
	ErrBoundaryClosed = errors.New("boundary closed")
	ErrQueueFull      = errors.New("worker queue full")
	ErrEmptyRequest   = errors.New("request has neither text nor path")
)

// Kind tags a Message.
type Kind string

const (
	KindLog   Kind = "log"   // progress line, Text set
	KindModel Kind = "model" // finished scene, Library and Buffer set
	KindError Kind = "error" // build failure, Text set
)

// Code classifies an error message. Only CodeBuild reports a failure of the
// request itself; every other code is a failure of the boundary.
type Code string

const (
	CodeBuild  Code = "build"  // the pipeline rejected the request
	CodeClosed Code = "closed" // the boundary shut down before building
	CodePanic  Code = "panic"  // the boundary crashed while building
)

// Message is one reply crossing the boundary. Every request produces any
// number of log messages followed by exactly one model or error message.
type Message struct {
	Kind    Kind
	Text    string
	Library *wire.Library
	Buffer  []byte

	// Error messages only.
	Code  Code
	Cause string // name of the sentinel the build error wraps, if any
}

// Request asks for one document to be built. Text wins over Path when both
// are set.
type Request struct {
	Name string // root node name; derived from Path when empty
	Text string
	Path string

	// Options overrides the client's pipeline options when set. The worker
	// uses loader.DefaultOptions for a request without options.
	Options *loader.Options
}

// causes lists the errors whose identity survives the boundary, by name.
var causes = map[string]error{
	"too_many_atoms":       geometry.ErrTooManyAtoms,
	"primitive_too_large":  geometry.ErrPrimitiveTooLarge,
	"invalid_color_scheme": geometry.ErrInvalidColorScheme,
	"invalid_ball_shape":   geometry.ErrInvalidBallShape,
	"model_out_of_range":   geometry.ErrModelOutOfRange,
	"empty_request":        ErrEmptyRequest,
	"not_exist":            fs.ErrNotExist,
	"permission":           fs.ErrPermission,
}

// causeName returns the name under which err's sentinel crosses the
// boundary, or "" when it wraps none of them.
func causeName(err error) string {
	for name, sentinel := range causes {
		if errors.Is(err, sentinel) {
			return name
		}
	}
	return ""
}

// buildError is a build failure rebuilt on the receiving side. It reads like
// the original error and matches its sentinel with errors.Is.
type buildError struct {
	text  string
	cause error
}

func (e *buildError) Error() string { return e.text }
func (e *buildError) Unwrap() error { return e.cause }

// errorFromMessage rebuilds the error carried by a CodeBuild message.
func errorFromMessage(m Message) error {
	return &buildError{text: m.Text, cause: causes[m.Cause]}
}

// Boundary is an isolated execution context that builds scenes.
type Boundary interface {
	// Submit queues req. reply is called from the boundary's goroutine for
	// every message the request produces. A non-nil error means reply will
	// never be called.
	Submit(req Request, reply func(Message)) error

	// Close stops the boundary. Queued requests are answered with an error
	// message.
	Close() error
}
