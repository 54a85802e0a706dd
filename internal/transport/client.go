package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/molviz/internal/loader"
	"github.com/Faultbox/molviz/internal/logger"
	"github.com/Faultbox/molviz/internal/scene"
	"github.com/Faultbox/molviz/internal/wire"
	"github.com/Faultbox/molviz/pkg/pdb"
)

var errNoLibrary = errors.New("model message without library")

// Result is the outcome of one Load.
type Result struct {
	Tree    *scene.Tree
	Skipped []error // parts the deserializer dropped
	Err     error
}

// Options configures a Client.
type Options struct {
	Loader loader.Options
}

// DefaultOptions uses the default pipeline options.
func DefaultOptions() Options {
	return Options{Loader: loader.DefaultOptions()}
}

// Client loads scenes through a Boundary. Whether it uses the boundary is
// decided once, at construction.
type Client struct {
	boundary Boundary
	sync     bool
	opts     Options
	log      *zap.Logger
}

// NewClient returns a client for b. A nil b gives a client that always
// builds in the caller's goroutine.
func NewClient(b Boundary, opts Options) *Client {
	c := &Client{
		boundary: b,
		sync:     b == nil,
		opts:     opts,
		log:      logger.Named("transport"),
	}
	if c.sync {
		c.log.Debug("no boundary, building synchronously")
	}
	return c
}

// Sync reports whether the client builds in the caller's goroutine.
func (c *Client) Sync() bool {
	return c.sync
}

// Load builds req and delivers exactly one Result on the returned channel.
// The result is the same whichever side of the boundary built it.
//
// ctx is checked before the request is submitted. Work already handed to the
// boundary is not cancelled; callers stop waiting by selecting on ctx
// themselves. If the boundary refuses the request or fails while handling
// it, the client builds locally instead. A build error reported by the
// boundary is delivered as is.
func (c *Client) Load(ctx context.Context, req Request) <-chan Result {
	out := make(chan Result, 1)
	if req.Options == nil {
		opts := c.opts.Loader
		req.Options = &opts
	}

	if err := ctx.Err(); err != nil {
		out <- Result{Err: err}
		return out
	}
	if c.sync {
		out <- c.loadSync(req)
		return out
	}

	// The first terminal message settles the result; later ones are ignored.
	var once sync.Once
	deliver := func(r Result) {
		once.Do(func() { out <- r })
	}
	fallback := func(reason error) {
		once.Do(func() {
			c.log.Warn("boundary failed, building locally",
				zap.String("request", requestName(req)), zap.Error(reason))
			go func() { out <- c.loadSync(req) }()
		})
	}

	worker := c.log.Named("worker").With(zap.String("request", requestName(req)))
	err := c.boundary.Submit(req, func(m Message) {
		switch m.Kind {
		case KindLog:
			worker.Info(m.Text)
		case KindModel:
			r, err := c.receive(m)
			if err != nil {
				fallback(err)
				return
			}
			deliver(r)
		case KindError:
			if m.Code == CodeBuild {
				deliver(Result{Err: errorFromMessage(m)})
				return
			}
			fallback(fmt.Errorf("%s: %s", m.Code, m.Text))
		default:
			worker.Warn("unexpected message", zap.String("kind", string(m.Kind)))
		}
	})
	if err != nil {
		c.log.Warn("boundary refused request, building synchronously",
			zap.String("request", requestName(req)), zap.Error(err))
		deliver(c.loadSync(req))
	}
	return out
}

// Close closes the boundary, if any.
func (c *Client) Close() error {
	if c.boundary == nil {
		return nil
	}
	return c.boundary.Close()
}

// receive rebuilds the scene carried by m and restores the parsed structure
// on its root.
func (c *Client) receive(m Message) (Result, error) {
	if m.Library == nil {
		return Result{}, errNoLibrary
	}
	res, err := wire.Deserialize(m.Library, m.Buffer)
	if err != nil {
		return Result{}, fmt.Errorf("decoding scene: %w", err)
	}

	root := res.Tree.Node(res.Tree.Root())
	if raw, ok := root.UserData.(json.RawMessage); ok {
		s := new(pdb.Structure)
		if err := json.Unmarshal(raw, s); err != nil {
			return Result{}, fmt.Errorf("decoding structure: %w", err)
		}
		root.UserData = s
	}
	return Result{Tree: res.Tree, Skipped: res.Skipped}, nil
}

func (c *Client) loadSync(req Request) Result {
	tree, err := build(req)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Tree: tree}
}
