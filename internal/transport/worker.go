package transport

import (
	"fmt"
	"sync"
	"time"

	"github.com/Faultbox/molviz/internal/loader"
	"github.com/Faultbox/molviz/internal/scene"
	"github.com/Faultbox/molviz/internal/wire"
	"github.com/Faultbox/molviz/pkg/pdb"
)

// DefaultQueueSize is the number of requests a Worker holds before Submit
// reports ErrQueueFull.
const DefaultQueueSize = 16

var _ Boundary = (*Worker)(nil)

type job struct {
	req   Request
	reply func(Message)
}

// Worker is a Boundary backed by one goroutine. Requests are built in
// submission order.
type Worker struct {
	jobs chan job
	done chan struct{}

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewWorker starts a worker whose queue holds queueSize requests.
func NewWorker(queueSize int) *Worker {
	if queueSize < 1 {
		queueSize = DefaultQueueSize
	}
	w := &Worker{
		jobs: make(chan job, queueSize),
		done: make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

// Submit implements Boundary.
func (w *Worker) Submit(req Request, reply func(Message)) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return ErrBoundaryClosed
	}
	select {
	case w.jobs <- job{req: req, reply: reply}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close implements Boundary. It waits for the request in progress.
func (w *Worker) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()

	w.wg.Wait()
	return nil
}

func (w *Worker) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			w.drain()
			return
		case j := <-w.jobs:
			w.handle(j)
		}
	}
}

// drain answers requests still queued at shutdown.
func (w *Worker) drain() {
	for {
		select {
		case j := <-w.jobs:
			j.reply(Message{Kind: KindError, Code: CodeClosed, Text: ErrBoundaryClosed.Error()})
		default:
			return
		}
	}
}

func (w *Worker) handle(j job) {
	defer func() {
		if r := recover(); r != nil {
			j.reply(Message{Kind: KindError, Code: CodePanic, Text: fmt.Sprintf("worker panic: %v", r)})
		}
	}()

	start := time.Now()
	j.reply(Message{Kind: KindLog, Text: "building " + requestName(j.req)})

	tree, err := build(j.req)
	if err != nil {
		j.reply(Message{Kind: KindError, Code: CodeBuild, Text: err.Error(), Cause: causeName(err)})
		return
	}

	lib, buf := wire.Serialize(tree)
	j.reply(Message{Kind: KindLog, Text: fmt.Sprintf("serialized %d objects, %d bytes in %s",
		len(lib.Objects), len(buf), time.Since(start).Round(time.Millisecond))})

	// The buffer now belongs to the receiver.
	j.reply(Message{Kind: KindModel, Library: lib, Buffer: buf})
}

// build runs the pipeline for req. Both sides of the boundary use it.
func build(req Request) (*scene.Tree, error) {
	opts := loader.DefaultOptions()
	if req.Options != nil {
		opts = *req.Options
	}
	switch {
	case req.Text != "":
		return loader.BuildText(requestName(req), req.Text, opts)
	case req.Path != "":
		tree, err := loader.BuildFile(req.Path, opts)
		if err == nil && req.Name != "" {
			tree.Node(tree.Root()).Name = req.Name
		}
		return tree, err
	default:
		return nil, ErrEmptyRequest
	}
}

func requestName(req Request) string {
	switch {
	case req.Name != "":
		return req.Name
	case req.Path != "":
		return pdb.StructureName(req.Path)
	default:
		return "molecule"
	}
}
