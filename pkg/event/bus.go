package event

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid"
)

var ErrRecipientNotFound = errors.New("target recipient not found")

// Bus is an event bus system that notifies all it's attached recipients of pushed events.
// Every recipient has its own worker, so a slow handler never blocks the publisher.
type Bus interface {
	// Push pushes an event with arbitrary data to the event bus.
	Push(data any, topics ...string)
	PushTo(to string, data any, topics ...string) error
	AttachHandler(id string, h Handler, topics ...string) (handlerID string, replaced bool)
	AttachHandlerFunc(id string, fn HandlerFunc, topics ...string) (handlerID string, replaced bool)
	DetachRecipient(id string) (success bool)
	DetachAllRecipients() (n int)
}

type internalBus struct {
	sync.RWMutex
	ws map[string]*worker
}

func NewInternalBus() Bus {
	return &internalBus{
		ws: map[string]*worker{},
	}
}

func (b *internalBus) Push(data any, topics ...string) {
	b.RLock()
	defer b.RUnlock()

	e := New(data, topics...)
	for _, w := range b.ws {
		w.push(e)
	}
}

func (b *internalBus) PushTo(to string, data any, topics ...string) error {
	b.RLock()
	defer b.RUnlock()

	w, ok := b.ws[to]
	if !ok {
		return ErrRecipientNotFound
	}
	w.push(New(data, topics...))
	return nil
}

func (b *internalBus) AttachHandler(id string, h Handler, topics ...string) (string, bool) {
	if h == nil {
		panic(fmt.Sprintf("AttachHandler called with id %q and nil handler", id))
	}

	if len(topics) > 0 {
		h = topicFilter(topics, h)
	}

	if id == "" {
		id = uuid.Must(uuid.NewV4()).String()
	}

	b.Lock()
	defer b.Unlock()

	w, replaced := b.ws[id]
	if replaced {
		w.close()
	}
	b.ws[id] = newWorker(h)

	return id, replaced
}

func (b *internalBus) AttachHandlerFunc(id string, fn HandlerFunc, topics ...string) (string, bool) {
	return b.AttachHandler(id, fn, topics...)
}

func (b *internalBus) DetachRecipient(id string) bool {
	b.Lock()
	defer b.Unlock()

	w, ok := b.ws[id]
	if !ok {
		return false
	}
	w.close()
	delete(b.ws, id)
	return true
}

func (b *internalBus) DetachAllRecipients() int {
	b.Lock()
	defer b.Unlock()

	n := len(b.ws)
	for _, w := range b.ws {
		w.close()
	}
	b.ws = map[string]*worker{}

	return n
}

func topicFilter(topics []string, h Handler) Handler {
	return HandlerFunc(func(e Event) {
		for _, topic := range topics {
			if e.hasTopic(topic) {
				h.Handle(e)
				return
			}
		}
	})
}

type worker struct {
	in   chan Event
	out  chan Event
	h    Handler
	once sync.Once
}

func newWorker(h Handler) *worker {
	w := &worker{
		in:  make(chan Event, 100),
		out: make(chan Event),
		h:   h,
	}
	go w.publish()
	go w.process()
	return w
}

func (w *worker) close() {
	w.once.Do(func() {
		close(w.in)
	})
}

// publish hands events to process and drops an event that is not picked up within 5 seconds.
func (w *worker) publish() {
	defer close(w.out)
	for e := range w.in {
		deadline := time.NewTimer(time.Second * 5)
		select {
		case w.out <- e:
			if !deadline.Stop() {
				<-deadline.C
			}
		case <-deadline.C:
		}
	}
}

func (w *worker) process() {
	for e := range w.out {
		w.h.Handle(e)
	}
}

// push never blocks; events are dropped while the worker's buffer is full.
func (w *worker) push(e Event) {
	select {
	case w.in <- e:
	default:
	}
}
