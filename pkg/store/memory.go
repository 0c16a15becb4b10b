package store

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-process Store. It backs offline rooms and tests, and is
// the reference for Store semantics: watches see every write in apply
// order, and Batch is all-or-nothing under a single lock.
type Memory struct {
	mu       sync.Mutex
	docs     map[string][]byte
	watchers map[*memWatcher]struct{}
	closed   bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		docs:     make(map[string][]byte),
		watchers: make(map[*memWatcher]struct{}),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	data, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if key == "" {
		return ErrBadKey
	}
	m.apply(Op{Key: key, Data: data})
	return nil
}

func (m *Memory) Create(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if key == "" {
		return ErrBadKey
	}
	if _, ok := m.docs[key]; ok {
		return ErrExists
	}
	m.apply(Op{Key: key, Data: data})
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if _, ok := m.docs[key]; !ok {
		return ErrNotFound
	}
	m.apply(Op{Key: key, Delete: true})
	return nil
}

// Batch applies every op or none: all ops are validated before the first
// one is applied, and the whole batch runs under one lock.
func (m *Memory) Batch(_ context.Context, ops []Op) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	for _, op := range ops {
		if op.Key == "" {
			return ErrBadKey
		}
		if op.Delete {
			if _, ok := m.docs[op.Key]; !ok {
				return ErrNotFound
			}
		}
	}
	for _, op := range ops {
		m.apply(op)
	}
	return nil
}

func (m *Memory) Watch(_ context.Context, pattern string) (Watcher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}

	w := &memWatcher{
		st:      m,
		pattern: pattern,
		ch:      make(chan Event),
		done:    make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.wmu)

	// Initial replay: current matching documents, in key order.
	keys := make([]string, 0, len(m.docs))
	for k := range m.docs {
		if MatchKey(pattern, k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		w.pending = append(w.pending, Event{Key: k, Data: append([]byte(nil), m.docs[k]...)})
	}

	m.watchers[w] = struct{}{}
	go w.run()
	return w, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	ws := make([]*memWatcher, 0, len(m.watchers))
	for w := range m.watchers {
		ws = append(ws, w)
	}
	m.watchers = make(map[*memWatcher]struct{})
	m.mu.Unlock()

	for _, w := range ws {
		w.Stop()
	}
	return nil
}

// apply mutates the doc map and fans the event out. Caller holds m.mu.
func (m *Memory) apply(op Op) {
	ev := Event{Key: op.Key, Deleted: op.Delete}
	if op.Delete {
		delete(m.docs, op.Key)
	} else {
		data := append([]byte(nil), op.Data...)
		m.docs[op.Key] = data
		ev.Data = data
	}
	for w := range m.watchers {
		if MatchKey(w.pattern, op.Key) {
			w.enqueue(ev)
		}
	}
}

// memWatcher decouples delivery from the store lock: events queue under the
// watcher's own lock and a goroutine drains them into the channel, so a
// slow consumer never blocks writers.
type memWatcher struct {
	st      *Memory
	pattern string
	ch      chan Event
	done    chan struct{}

	wmu     sync.Mutex
	cond    *sync.Cond
	pending []Event
	stopped bool
}

func (w *memWatcher) Updates() <-chan Event { return w.ch }

func (w *memWatcher) Stop() {
	w.st.mu.Lock()
	delete(w.st.watchers, w)
	w.st.mu.Unlock()

	w.wmu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.done)
		w.cond.Broadcast()
	}
	w.wmu.Unlock()
}

func (w *memWatcher) enqueue(ev Event) {
	w.wmu.Lock()
	if !w.stopped {
		w.pending = append(w.pending, ev)
		w.cond.Signal()
	}
	w.wmu.Unlock()
}

func (w *memWatcher) run() {
	for {
		w.wmu.Lock()
		for len(w.pending) == 0 && !w.stopped {
			w.cond.Wait()
		}
		if w.stopped {
			w.wmu.Unlock()
			close(w.ch)
			return
		}
		ev := w.pending[0]
		w.pending = w.pending[1:]
		w.wmu.Unlock()

		select {
		case w.ch <- ev:
		case <-w.done:
			close(w.ch)
			return
		}
	}
}
