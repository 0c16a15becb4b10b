package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

// KVConfig configures the hosted NATS JetStream key/value store.
type KVConfig struct {
	URL           string
	Bucket        string
	MaxReconnects int
	ReconnectWait time.Duration
	// DocTTL expires abandoned documents server-side. Zero keeps them forever.
	DocTTL time.Duration
}

// DefaultKVConfig returns the default hosted-store configuration.
func DefaultKVConfig() KVConfig {
	return KVConfig{
		URL:           nats.DefaultURL,
		Bucket:        "pokerize",
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
		DocTTL:        24 * time.Hour,
	}
}

// KV is the Store implementation on a NATS JetStream key/value bucket.
// The bucket's watch push is what makes rooms realtime.
type KV struct {
	nc *nats.Conn
	kv jetstream.KeyValue
}

// OpenKV connects to NATS and binds (creating if needed) the bucket.
func OpenKV(ctx context.Context, cfg KVConfig) (*KV, error) {
	opts := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("nats reconnected")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("store.OpenKV: connect %s: %w", cfg.URL, err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("store.OpenKV: jetstream context: %w", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: cfg.Bucket,
		TTL:    cfg.DocTTL,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("store.OpenKV: bucket %s: %w", cfg.Bucket, err)
	}

	return &KV{nc: nc, kv: kv}, nil
}

func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store.Get %s: %w", key, err)
	}
	return entry.Value(), nil
}

func (s *KV) Put(ctx context.Context, key string, data []byte) error {
	if _, err := s.kv.Put(ctx, key, data); err != nil {
		return fmt.Errorf("store.Put %s: %w", key, err)
	}
	return nil
}

func (s *KV) Create(ctx context.Context, key string, data []byte) error {
	if _, err := s.kv.Create(ctx, key, data); err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return ErrExists
		}
		return fmt.Errorf("store.Create %s: %w", key, err)
	}
	return nil
}

func (s *KV) Delete(ctx context.Context, key string) error {
	if _, err := s.kv.Get(ctx, key); err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("store.Delete %s: %w", key, err)
	}
	if err := s.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("store.Delete %s: %w", key, err)
	}
	return nil
}

// Batch applies ops sequentially and aborts on the first failure. JetStream
// KV has no cross-key transaction, so a failed batch can leave earlier ops
// applied; callers treat that the same as any other lost write (the next
// heartbeat or mutation converges the room).
func (s *KV) Batch(ctx context.Context, ops []Op) error {
	for _, op := range ops {
		if op.Delete {
			if err := s.Delete(ctx, op.Key); err != nil {
				return err
			}
			continue
		}
		if err := s.Put(ctx, op.Key, op.Data); err != nil {
			return err
		}
	}
	return nil
}

func (s *KV) Watch(ctx context.Context, pattern string) (Watcher, error) {
	kw, err := s.kv.Watch(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("store.Watch %s: %w", pattern, err)
	}
	w := &kvWatcher{kw: kw, ch: make(chan Event)}
	go w.run()
	return w, nil
}

func (s *KV) Close() error {
	s.nc.Close()
	return nil
}

// kvWatcher adapts a JetStream KeyWatcher to the Store watcher contract.
type kvWatcher struct {
	kw jetstream.KeyWatcher
	ch chan Event
}

func (w *kvWatcher) Updates() <-chan Event { return w.ch }

func (w *kvWatcher) Stop() {
	if err := w.kw.Stop(); err != nil {
		log.Debug().Err(err).Msg("stop kv watcher")
	}
}

func (w *kvWatcher) run() {
	for entry := range w.kw.Updates() {
		// A nil entry marks the end of the initial replay.
		if entry == nil {
			continue
		}
		ev := Event{Key: entry.Key()}
		switch entry.Operation() {
		case jetstream.KeyValueDelete, jetstream.KeyValuePurge:
			ev.Deleted = true
		default:
			ev.Data = entry.Value()
		}
		w.ch <- ev
	}
	close(w.ch)
}
