package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/redis/go-redis/v9"
)

// Kinds of change a live subscriber is told about.
const (
	LiveTodosChanged   = "todos"
	LiveSummaryChanged = "summary"
)

type LiveEvent struct {
	UserID string `json:"user_id"`
	Kind   string `json:"kind"`
}

// LiveBroker fans change events out to the open live streams of one user.
// Events carry no data; subscribers re-read what they display.
type LiveBroker interface {
	Publish(ctx context.Context, userID, kind string) error
	// Subscribe returns a channel of events for userID and a release func.
	// The channel is closed after release or when ctx ends.
	Subscribe(ctx context.Context, userID string) (<-chan LiveEvent, func(), error)
}

// subscriber holds at most one pending event per kind. A repeat of a kind
// that is still pending merges into it; other kinds queue behind it. A kind
// stays pending until the reader has taken it off ch.
type subscriber struct {
	userID string
	ch     chan LiveEvent
	wake   chan struct{}
	done   chan struct{}
	once   sync.Once

	mu      sync.Mutex
	pending []string
	closed  bool
}

func newSubscriber(userID string) *subscriber {
	s := &subscriber{
		userID: userID,
		ch:     make(chan LiveEvent),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go s.deliver()
	return s
}

func (s *subscriber) offer(kind string) {
	s.mu.Lock()
	if s.closed || slices.Contains(s.pending, kind) {
		s.mu.Unlock()
		return
	}
	s.pending = append(s.pending, kind)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber) deliver() {
	defer close(s.ch)
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.mu.Unlock()
			select {
			case <-s.done:
				return
			case <-s.wake:
				continue
			}
		}
		kind := s.pending[0]
		s.mu.Unlock()

		select {
		case <-s.done:
			return
		case s.ch <- LiveEvent{UserID: s.userID, Kind: kind}:
		}

		// offer only appends, so the delivered kind is still at the front
		s.mu.Lock()
		s.pending = s.pending[1:]
		s.mu.Unlock()
	}
}

func (s *subscriber) close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.done)
	})
}

// MemoryBroker keeps subscriptions in process. Used when no Redis is
// configured and in tests.
type MemoryBroker struct {
	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[string]map[*subscriber]struct{})}
}

func (b *MemoryBroker) Publish(_ context.Context, userID, kind string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subs[userID] {
		s.offer(kind)
	}
	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, userID string) (<-chan LiveEvent, func(), error) {
	s := newSubscriber(userID)

	b.mu.Lock()
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[*subscriber]struct{})
	}
	b.subs[userID][s] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[userID], s)
			if len(b.subs[userID]) == 0 {
				delete(b.subs, userID)
			}
			b.mu.Unlock()
			s.close()
		})
	}

	go func() {
		<-ctx.Done()
		release()
	}()

	return s.ch, release, nil
}

// Subscribers reports how many streams userID has open.
func (b *MemoryBroker) Subscribers(userID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[userID])
}

// RedisBroker relays events over Redis pub/sub so every API instance sees
// writes made through any other.
type RedisBroker struct {
	client *redis.Client
	logger hclog.Logger
}

func NewRedisBroker(client *redis.Client, logger hclog.Logger) *RedisBroker {
	return &RedisBroker{client: client, logger: logger.Named("live")}
}

func liveChannel(userID string) string {
	return "live:" + userID
}

func (b *RedisBroker) Publish(ctx context.Context, userID, kind string) error {
	payload, err := json.Marshal(LiveEvent{UserID: userID, Kind: kind})
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, liveChannel(userID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish live event: %w", err)
	}
	return nil
}

func (b *RedisBroker) Subscribe(ctx context.Context, userID string) (<-chan LiveEvent, func(), error) {
	pubsub := b.client.Subscribe(ctx, liveChannel(userID))
	// Wait for the subscription to be confirmed so no publish is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to live events: %w", err)
	}

	s := newSubscriber(userID)
	done := make(chan struct{})
	var once sync.Once
	release := func() {
		once.Do(func() {
			close(done)
			_ = pubsub.Close()
		})
	}

	go func() {
		defer s.close()
		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				release()
				return
			case <-done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev LiveEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					b.logger.Warn("dropping malformed live event", "channel", msg.Channel, "error", err)
					continue
				}
				s.offer(ev.Kind)
			}
		}
	}()

	return s.ch, release, nil
}
