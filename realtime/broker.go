package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Broker fans therapy snapshots out to realtime subscribers over Redis
// pub/sub. Messages on a single therapy channel are delivered to each
// subscriber in publish order; nothing is guaranteed across therapies.
type Broker struct {
	rdb *redis.Client

	mu    sync.Mutex
	count int
}

// Default is the process-wide broker, set from main after Redis comes up.
var Default *Broker

func Init(rdb *redis.Client) {
	Default = NewBroker(rdb)
}

func NewBroker(rdb *redis.Client) *Broker {
	return &Broker{rdb: rdb}
}

func therapyChannel(therapyID uint) string {
	return fmt.Sprintf("therapy:%d", therapyID)
}

// PublishTherapy pushes the full therapy snapshot to every live subscriber.
func (b *Broker) PublishTherapy(ctx context.Context, therapyID uint, snapshot interface{}) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode therapy snapshot: %v", err)
	}
	return b.rdb.Publish(ctx, therapyChannel(therapyID), payload).Err()
}

// Subscription is one client's feed of a single therapy. Close must be
// called when the client goes away; it tears the Redis subscription down
// and closes C.
type Subscription struct {
	ID     string
	C      <-chan []byte
	pubsub *redis.PubSub
	once   sync.Once
	broker *Broker
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		if err := s.pubsub.Close(); err != nil {
			log.Printf("Error closing therapy subscription %s: %v", s.ID, err)
		}
		s.broker.mu.Lock()
		s.broker.count--
		s.broker.mu.Unlock()
	})
}

// SubscribeTherapy registers a subscriber for one therapy document.
func (b *Broker) SubscribeTherapy(ctx context.Context, therapyID uint) (*Subscription, error) {
	pubsub := b.rdb.Subscribe(ctx, therapyChannel(therapyID))

	// Force the SUBSCRIBE round trip so a broken Redis fails here, not on
	// first read.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	out := make(chan []byte, 16)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			select {
			case out <- []byte(msg.Payload):
			case <-ctx.Done():
				return
			}
		}
	}()

	b.mu.Lock()
	b.count++
	b.mu.Unlock()

	return &Subscription{
		ID:     uuid.NewString(),
		C:      out,
		pubsub: pubsub,
		broker: b,
	}, nil
}

// SubscriberCount returns the number of live subscriptions on this node.
func (b *Broker) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}
