package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisChannel is the pub/sub channel carrying change announcements.
const RedisChannel = "notekeeper:" + ChangeEvent

// RedisSignal announces session changes to every client sharing a Redis.
// Messages published by this instance are not delivered back to it; same
// process delivery is the LocalBus's job.
type RedisSignal struct {
	rdb     *redis.Client
	pubsub  *redis.PubSub
	channel string
	origin  string
	log     logging.Logger
	l       listeners[struct{}]
	done    chan struct{}
}

// NewRedisSignal subscribes to channel and returns once the subscription is
// confirmed by the server.
func NewRedisSignal(ctx context.Context, rdb *redis.Client, channel string, log logging.Logger) (*RedisSignal, error) {
	pubsub := rdb.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", channel, err)
	}

	s := &RedisSignal{
		rdb:     rdb,
		pubsub:  pubsub,
		channel: channel,
		origin:  uuid.NewString(),
		log:     log,
		done:    make(chan struct{}),
	}
	go s.loop()
	return s, nil
}

func (s *RedisSignal) loop() {
	defer close(s.done)
	for msg := range s.pubsub.Channel() {
		if msg.Payload == s.origin {
			continue
		}
		s.log.Debug(context.Background(), "remote session change", "channel", msg.Channel)
		s.l.notify(struct{}{})
	}
}

func (s *RedisSignal) Publish(ctx context.Context) error {
	if err := s.rdb.Publish(ctx, s.channel, s.origin).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", s.channel, err)
	}
	return nil
}

func (s *RedisSignal) Subscribe(fn func()) func() {
	return s.l.add(func(struct{}) { fn() })
}

func (s *RedisSignal) Close() error {
	err := s.pubsub.Close()
	<-s.done
	return err
}
