package hostbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
)

// Dispatcher handles one host event.
type Dispatcher interface {
	Dispatch(ctx context.Context, event string, payload json.RawMessage) error
}

// Envelope is the message format on ChannelHostEvents.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Listener subscribes to host events and hands them to a Dispatcher, one at
// a time in arrival order.
type Listener struct {
	client     *redis.Client
	dispatcher Dispatcher
	logger     logger.Logger
	stopCh     chan struct{}
	done       chan struct{}
}

// NewListener creates a listener. Call Start to subscribe.
func NewListener(client *redis.Client, dispatcher Dispatcher, log logger.Logger) *Listener {
	return &Listener{
		client:     client,
		dispatcher: dispatcher,
		logger:     log,
		stopCh:     make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start subscribes and returns once the subscription is confirmed. Messages
// are then processed in the background until Stop or ctx is done.
func (l *Listener) Start(ctx context.Context) error {
	sub := l.client.Subscribe(ctx, ChannelHostEvents)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", ChannelHostEvents, err)
	}

	l.logger.Info("listening for host events", logger.String("channel", ChannelHostEvents))

	go func() {
		defer close(l.done)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				l.handle(ctx, msg.Payload)
			case <-l.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop ends the subscription and waits for the running handler to finish.
// It must only be called after a successful Start.
func (l *Listener) Stop() {
	close(l.stopCh)
	<-l.done
}

func (l *Listener) handle(ctx context.Context, raw string) {
	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		l.logger.Warn("dropping malformed host event", logger.Error(err))
		return
	}

	if err := l.dispatcher.Dispatch(ctx, env.Event, env.Payload); err != nil {
		l.logger.Warn("host event failed",
			logger.String("event", env.Event),
			logger.Error(err))
	}
}
