package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"

	"silent-auction/utils"
)

// StreamEmitter publishes events onto a Redis stream via XADD so consumers
// outside the process can follow the ledger. Events are forwarded by a
// background goroutine; the emitting request never waits on Redis.
type StreamEmitter struct {
	client  *redis.Client
	stream  string
	pending chan Event

	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewStreamEmitter creates a stream emitter and starts its forwarding
// goroutine. Call Close to flush and stop it.
func NewStreamEmitter(client *redis.Client, stream string) *StreamEmitter {
	ctx, cancel := context.WithCancel(context.Background())
	e := &StreamEmitter{
		client:  client,
		stream:  stream,
		pending: make(chan Event, 256),
		cancel:  cancel,
	}

	e.wg.Add(1)
	go e.forward(ctx)
	return e
}

// Emit queues the event for publication. If the buffer is full the event is
// dropped with a warning rather than stalling the request that produced it.
func (e *StreamEmitter) Emit(event Event) {
	select {
	case e.pending <- event:
	default:
		utils.Warn("event stream buffer full, dropping event", map[string]any{
			"event":  event.Name,
			"stream": e.stream,
		})
	}
}

// Close stops the forwarding goroutine and waits for it to finish.
func (e *StreamEmitter) Close() {
	e.once.Do(func() {
		e.cancel()
		e.wg.Wait()
	})
}

func (e *StreamEmitter) forward(ctx context.Context) {
	defer e.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-e.pending:
			payload, err := json.Marshal(event)
			if err != nil {
				utils.Error("failed to encode event", map[string]any{"event": event.Name, "error": err.Error()})
				continue
			}

			_, err = e.client.XAdd(ctx, &redis.XAddArgs{
				Stream: e.stream,
				Values: map[string]any{
					"name":    event.Name,
					"kind":    string(event.Kind),
					"payload": payload,
				},
			}).Result()
			if err != nil && ctx.Err() == nil {
				utils.Error("failed to publish event", map[string]any{
					"event":  event.Name,
					"stream": e.stream,
					"error":  err.Error(),
				})
			}
		}
	}
}
