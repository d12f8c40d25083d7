package realtime_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/realtime"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postEvent(eventType string, restaurantID int) domain.ChangeEvent {
	row, _ := json.Marshal(map[string]any{"id": 1, "restaurant_id": restaurantID})
	event := domain.ChangeEvent{EventType: eventType, Table: "posts"}
	if eventType == domain.EventDelete {
		event.Old = row
	} else {
		event.New = row
	}
	return event
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *realtime.Filter
		wantErr bool
	}{
		{name: "empty matches all", raw: ""},
		{name: "equality", raw: "restaurant_id=eq.7", want: &realtime.Filter{Column: "restaurant_id", Value: "7"}},
		{name: "missing operator", raw: "restaurant_id=7", wantErr: true},
		{name: "missing column", raw: "=eq.7", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := realtime.ParseFilter(testCase.raw)
			if testCase.wantErr {
				assert.ErrorIs(t, err, realtime.ErrInvalidFilter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestHub_PublishMatchesEventTableAndFilter(t *testing.T) {
	hub := realtime.NewHub()
	var received []domain.ChangeEvent

	_, err := hub.Channel("user-posts-7").
		On(domain.EventAll, "posts", "restaurant_id=eq.7", func(e domain.ChangeEvent) {
			received = append(received, e)
		}).
		Subscribe()
	require.NoError(t, err)

	assert.Equal(t, 1, hub.Publish(postEvent(domain.EventInsert, 7)))
	assert.Equal(t, 0, hub.Publish(postEvent(domain.EventInsert, 8)))
	assert.Equal(t, 1, hub.Publish(postEvent(domain.EventDelete, 7)))
	assert.Equal(t, 0, hub.Publish(domain.ChangeEvent{EventType: domain.EventInsert, Table: "products", New: json.RawMessage(`{"restaurant_id":7}`)}))

	require.Len(t, received, 2)
	assert.Equal(t, domain.EventInsert, received[0].EventType)
	assert.Equal(t, domain.EventDelete, received[1].EventType)
}

func TestHub_EventSpecificBinding(t *testing.T) {
	hub := realtime.NewHub()
	inserts := 0

	_, err := hub.Channel("feed").
		On(domain.EventInsert, "posts", "", func(domain.ChangeEvent) { inserts++ }).
		Subscribe()
	require.NoError(t, err)

	hub.Publish(postEvent(domain.EventUpdate, 1))
	hub.Publish(postEvent(domain.EventInsert, 1))

	assert.Equal(t, 1, inserts)
}

func TestHub_RemoveChannel(t *testing.T) {
	hub := realtime.NewHub()
	calls := 0

	channel, err := hub.Channel("feed").
		On(domain.EventAll, "posts", "", func(domain.ChangeEvent) { calls++ }).
		Subscribe()
	require.NoError(t, err)
	require.Len(t, hub.Channels(), 1)
	assert.Equal(t, "realtime:feed", hub.Channels()[0].Topic())

	hub.RemoveChannel(channel)
	hub.Publish(postEvent(domain.EventInsert, 1))

	assert.Empty(t, hub.Channels())
	assert.Equal(t, 0, calls)
}

func TestHub_SubscribeRejectsBadFilter(t *testing.T) {
	hub := realtime.NewHub()

	_, err := hub.Channel("feed").
		On(domain.EventAll, "posts", "restaurant_id>7", func(domain.ChangeEvent) {}).
		Subscribe()

	assert.ErrorIs(t, err, realtime.ErrInvalidFilter)
	assert.Empty(t, hub.Channels())
}

type scriptedReader struct {
	mu       sync.Mutex
	messages []kafka.Message
	cancel   context.CancelFunc
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		r.cancel()
		return kafka.Message{}, ctx.Err()
	}
	next := r.messages[0]
	r.messages = r.messages[1:]
	if next.Value == nil {
		return kafka.Message{}, errors.New("broker hiccup")
	}
	return next, nil
}

func TestHub_RunDeliversConsumedEvents(t *testing.T) {
	hub := realtime.NewHub()
	received := make(chan domain.ChangeEvent, 4)
	_, err := hub.Channel("feed").
		On(domain.EventInsert, "posts", "", func(e domain.ChangeEvent) { received <- e }).
		Subscribe()
	require.NoError(t, err)

	payload, err := json.Marshal(postEvent(domain.EventInsert, 3))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	reader := &scriptedReader{
		messages: []kafka.Message{
			{Value: nil},
			{Value: []byte("not json")},
			{Value: payload},
		},
		cancel: cancel,
	}

	done := make(chan struct{})
	go func() {
		hub.Run(ctx, reader)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop after cancel")
	}
	require.Len(t, received, 1)
	event := <-received
	assert.Equal(t, "posts", event.Table)
}
