package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"scroll-and-bite/bite-svc/internal/domain"

	"github.com/samber/lo"
	"github.com/segmentio/kafka-go"
	"github.com/tidwall/gjson"
)

const topicPrefix = "realtime:"

var ErrInvalidFilter = errors.New("filter must look like column=eq.value")

type Handler func(domain.ChangeEvent)

// MessageReader is the part of *kafka.Reader the hub consumes from.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Filter selects rows whose Column equals Value.
type Filter struct {
	Column string
	Value  string
}

// ParseFilter accepts "column=eq.value". An empty string matches every row.
func ParseFilter(raw string) (*Filter, error) {
	if raw == "" {
		return nil, nil
	}
	column, rest, ok := strings.Cut(raw, "=")
	if !ok || column == "" || !strings.HasPrefix(rest, "eq.") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return &Filter{Column: column, Value: strings.TrimPrefix(rest, "eq.")}, nil
}

func (f *Filter) matches(row json.RawMessage) bool {
	if f == nil {
		return true
	}
	value := gjson.GetBytes(row, f.Column)
	return value.Exists() && value.String() == f.Value
}

type binding struct {
	event   string
	table   string
	filter  *Filter
	handler Handler
}

func (b binding) matches(event domain.ChangeEvent) bool {
	if b.event != domain.EventAll && b.event != event.EventType {
		return false
	}
	if b.table != event.Table {
		return false
	}
	row := event.New
	if event.EventType == domain.EventDelete {
		row = event.Old
	}
	return b.filter.matches(row)
}

// Channel groups bindings under one topic. It receives nothing until
// Subscribe is called.
type Channel struct {
	hub      *Hub
	topic    string
	bindings []binding
	err      error
}

func (c *Channel) Topic() string {
	return c.topic
}

// On registers handler for event ("INSERT", "UPDATE", "DELETE" or "*") on
// table, optionally narrowed by a column=eq.value filter.
func (c *Channel) On(event, table, filter string, handler Handler) *Channel {
	parsed, err := ParseFilter(filter)
	if err != nil {
		c.err = errors.Join(c.err, err)
		return c
	}
	c.bindings = append(c.bindings, binding{event: event, table: table, filter: parsed, handler: handler})
	return c
}

func (c *Channel) Subscribe() (*Channel, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.hub.mu.Lock()
	c.hub.channels = append(c.hub.channels, c)
	c.hub.mu.Unlock()
	return c, nil
}

// Hub fans row change events out to subscribed channels.
type Hub struct {
	mu       sync.RWMutex
	channels []*Channel
}

func NewHub() *Hub {
	return &Hub{}
}

func (h *Hub) Channel(name string) *Channel {
	return &Channel{hub: h, topic: topicPrefix + name}
}

func (h *Hub) Channels() []*Channel {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]*Channel(nil), h.channels...)
}

func (h *Hub) RemoveChannel(channel *Channel) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.channels = lo.Without(h.channels, channel)
}

// Publish delivers event to every matching binding. Handlers run on the
// caller's goroutine, outside the hub lock.
func (h *Hub) Publish(event domain.ChangeEvent) int {
	h.mu.RLock()
	var handlers []Handler
	for _, channel := range h.channels {
		for _, b := range channel.bindings {
			if b.matches(event) {
				handlers = append(handlers, b.handler)
			}
		}
	}
	h.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
	return len(handlers)
}

// PublishChange lets the hub stand in for the Kafka publisher when the
// service runs without a broker.
func (h *Hub) PublishChange(_ context.Context, event domain.ChangeEvent) error {
	h.Publish(event)
	return nil
}

// Run consumes change events until ctx is cancelled.
func (h *Hub) Run(ctx context.Context, reader MessageReader) {
	log.Println("Starting realtime hub consumer...")
	for {
		message, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Realtime hub consumer stopped")
				return
			}
			log.Printf("Error reading change event: %v", err)
			continue
		}

		var event domain.ChangeEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling change event: %v", err)
			continue
		}
		h.Publish(event)
	}
}
