package feed

import (
	"context"
	"log"
	"sync"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/realtime"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

type Keyed interface {
	GetID() int64
}

type PageFunc[T Keyed] func(ctx context.Context, offset, limit uint64) ([]T, error)

type ByIDFunc[T Keyed] func(ctx context.Context, id int64) (T, error)

// Feed is a paged list kept free of duplicate ids. Pages are requested at
// offset len(Items()); a short, empty or failed page ends the feed until
// Reset.
type Feed[T Keyed] struct {
	mu         sync.Mutex
	items      []T
	hasMore    bool
	loading    bool
	generation int
	pageSize   int
	page       PageFunc[T]
	byID       ByIDFunc[T]
}

func New[T Keyed](
	pageSize int,
	page func(ctx context.Context, offset, limit uint64) ([]T, error),
	byID func(ctx context.Context, id int64) (T, error),
) *Feed[T] {
	if pageSize <= 0 {
		pageSize = 1
	}
	return &Feed[T]{hasMore: true, pageSize: pageSize, page: page, byID: byID}
}

// FetchPage loads the next page and reports how many new items it added.
// It does nothing while another fetch runs or once the feed is exhausted.
func (f *Feed[T]) FetchPage(ctx context.Context) (int, error) {
	f.mu.Lock()
	if !f.hasMore || f.loading {
		f.mu.Unlock()
		return 0, nil
	}
	f.loading = true
	generation := f.generation
	offset := uint64(len(f.items))
	f.mu.Unlock()

	page, err := f.page(ctx, offset, uint64(f.pageSize))

	f.mu.Lock()
	defer f.mu.Unlock()
	if generation != f.generation {
		return 0, nil
	}
	f.loading = false
	if err != nil {
		f.hasMore = false
		return 0, err
	}

	before := len(f.items)
	f.items = MergeAndDedupe(f.items, page)
	if len(page) < f.pageSize {
		f.hasMore = false
	}
	return len(f.items) - before, nil
}

func (f *Feed[T]) Items() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]T(nil), f.items...)
}

func (f *Feed[T]) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// Reset empties the feed. A fetch still in flight is discarded.
func (f *Feed[T]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = nil
	f.hasMore = true
	f.loading = false
	f.generation++
}

// HandleEvent applies one change event: inserts are fetched and put in
// front, updates refresh an item already shown and deletes drop it.
func (f *Feed[T]) HandleEvent(ctx context.Context, event domain.ChangeEvent) {
	switch event.EventType {
	case domain.EventInsert, domain.EventUpdate:
		id := gjson.GetBytes(event.New, "id").Int()
		if id == 0 {
			return
		}
		if event.EventType == domain.EventUpdate && !f.contains(id) {
			return
		}
		item, err := f.byID(ctx, id)
		if err != nil {
			log.Printf("Warning: failed to fetch %s %d for live update: %v", event.Table, id, err)
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		if event.EventType == domain.EventInsert {
			f.items = append([]T{item}, lo.Reject(f.items, func(existing T, _ int) bool { return existing.GetID() == id })...)
			return
		}
		f.items = MergeAndDedupe(f.items, []T{item})

	case domain.EventDelete:
		id := gjson.GetBytes(event.Old, "id").Int()
		f.mu.Lock()
		defer f.mu.Unlock()
		f.items = lo.Reject(f.items, func(existing T, _ int) bool { return existing.GetID() == id })
	}
}

func (f *Feed[T]) contains(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return lo.ContainsBy(f.items, func(item T) bool { return item.GetID() == id })
}

// Listen keeps the feed live for changes on table matching filter. An
// existing channel with the same topic is removed first, so listening twice
// never delivers an event twice. The subscription ends when ctx is done or
// cancel is called.
func (f *Feed[T]) Listen(ctx context.Context, hub *realtime.Hub, name, table, filter string) (func(), error) {
	channel := hub.Channel(name)
	for _, existing := range hub.Channels() {
		if existing.Topic() == channel.Topic() {
			hub.RemoveChannel(existing)
		}
	}

	subscribed, err := channel.
		On(domain.EventAll, table, filter, func(event domain.ChangeEvent) {
			if ctx.Err() != nil {
				return
			}
			f.HandleEvent(ctx, event)
		}).
		Subscribe()
	if err != nil {
		return nil, err
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() { hub.RemoveChannel(subscribed) })
	}
	context.AfterFunc(ctx, cancel)
	return cancel, nil
}

// MergeAndDedupe concatenates existing and incoming keeping one entry per
// id. The last occurrence supplies the value and the first occurrence keeps
// its position.
func MergeAndDedupe[T Keyed](existing, incoming []T) []T {
	merged := make([]T, 0, len(existing)+len(incoming))
	positions := make(map[int64]int, len(existing)+len(incoming))
	for _, item := range append(append([]T(nil), existing...), incoming...) {
		if pos, ok := positions[item.GetID()]; ok {
			merged[pos] = item
			continue
		}
		positions[item.GetID()] = len(merged)
		merged = append(merged, item)
	}
	return merged
}
