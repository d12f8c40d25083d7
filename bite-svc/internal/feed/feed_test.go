package feed_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/feed"
	"scroll-and-bite/bite-svc/internal/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID      int64  `json:"id"`
	Version string `json:"version"`
}

func (e entry) GetID() int64 { return e.ID }

type source struct {
	mu      sync.Mutex
	rows    []entry
	calls   int
	lookups int
	fail    error
	byIDRow map[int64]entry
}

func (s *source) page(_ context.Context, offset, limit uint64) ([]entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.fail != nil {
		return nil, s.fail
	}
	if offset >= uint64(len(s.rows)) {
		return []entry{}, nil
	}
	end := offset + limit
	if end > uint64(len(s.rows)) {
		end = uint64(len(s.rows))
	}
	return append([]entry(nil), s.rows[offset:end]...), nil
}

func (s *source) byID(_ context.Context, id int64) (entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	row, ok := s.byIDRow[id]
	if !ok {
		return entry{}, errors.New("not found")
	}
	return row, nil
}

func (s *source) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *source) Lookups() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookups
}

// held blocks each page request until release is closed.
func held(src *source, started chan<- struct{}, release <-chan struct{}) func(context.Context, uint64, uint64) ([]entry, error) {
	return func(ctx context.Context, offset, limit uint64) ([]entry, error) {
		started <- struct{}{}
		<-release
		return src.page(ctx, offset, limit)
	}
}

func updateEvent(id int64) domain.ChangeEvent {
	row, _ := json.Marshal(map[string]any{"id": id, "restaurant_id": 7})
	return domain.ChangeEvent{EventType: domain.EventUpdate, Table: "posts", New: row}
}

func insertEvent(id int64) domain.ChangeEvent {
	row, _ := json.Marshal(map[string]any{"id": id, "restaurant_id": 7})
	return domain.ChangeEvent{EventType: domain.EventInsert, Table: "posts", New: row}
}

func TestMergeAndDedupe(t *testing.T) {
	tests := []struct {
		name     string
		existing []entry
		incoming []entry
		want     []entry
	}{
		{
			name:     "duplicate inside existing keeps later value",
			existing: []entry{{ID: 1, Version: "v1"}, {ID: 1, Version: "v2"}},
			want:     []entry{{ID: 1, Version: "v2"}},
		},
		{
			name:     "incoming overrides and keeps first position",
			existing: []entry{{ID: 1, Version: "a"}, {ID: 2, Version: "a"}},
			incoming: []entry{{ID: 2, Version: "b"}, {ID: 3, Version: "b"}, {ID: 1, Version: "b"}},
			want:     []entry{{ID: 1, Version: "b"}, {ID: 2, Version: "b"}, {ID: 3, Version: "b"}},
		},
		{
			name: "both empty",
			want: []entry{},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, feed.MergeAndDedupe(testCase.existing, testCase.incoming))
		})
	}
}

func TestFeed_ShortPageEndsFeed(t *testing.T) {
	src := &source{rows: []entry{{ID: 1}, {ID: 2}}}
	f := feed.New(4, src.page, src.byID)

	added, err := f.FetchPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.False(t, f.HasMore())

	added, err = f.FetchPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, src.Calls())
}

func TestFeed_PagesUseItemCountAsOffset(t *testing.T) {
	src := &source{rows: []entry{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}}
	f := feed.New(2, src.page, src.byID)
	ctx := context.Background()

	for f.HasMore() {
		_, err := f.FetchPage(ctx)
		require.NoError(t, err)
	}

	assert.Len(t, f.Items(), 5)
	assert.Equal(t, 3, src.Calls())
}

func TestFeed_EmptyFullPageThenEnd(t *testing.T) {
	src := &source{rows: []entry{{ID: 1}, {ID: 2}}}
	f := feed.New(2, src.page, src.byID)
	ctx := context.Background()

	_, err := f.FetchPage(ctx)
	require.NoError(t, err)
	assert.True(t, f.HasMore())

	added, err := f.FetchPage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.False(t, f.HasMore())
}

func TestFeed_ErrorEndsFeed(t *testing.T) {
	src := &source{fail: errors.New("transport down")}
	f := feed.New(4, src.page, src.byID)

	_, err := f.FetchPage(context.Background())

	assert.Error(t, err)
	assert.False(t, f.HasMore())

	f.Reset()
	assert.True(t, f.HasMore())
	assert.Empty(t, f.Items())
}

func TestFeed_SecondFetchWhileLoadingIsSkipped(t *testing.T) {
	src := &source{rows: []entry{{ID: 1}, {ID: 2}}}
	started, release := make(chan struct{}, 1), make(chan struct{})
	f := feed.New(4, held(src, started, release), src.byID)
	ctx := context.Background()

	done := make(chan int, 1)
	go func() {
		added, _ := f.FetchPage(ctx)
		done <- added
	}()
	<-started

	added, err := f.FetchPage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	close(release)
	assert.Equal(t, 2, <-done)
	assert.Equal(t, 1, src.Calls())
	assert.Len(t, f.Items(), 2)
}

func TestFeed_ResetDiscardsPageInFlight(t *testing.T) {
	src := &source{rows: []entry{{ID: 1}, {ID: 2}}}
	started, release := make(chan struct{}, 1), make(chan struct{})
	f := feed.New(4, held(src, started, release), src.byID)

	done := make(chan int, 1)
	go func() {
		added, _ := f.FetchPage(context.Background())
		done <- added
	}()
	<-started

	f.Reset()
	close(release)

	assert.Equal(t, 0, <-done)
	assert.Empty(t, f.Items())
	assert.True(t, f.HasMore())
}

func TestFeed_HandleUpdate(t *testing.T) {
	src := &source{
		rows:    []entry{{ID: 1, Version: "old"}, {ID: 2, Version: "old"}},
		byIDRow: map[int64]entry{2: {ID: 2, Version: "new"}, 9: {ID: 9, Version: "new"}},
	}
	f := feed.New(4, src.page, src.byID)
	ctx := context.Background()
	_, err := f.FetchPage(ctx)
	require.NoError(t, err)

	f.HandleEvent(ctx, updateEvent(2))
	assert.Equal(t, []entry{{ID: 1, Version: "old"}, {ID: 2, Version: "new"}}, f.Items())
	assert.Equal(t, 1, src.Lookups())

	f.HandleEvent(ctx, updateEvent(9))
	assert.Equal(t, []entry{{ID: 1, Version: "old"}, {ID: 2, Version: "new"}}, f.Items())
	assert.Equal(t, 1, src.Lookups())
}

func TestFeed_HandleInsertPutsFetchedItemInFront(t *testing.T) {
	src := &source{
		rows:    []entry{{ID: 1, Version: "old"}, {ID: 2, Version: "old"}},
		byIDRow: map[int64]entry{2: {ID: 2, Version: "fetched"}, 9: {ID: 9, Version: "fetched"}},
	}
	f := feed.New(4, src.page, src.byID)
	ctx := context.Background()
	_, err := f.FetchPage(ctx)
	require.NoError(t, err)

	f.HandleEvent(ctx, insertEvent(9))
	f.HandleEvent(ctx, insertEvent(2))

	assert.Equal(t, []entry{
		{ID: 2, Version: "fetched"},
		{ID: 9, Version: "fetched"},
		{ID: 1, Version: "old"},
	}, f.Items())
}

func TestFeed_HandleDelete(t *testing.T) {
	src := &source{rows: []entry{{ID: 1}, {ID: 2}}}
	f := feed.New(4, src.page, src.byID)
	_, err := f.FetchPage(context.Background())
	require.NoError(t, err)

	f.HandleEvent(context.Background(), domain.ChangeEvent{
		EventType: domain.EventDelete,
		Table:     "posts",
		Old:       json.RawMessage(`{"id":1}`),
	})

	assert.Equal(t, []entry{{ID: 2}}, f.Items())
}

func TestFeed_ListenReplacesDuplicateSubscription(t *testing.T) {
	hub := realtime.NewHub()
	src := &source{byIDRow: map[int64]entry{5: {ID: 5, Version: "live"}}}
	f := feed.New(4, src.page, src.byID)
	ctx := context.Background()

	_, err := f.Listen(ctx, hub, "user-posts-7", "posts", "restaurant_id=eq.7")
	require.NoError(t, err)
	cancel, err := f.Listen(ctx, hub, "user-posts-7", "posts", "restaurant_id=eq.7")
	require.NoError(t, err)
	require.Len(t, hub.Channels(), 1)

	delivered := hub.Publish(insertEvent(5))

	assert.Equal(t, 1, delivered)
	assert.Equal(t, []entry{{ID: 5, Version: "live"}}, f.Items())

	cancel()
	assert.Empty(t, hub.Channels())
}

func TestFeed_ListenStopsWithContext(t *testing.T) {
	hub := realtime.NewHub()
	src := &source{}
	f := feed.New(4, src.page, src.byID)
	ctx, cancel := context.WithCancel(context.Background())

	_, err := f.Listen(ctx, hub, "home", "posts", "")
	require.NoError(t, err)
	cancel()

	assert.Eventually(t, func() bool { return len(hub.Channels()) == 0 }, time.Second, 10*time.Millisecond)
}
