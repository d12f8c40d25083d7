package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/feed"
	"scroll-and-bite/bite-svc/internal/realtime"
	"scroll-and-bite/bite-svc/internal/storage"
)

// FeedPage is what a client sees after asking for more.
type FeedPage[T any] struct {
	Items   []T  `json:"items"`
	HasMore bool `json:"has_more"`
}

type liveFeed struct {
	userID string
	cancel func()
	feed   any
}

// FeedService keeps one live feed per user and list. Feeds outlive the
// request that created them and are closed on sign-out.
type FeedService struct {
	posts       PostRepository
	products    ProductRepository
	restaurants RestaurantRepository
	hub         *realtime.Hub
	pageSize    int

	mu    sync.Mutex
	feeds map[string]*liveFeed
}

func NewFeedService(posts PostRepository, products ProductRepository, restaurants RestaurantRepository, hub *realtime.Hub, pageSize int) *FeedService {
	return &FeedService{
		posts:       posts,
		products:    products,
		restaurants: restaurants,
		hub:         hub,
		pageSize:    pageSize,
		feeds:       make(map[string]*liveFeed),
	}
}

func restaurantFilter(restaurantID int64) string {
	if restaurantID == 0 {
		return ""
	}
	return fmt.Sprintf("restaurant_id=eq.%d", restaurantID)
}

// Home pages through the public post feed, optionally scoped to one
// restaurant.
func (s *FeedService) Home(ctx context.Context, userID string, restaurantID int64, reset bool) (FeedPage[domain.Post], error) {
	name := fmt.Sprintf("home-%s-%d", userID, restaurantID)
	f, err := openFeed(s, userID, name, storage.TablePosts, restaurantFilter(restaurantID), func() *feed.Feed[domain.Post] {
		return feed.New(s.pageSize,
			func(ctx context.Context, offset, limit uint64) ([]domain.Post, error) {
				return s.posts.ListPosts(ctx, restaurantID, offset, limit)
			},
			s.posts.GetPost,
		)
	})
	if err != nil {
		return FeedPage[domain.Post]{}, err
	}
	return nextPage(ctx, f, reset)
}

// OwnPosts pages through the posts of the creator's restaurant.
func (s *FeedService) OwnPosts(ctx context.Context, owner string, reset bool) (FeedPage[domain.Post], error) {
	restaurant, err := s.ownRestaurant(ctx, owner)
	if err != nil {
		return FeedPage[domain.Post]{}, err
	}
	f, err := openFeed(s, owner, "user-posts-"+owner, storage.TablePosts, restaurantFilter(restaurant.ID), func() *feed.Feed[domain.Post] {
		return feed.New(s.pageSize,
			func(ctx context.Context, offset, limit uint64) ([]domain.Post, error) {
				return s.posts.ListPosts(ctx, restaurant.ID, offset, limit)
			},
			s.posts.GetPost,
		)
	})
	if err != nil {
		return FeedPage[domain.Post]{}, err
	}
	return nextPage(ctx, f, reset)
}

// Products pages through the creator's product overview.
func (s *FeedService) Products(ctx context.Context, owner string, reset bool) (FeedPage[domain.Product], error) {
	restaurant, err := s.ownRestaurant(ctx, owner)
	if err != nil {
		return FeedPage[domain.Product]{}, err
	}
	f, err := openFeed(s, owner, "products-"+owner, storage.TableProducts, restaurantFilter(restaurant.ID), func() *feed.Feed[domain.Product] {
		return feed.New(s.pageSize,
			func(ctx context.Context, offset, limit uint64) ([]domain.Product, error) {
				return s.products.ListProducts(ctx, restaurant.ID, offset, limit)
			},
			s.products.GetProduct,
		)
	})
	if err != nil {
		return FeedPage[domain.Product]{}, err
	}
	return nextPage(ctx, f, reset)
}

// Close drops every live feed of the user.
func (s *FeedService) Close(userID string) int {
	s.mu.Lock()
	var cancels []func()
	for name, lf := range s.feeds {
		if lf.userID == userID {
			cancels = append(cancels, lf.cancel)
			delete(s.feeds, name)
		}
	}
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	return len(cancels)
}

func (s *FeedService) ownRestaurant(ctx context.Context, owner string) (domain.RestaurantProfile, error) {
	restaurant, err := s.restaurants.GetRestaurantByOwner(ctx, owner)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.RestaurantProfile{}, ErrNoRestaurant
	}
	if err != nil {
		return domain.RestaurantProfile{}, fmt.Errorf("failed to load restaurant: %w", err)
	}
	return restaurant, nil
}

// openFeed returns the user's feed registered under name, creating and
// subscribing it on first use.
func openFeed[T feed.Keyed](s *FeedService, userID, name, table, filter string, create func() *feed.Feed[T]) (*feed.Feed[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lf, ok := s.feeds[name]; ok {
		if f, ok := lf.feed.(*feed.Feed[T]); ok {
			return f, nil
		}
	}

	f := create()
	cancel, err := f.Listen(context.Background(), s.hub, name, table, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe feed %s: %w", name, err)
	}
	s.feeds[name] = &liveFeed{userID: userID, cancel: cancel, feed: f}
	return f, nil
}

func nextPage[T feed.Keyed](ctx context.Context, f *feed.Feed[T], reset bool) (FeedPage[T], error) {
	if reset {
		f.Reset()
	}
	if _, err := f.FetchPage(ctx); err != nil {
		return FeedPage[T]{}, fmt.Errorf("failed to fetch page: %w", err)
	}
	return FeedPage[T]{Items: f.Items(), HasMore: f.HasMore()}, nil
}
