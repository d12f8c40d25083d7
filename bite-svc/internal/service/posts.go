package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/draft"
	"scroll-and-bite/bite-svc/internal/storage"
)

type PostService struct {
	posts       PostRepository
	restaurants RestaurantRepository
	objects     ObjectStorage
}

func NewPostService(posts PostRepository, restaurants RestaurantRepository, objects ObjectStorage) *PostService {
	return &PostService{posts: posts, restaurants: restaurants, objects: objects}
}

// Create uploads every video first and then writes the post and its items
// in one go. Uploads are removed again when any later step fails.
func (s *PostService) Create(ctx context.Context, owner string, d draft.PostDraft) (domain.Post, error) {
	if err := d.Validate(); err != nil {
		return domain.Post{}, err
	}
	restaurant, err := s.restaurants.GetRestaurantByOwner(ctx, owner)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Post{}, ErrNoRestaurant
	}
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to load restaurant: %w", err)
	}

	items := make([]domain.PostItem, 0, len(d.Items))
	for i, item := range d.Items {
		objectPath, err := s.objects.Upload(ctx, fmt.Sprintf("posts/%d", restaurant.ID), item.Video, false)
		if err != nil {
			s.removeUploads(items)
			return domain.Post{}, fmt.Errorf("failed to upload video %d: %w", i, err)
		}
		items = append(items, domain.PostItem{ProductID: item.ProductID, File: objectPath})
	}

	post, err := s.posts.CreatePost(ctx, restaurant.ID, d.Title, items)
	if err != nil {
		s.removeUploads(items)
		return domain.Post{}, fmt.Errorf("failed to create post: %w", err)
	}
	return s.posts.GetPost(ctx, post.ID)
}

func (s *PostService) removeUploads(items []domain.PostItem) {
	for _, item := range items {
		if err := s.objects.Remove(item.File); err != nil {
			log.Printf("Warning: failed to remove upload %s: %v", item.File, err)
		}
	}
}

func (s *PostService) Get(ctx context.Context, id int64) (domain.Post, error) {
	return s.posts.GetPost(ctx, id)
}

// Like is idempotent: liking twice keeps one like.
func (s *PostService) Like(ctx context.Context, postID int64, userID string) error {
	_, err := s.posts.InsertLike(ctx, postID, userID)
	if errors.Is(err, storage.ErrConflict) {
		return nil
	}
	return err
}

func (s *PostService) Unlike(ctx context.Context, postID int64, userID string) error {
	_, err := s.posts.DeleteLike(ctx, postID, userID)
	return err
}

func (s *PostService) IsLiked(ctx context.Context, postID int64, userID string) (bool, error) {
	return s.posts.HasLike(ctx, postID, userID)
}
