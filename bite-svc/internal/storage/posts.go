package storage

import (
	"context"

	"scroll-and-bite/bite-svc/internal/domain"

	"github.com/samber/lo"
)

func (r *PostgresRepository) InsertPost(ctx context.Context, restaurantID int64, title string) (domain.Post, error) {
	return Insert[domain.Post](ctx, r.Gateway, TablePosts, map[string]any{
		"restaurant_id": restaurantID,
		"title":         title,
	})
}

func (r *PostgresRepository) InsertPostItem(ctx context.Context, postID, productID int64, file string) (domain.PostItem, error) {
	return Insert[domain.PostItem](ctx, r.Gateway, TablePostItems, map[string]any{
		"post_id":    postID,
		"product_id": productID,
		"file":       file,
	})
}

// CreatePost writes the post and its items in one transaction, so no
// listener sees the post before its videos are linked.
func (r *PostgresRepository) CreatePost(ctx context.Context, restaurantID int64, title string, items []domain.PostItem) (domain.Post, error) {
	var post domain.Post
	err := r.InTx(ctx, func(tx *PostgresRepository) error {
		inserted, err := tx.InsertPost(ctx, restaurantID, title)
		if err != nil {
			return err
		}
		for _, item := range items {
			saved, err := tx.InsertPostItem(ctx, inserted.ID, item.ProductID, item.File)
			if err != nil {
				return err
			}
			inserted.Items = append(inserted.Items, saved)
		}
		post = inserted
		return nil
	})
	return post, err
}

// ListPosts pages posts newest first. A zero restaurantID lists every
// restaurant.
func (r *PostgresRepository) ListPosts(ctx context.Context, restaurantID int64, offset, limit uint64) ([]domain.Post, error) {
	q := Query{
		Table:   TablePosts,
		OrderBy: []Order{{Column: "created_at", Desc: true}, {Column: "id", Desc: true}},
		Offset:  offset,
		Limit:   limit,
	}
	if restaurantID != 0 {
		q.Filters = []Filter{Eq("restaurant_id", restaurantID)}
	}
	posts, err := Select[domain.Post](ctx, r.Gateway, q)
	if err != nil {
		return nil, err
	}
	return r.hydratePosts(ctx, posts)
}

func (r *PostgresRepository) GetPost(ctx context.Context, id int64) (domain.Post, error) {
	post, err := Single[domain.Post](ctx, r.Gateway, Query{
		Table:   TablePosts,
		Filters: []Filter{Eq("id", id)},
	})
	if err != nil {
		return domain.Post{}, err
	}
	posts, err := r.hydratePosts(ctx, []domain.Post{post})
	if err != nil {
		return domain.Post{}, err
	}
	return posts[0], nil
}

// hydratePosts attaches items with their product snapshot, likes and the
// restaurant summary using one query per relation.
func (r *PostgresRepository) hydratePosts(ctx context.Context, posts []domain.Post) ([]domain.Post, error) {
	if len(posts) == 0 {
		return posts, nil
	}
	postIDs := lo.Map(posts, func(p domain.Post, _ int) int64 { return p.ID })

	items, err := Select[domain.PostItem](ctx, r.Gateway, Query{
		Table:   TablePostItems,
		Filters: []Filter{In("post_id", postIDs)},
		OrderBy: []Order{{Column: "id"}},
	})
	if err != nil {
		return nil, err
	}
	likes, err := Select[domain.PostLike](ctx, r.Gateway, Query{
		Table:   TablePostLikes,
		Filters: []Filter{In("post_id", postIDs)},
	})
	if err != nil {
		return nil, err
	}
	snapshots, err := r.ProductSnapshots(ctx, lo.Map(items, func(i domain.PostItem, _ int) int64 { return i.ProductID }))
	if err != nil {
		return nil, err
	}
	restaurants, err := r.RestaurantSummaries(ctx, lo.Map(posts, func(p domain.Post, _ int) int64 { return p.RestaurantID }))
	if err != nil {
		return nil, err
	}

	itemsByPost := lo.GroupBy(items, func(i domain.PostItem) int64 { return i.PostID })
	likesByPost := lo.GroupBy(likes, func(l domain.PostLike) int64 { return l.PostID })

	for i := range posts {
		post := &posts[i]
		post.Items = lo.Map(itemsByPost[post.ID], func(item domain.PostItem, _ int) domain.PostItem {
			item.Product = snapshotRef(snapshots, item.ProductID)
			return item
		})
		post.Likes = likesByPost[post.ID]
		if post.Likes == nil {
			post.Likes = []domain.PostLike{}
		}
		if summary, ok := restaurants[post.RestaurantID]; ok {
			post.Restaurant = &summary
		}
	}
	return posts, nil
}

func (r *PostgresRepository) InsertLike(ctx context.Context, postID int64, userID string) (domain.PostLike, error) {
	return Insert[domain.PostLike](ctx, r.Gateway, TablePostLikes, map[string]any{
		"post_id": postID,
		"user_id": userID,
	})
}

func (r *PostgresRepository) DeleteLike(ctx context.Context, postID int64, userID string) (int, error) {
	rows, err := Delete[domain.PostLike](ctx, r.Gateway, TablePostLikes, Eq("post_id", postID), Eq("user_id", userID))
	return len(rows), err
}

func (r *PostgresRepository) HasLike(ctx context.Context, postID int64, userID string) (bool, error) {
	rows, err := Select[domain.PostLike](ctx, r.Gateway, Query{
		Table:   TablePostLikes,
		Filters: []Filter{Eq("post_id", postID), Eq("user_id", userID)},
		Limit:   1,
	})
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}
