package storage

import (
	"context"

	"scroll-and-bite/bite-svc/internal/domain"

	"github.com/samber/lo"
)

func (r *PostgresRepository) GetRestaurantByOwner(ctx context.Context, owner string) (domain.RestaurantProfile, error) {
	return Single[domain.RestaurantProfile](ctx, r.Gateway, Query{
		Table:   TableRestaurants,
		Filters: []Filter{Eq("owner", owner)},
	})
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int64) (domain.RestaurantProfile, error) {
	return Single[domain.RestaurantProfile](ctx, r.Gateway, Query{
		Table:   TableRestaurants,
		Filters: []Filter{Eq("id", id)},
	})
}

// UpsertRestaurant writes the profile keyed by its owner, one restaurant
// per creator.
func (r *PostgresRepository) UpsertRestaurant(ctx context.Context, profile domain.RestaurantProfile) (domain.RestaurantProfile, error) {
	return Upsert[domain.RestaurantProfile](ctx, r.Gateway, TableRestaurants, map[string]any{
		"owner":         profile.Owner,
		"name":          profile.Name,
		"street":        profile.Street,
		"street_nr":     profile.StreetNr,
		"zip_code":      profile.ZipCode,
		"city":          profile.City,
		"phone_number":  profile.PhoneNumber,
		"website":       profile.Website,
		"banner":        profile.Banner,
		"description":   profile.Description,
		"opening_hours": profile.OpeningHours,
	}, "owner")
}

func (r *PostgresRepository) RestaurantSummaries(ctx context.Context, ids []int64) (map[int64]domain.RestaurantSummary, error) {
	if len(ids) == 0 {
		return map[int64]domain.RestaurantSummary{}, nil
	}
	rows, err := Select[domain.RestaurantSummary](ctx, r.Gateway, Query{
		Table:   TableRestaurants,
		Filters: []Filter{In("id", lo.Uniq(ids))},
	})
	if err != nil {
		return nil, err
	}
	return lo.KeyBy(rows, func(row domain.RestaurantSummary) int64 { return row.ID }), nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return Select[domain.Category](ctx, r.Gateway, Query{
		Table:   TableCategories,
		OrderBy: []Order{{Column: "name"}},
	})
}
