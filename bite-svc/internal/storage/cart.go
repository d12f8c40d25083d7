package storage

import (
	"context"
	"errors"

	"scroll-and-bite/bite-svc/internal/domain"

	"github.com/samber/lo"
)

func cartKeyFilters(key domain.CartKey) []Filter {
	return []Filter{
		Eq("product_id", key.ProductID),
		Eq("user_id", key.UserID),
		Eq("restaurant_id", key.RestaurantID),
	}
}

// GetCartLine returns false when no line exists for key.
func (r *PostgresRepository) GetCartLine(ctx context.Context, key domain.CartKey) (domain.CartLine, bool, error) {
	line, err := Single[domain.CartLine](ctx, r.Gateway, Query{
		Table:   TableCartLines,
		Filters: cartKeyFilters(key),
	})
	if errors.Is(err, ErrNotFound) {
		return domain.CartLine{}, false, nil
	}
	if err != nil {
		return domain.CartLine{}, false, err
	}
	return line, true, nil
}

// UpsertCartLine writes quantity for the composite key.
func (r *PostgresRepository) UpsertCartLine(ctx context.Context, key domain.CartKey, quantity int) (domain.CartLine, error) {
	return Upsert[domain.CartLine](ctx, r.Gateway, TableCartLines, map[string]any{
		"product_id":    key.ProductID,
		"user_id":       key.UserID,
		"restaurant_id": key.RestaurantID,
		"quantity":      quantity,
	}, "product_id", "user_id", "restaurant_id")
}

func (r *PostgresRepository) DeleteCartLine(ctx context.Context, key domain.CartKey) (int, error) {
	rows, err := Delete[domain.CartLine](ctx, r.Gateway, TableCartLines, cartKeyFilters(key)...)
	return len(rows), err
}

// DeleteCartLines clears a user's cart, or only the lines of the given
// restaurants when any are named.
func (r *PostgresRepository) DeleteCartLines(ctx context.Context, userID string, restaurantIDs ...int64) (int, error) {
	filters := []Filter{Eq("user_id", userID)}
	if len(restaurantIDs) > 0 {
		filters = append(filters, In("restaurant_id", restaurantIDs))
	}
	rows, err := Delete[domain.CartLine](ctx, r.Gateway, TableCartLines, filters...)
	return len(rows), err
}

// ListCartLines returns the user's lines with their product snapshot.
func (r *PostgresRepository) ListCartLines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	lines, err := Select[domain.CartLine](ctx, r.Gateway, Query{
		Table:   TableCartLines,
		Filters: []Filter{Eq("user_id", userID)},
		OrderBy: []Order{{Column: "restaurant_id"}, {Column: "created_at"}},
	})
	if err != nil {
		return nil, err
	}
	snapshots, err := r.ProductSnapshots(ctx, lo.Map(lines, func(l domain.CartLine, _ int) int64 { return l.ProductID }))
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].Product = snapshotRef(snapshots, lines[i].ProductID)
	}
	return lines, nil
}
