package storage

import (
	"context"

	"scroll-and-bite/bite-svc/internal/domain"

	"github.com/samber/lo"
)

func productValues(p domain.Product) map[string]any {
	return map[string]any{
		"restaurant_id": p.RestaurantID,
		"category_id":   p.CategoryID,
		"product_name":  p.ProductName,
		"ingredients":   p.Ingredients,
		"allergens":     p.Allergens,
		"price":         p.Price,
		"is_active":     p.IsActive,
		"file":          p.File,
	}
}

func (r *PostgresRepository) InsertProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	return Insert[domain.Product](ctx, r.Gateway, TableProducts, productValues(p))
}

// UpsertProduct writes the product keyed by id.
func (r *PostgresRepository) UpsertProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	values := productValues(p)
	values["id"] = p.ID
	return Upsert[domain.Product](ctx, r.Gateway, TableProducts, values, "id")
}

func (r *PostgresRepository) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	return Single[domain.Product](ctx, r.Gateway, Query{
		Table:   TableProducts,
		Filters: []Filter{Eq("id", id)},
	})
}

// ListProducts returns a restaurant's products, newest first.
func (r *PostgresRepository) ListProducts(ctx context.Context, restaurantID int64, offset, limit uint64) ([]domain.Product, error) {
	return Select[domain.Product](ctx, r.Gateway, Query{
		Table:   TableProducts,
		Filters: []Filter{Eq("restaurant_id", restaurantID)},
		OrderBy: []Order{{Column: "created_at", Desc: true}, {Column: "id", Desc: true}},
		Offset:  offset,
		Limit:   limit,
	})
}

func (r *PostgresRepository) ProductSnapshots(ctx context.Context, ids []int64) (map[int64]domain.ProductSnapshot, error) {
	if len(ids) == 0 {
		return map[int64]domain.ProductSnapshot{}, nil
	}
	rows, err := Select[domain.ProductSnapshot](ctx, r.Gateway, Query{
		Table:   TableProducts,
		Filters: []Filter{In("id", lo.Uniq(ids))},
	})
	if err != nil {
		return nil, err
	}
	return lo.KeyBy(rows, func(row domain.ProductSnapshot) int64 { return row.ID }), nil
}

func snapshotRef(snapshots map[int64]domain.ProductSnapshot, id int64) *domain.ProductSnapshot {
	snapshot, ok := snapshots[id]
	if !ok {
		return nil
	}
	return &snapshot
}
