package storage

import (
	"context"

	"scroll-and-bite/bite-svc/internal/domain"

	"github.com/samber/lo"
)

// CreatePurchase inserts the purchase and its lines, then clears the
// buyer's cart for every restaurant involved. It runs in one transaction.
func (r *PostgresRepository) CreatePurchase(ctx context.Context, order domain.Order) (domain.Order, error) {
	var created domain.Order
	err := r.InTx(ctx, func(tx *PostgresRepository) error {
		purchase, err := Insert[domain.Order](ctx, tx.Gateway, TablePurchases, map[string]any{
			"user_id":        order.UserID,
			"payment_method": order.PaymentMethod,
			"delivery_notes": order.DeliveryNotes,
			"street_name":    order.StreetName,
			"house_number":   order.HouseNumber,
			"zip_code":       order.ZipCode,
			"city":           order.City,
			"state":          order.State,
			"country":        order.Country,
			"total_price":    order.TotalPrice,
			"status":         domain.StatusPending,
		})
		if err != nil {
			return err
		}

		purchase.Lines = make([]domain.OrderLine, 0, len(order.Lines))
		for _, line := range order.Lines {
			inserted, err := Insert[domain.OrderLine](ctx, tx.Gateway, TablePurchaseLines, map[string]any{
				"purchase_id":   purchase.ID,
				"restaurant_id": line.RestaurantID,
				"product_id":    line.ProductID,
				"quantity":      line.Quantity,
				"price":         line.Price,
				"status":        domain.StatusPending,
			})
			if err != nil {
				return err
			}
			inserted.Product = line.Product
			purchase.Lines = append(purchase.Lines, inserted)
		}

		restaurantIDs := lo.Uniq(lo.Map(order.Lines, func(l domain.OrderLine, _ int) int64 { return l.RestaurantID }))
		if _, err := tx.DeleteCartLines(ctx, order.UserID, restaurantIDs...); err != nil {
			return err
		}
		created = purchase
		return nil
	})
	return created, err
}

func (r *PostgresRepository) GetPurchase(ctx context.Context, id int64) (domain.Order, error) {
	order, err := Single[domain.Order](ctx, r.Gateway, Query{
		Table:   TablePurchases,
		Filters: []Filter{Eq("id", id)},
	})
	if err != nil {
		return domain.Order{}, err
	}
	orders, err := r.attachLines(ctx, []domain.Order{order}, 0)
	if err != nil {
		return domain.Order{}, err
	}
	return orders[0], nil
}

func (r *PostgresRepository) ListPurchasesByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := Select[domain.Order](ctx, r.Gateway, Query{
		Table:   TablePurchases,
		Filters: []Filter{Eq("user_id", userID)},
		OrderBy: []Order{{Column: "created_at", Desc: true}, {Column: "id", Desc: true}},
	})
	if err != nil {
		return nil, err
	}
	return r.attachLines(ctx, orders, 0)
}

// ListPurchasesForRestaurant returns the purchases holding at least one line
// of restaurantID, newest first, each carrying only that restaurant's lines.
func (r *PostgresRepository) ListPurchasesForRestaurant(ctx context.Context, restaurantID int64) ([]domain.Order, error) {
	lines, err := Select[domain.OrderLine](ctx, r.Gateway, Query{
		Table:   TablePurchaseLines,
		Filters: []Filter{Eq("restaurant_id", restaurantID)},
		Columns: []string{"DISTINCT purchase_id"},
	})
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return []domain.Order{}, nil
	}

	orders, err := Select[domain.Order](ctx, r.Gateway, Query{
		Table:   TablePurchases,
		Filters: []Filter{In("id", lo.Map(lines, func(l domain.OrderLine, _ int) int64 { return l.PurchaseID }))},
		OrderBy: []Order{{Column: "created_at", Desc: true}, {Column: "id", Desc: true}},
	})
	if err != nil {
		return nil, err
	}
	return r.attachLines(ctx, orders, restaurantID)
}

// attachLines loads the lines of orders, limited to one restaurant when
// restaurantID is not zero.
func (r *PostgresRepository) attachLines(ctx context.Context, orders []domain.Order, restaurantID int64) ([]domain.Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}
	filters := []Filter{In("purchase_id", lo.Map(orders, func(o domain.Order, _ int) int64 { return o.ID }))}
	if restaurantID != 0 {
		filters = append(filters, Eq("restaurant_id", restaurantID))
	}
	lines, err := Select[domain.OrderLine](ctx, r.Gateway, Query{
		Table:   TablePurchaseLines,
		Filters: filters,
		OrderBy: []Order{{Column: "id"}},
	})
	if err != nil {
		return nil, err
	}
	snapshots, err := r.ProductSnapshots(ctx, lo.Map(lines, func(l domain.OrderLine, _ int) int64 { return l.ProductID }))
	if err != nil {
		return nil, err
	}

	byPurchase := lo.GroupBy(normalizeLines(lines), func(l domain.OrderLine) int64 { return l.PurchaseID })
	for i := range orders {
		orders[i].Status = orders[i].Status.Normalize()
		orders[i].Lines = lo.Map(byPurchase[orders[i].ID], func(l domain.OrderLine, _ int) domain.OrderLine {
			l.Product = snapshotRef(snapshots, l.ProductID)
			return l
		})
	}
	return orders, nil
}

// ReconcileLineStatus moves restaurantID's lines of the purchase to status
// (legacy codes are written in their current form) and promotes the purchase when every line then carries that status. The
// purchase row stays locked for the whole transaction, so two restaurants
// finishing concurrently cannot both miss the promotion.
func (r *PostgresRepository) ReconcileLineStatus(ctx context.Context, purchaseID, restaurantID int64, status domain.Status) (domain.Order, error) {
	status = status.Normalize()
	var result domain.Order
	err := r.InTx(ctx, func(tx *PostgresRepository) error {
		order, err := Single[domain.Order](ctx, tx.Gateway, Query{
			Table:     TablePurchases,
			Filters:   []Filter{Eq("id", purchaseID)},
			ForUpdate: true,
		})
		if err != nil {
			return err
		}

		own, err := Select[domain.OrderLine](ctx, tx.Gateway, Query{
			Table:   TablePurchaseLines,
			Filters: []Filter{Eq("purchase_id", purchaseID), Eq("restaurant_id", restaurantID)},
		})
		if err != nil {
			return err
		}
		if len(own) == 0 {
			return kindError("reconcile", TablePurchaseLines, ErrNotFound)
		}
		for _, line := range normalizeLines(own) {
			if line.Status != status && !line.Status.CanTransitionTo(status) {
				return domain.ErrInvalidTransition
			}
		}

		if _, err := Update[domain.OrderLine](ctx, tx.Gateway, TablePurchaseLines,
			map[string]any{"status": status},
			Eq("purchase_id", purchaseID), Eq("restaurant_id", restaurantID),
		); err != nil {
			return err
		}

		promoted, err := Update[domain.Order](ctx, tx.Gateway, TablePurchases,
			map[string]any{"status": status},
			Eq("id", purchaseID),
			Expr("status <> ?", status),
			Expr("NOT EXISTS (SELECT 1 FROM purchase_lines WHERE purchase_id = ? AND status <> ?)", purchaseID, status),
		)
		if err != nil {
			return err
		}
		if len(promoted) == 1 {
			order = promoted[0]
		}

		lines, err := Select[domain.OrderLine](ctx, tx.Gateway, Query{
			Table:   TablePurchaseLines,
			Filters: []Filter{Eq("purchase_id", purchaseID)},
			OrderBy: []Order{{Column: "id"}},
		})
		if err != nil {
			return err
		}
		order.Status = order.Status.Normalize()
		order.Lines = normalizeLines(lines)
		result = order
		return nil
	})
	return result, err
}

func normalizeLines(lines []domain.OrderLine) []domain.OrderLine {
	for i := range lines {
		lines[i].Status = lines[i].Status.Normalize()
	}
	return lines
}
