package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const (
	TableUsers         = "users"
	TableRestaurants   = "restaurants"
	TableCategories    = "categories"
	TableProducts      = "products"
	TablePosts         = "posts"
	TablePostItems     = "post_items"
	TablePostLikes     = "post_likes"
	TableCartLines     = "cart_lines"
	TablePurchases     = "purchases"
	TablePurchaseLines = "purchase_lines"
)

// PostgresRepository holds the table specific queries. Every statement goes
// through the Gateway so writes are classified and published the same way.
type PostgresRepository struct {
	Gateway *Gateway
}

func NewPostgresRepository(db *sqlx.DB, publisher ChangePublisher) *PostgresRepository {
	return &PostgresRepository{Gateway: NewGateway(db, publisher)}
}

// InTx runs fn against a repository bound to one transaction.
func (r *PostgresRepository) InTx(ctx context.Context, fn func(tx *PostgresRepository) error) error {
	return r.Gateway.WithTx(ctx, func(g *Gateway) error {
		return fn(&PostgresRepository{Gateway: g})
	})
}
