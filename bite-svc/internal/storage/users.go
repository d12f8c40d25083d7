package storage

import (
	"context"

	"scroll-and-bite/bite-svc/internal/domain"
)

// Credentials is read separately so password hashes never travel with a
// Principal or its change events.
type Credentials struct {
	ID           string `db:"id"`
	PasswordHash string `db:"password_hash"`
}

func (r *PostgresRepository) CreateUser(ctx context.Context, id, name, email, passwordHash string) (domain.Principal, error) {
	return Insert[domain.Principal](ctx, r.Gateway, TableUsers, map[string]any{
		"id":            id,
		"name":          name,
		"email":         email,
		"password_hash": passwordHash,
	})
}

func (r *PostgresRepository) GetUser(ctx context.Context, id string) (domain.Principal, error) {
	return Single[domain.Principal](ctx, r.Gateway, Query{
		Table:   TableUsers,
		Filters: []Filter{Eq("id", id)},
	})
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (domain.Principal, error) {
	return Single[domain.Principal](ctx, r.Gateway, Query{
		Table:   TableUsers,
		Filters: []Filter{Eq("email", email)},
	})
}

func (r *PostgresRepository) GetCredentials(ctx context.Context, email string) (Credentials, error) {
	return Single[Credentials](ctx, r.Gateway, Query{
		Table:   TableUsers,
		Filters: []Filter{Eq("email", email)},
	})
}

func (r *PostgresRepository) UpdateUser(ctx context.Context, id string, patch domain.PrincipalPatch) (domain.Principal, error) {
	if patch.IsEmpty() {
		return r.GetUser(ctx, id)
	}
	rows, err := Update[domain.Principal](ctx, r.Gateway, TableUsers, patch.Values(), Eq("id", id))
	if err != nil {
		return domain.Principal{}, err
	}
	if len(rows) == 0 {
		return domain.Principal{}, kindError("update", TableUsers, ErrNotFound)
	}
	return rows[0], nil
}
