package service

import (
	"context"
	"io"
	"time"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/storage"
)

type UserRepository interface {
	CreateUser(ctx context.Context, id, name, email, passwordHash string) (domain.Principal, error)
	GetUser(ctx context.Context, id string) (domain.Principal, error)
	GetUserByEmail(ctx context.Context, email string) (domain.Principal, error)
	GetCredentials(ctx context.Context, email string) (storage.Credentials, error)
	UpdateUser(ctx context.Context, id string, patch domain.PrincipalPatch) (domain.Principal, error)
}

type SessionStore interface {
	Store(ctx context.Context, token, userID string) (time.Time, error)
	Lookup(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

type RestaurantRepository interface {
	GetRestaurantByOwner(ctx context.Context, owner string) (domain.RestaurantProfile, error)
	GetRestaurant(ctx context.Context, id int64) (domain.RestaurantProfile, error)
	UpsertRestaurant(ctx context.Context, profile domain.RestaurantProfile) (domain.RestaurantProfile, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type ProductRepository interface {
	InsertProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	UpsertProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	ListProducts(ctx context.Context, restaurantID int64, offset, limit uint64) ([]domain.Product, error)
}

type PostRepository interface {
	CreatePost(ctx context.Context, restaurantID int64, title string, items []domain.PostItem) (domain.Post, error)
	ListPosts(ctx context.Context, restaurantID int64, offset, limit uint64) ([]domain.Post, error)
	GetPost(ctx context.Context, id int64) (domain.Post, error)
	InsertLike(ctx context.Context, postID int64, userID string) (domain.PostLike, error)
	DeleteLike(ctx context.Context, postID int64, userID string) (int, error)
	HasLike(ctx context.Context, postID int64, userID string) (bool, error)
}

type CartRepository interface {
	GetCartLine(ctx context.Context, key domain.CartKey) (domain.CartLine, bool, error)
	UpsertCartLine(ctx context.Context, key domain.CartKey, quantity int) (domain.CartLine, error)
	DeleteCartLine(ctx context.Context, key domain.CartKey) (int, error)
	DeleteCartLines(ctx context.Context, userID string, restaurantIDs ...int64) (int, error)
	ListCartLines(ctx context.Context, userID string) ([]domain.CartLine, error)
	CreatePurchase(ctx context.Context, order domain.Order) (domain.Order, error)
}

type OrderRepository interface {
	GetPurchase(ctx context.Context, id int64) (domain.Order, error)
	ListPurchasesByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListPurchasesForRestaurant(ctx context.Context, restaurantID int64) ([]domain.Order, error)
	ReconcileLineStatus(ctx context.Context, purchaseID, restaurantID int64, status domain.Status) (domain.Order, error)
}

type ObjectStorage interface {
	Upload(ctx context.Context, folder string, content io.Reader, isImage bool) (string, error)
	Remove(objectPath string) error
	PublicURL(objectPath string) string
}

var (
	_ UserRepository       = (*storage.PostgresRepository)(nil)
	_ RestaurantRepository = (*storage.PostgresRepository)(nil)
	_ ProductRepository    = (*storage.PostgresRepository)(nil)
	_ PostRepository       = (*storage.PostgresRepository)(nil)
	_ CartRepository       = (*storage.PostgresRepository)(nil)
	_ OrderRepository      = (*storage.PostgresRepository)(nil)
	_ SessionStore         = (*storage.RedisSessionStore)(nil)
	_ ObjectStorage        = (*storage.ObjectStore)(nil)
)
