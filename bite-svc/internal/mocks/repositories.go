package mocks

import (
	"context"
	"io"
	"time"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/storage"

	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t TestingT) *UserRepository {
	m := &UserRepository{}
	register(t, &m.Mock)
	return m
}

func (m *UserRepository) CreateUser(ctx context.Context, id, name, email, passwordHash string) (domain.Principal, error) {
	ret := m.Called(ctx, id, name, email, passwordHash)
	return result[domain.Principal](ret, 0), ret.Error(1)
}

func (m *UserRepository) GetUser(ctx context.Context, id string) (domain.Principal, error) {
	ret := m.Called(ctx, id)
	return result[domain.Principal](ret, 0), ret.Error(1)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (domain.Principal, error) {
	ret := m.Called(ctx, email)
	return result[domain.Principal](ret, 0), ret.Error(1)
}

func (m *UserRepository) GetCredentials(ctx context.Context, email string) (storage.Credentials, error) {
	ret := m.Called(ctx, email)
	return result[storage.Credentials](ret, 0), ret.Error(1)
}

func (m *UserRepository) UpdateUser(ctx context.Context, id string, patch domain.PrincipalPatch) (domain.Principal, error) {
	ret := m.Called(ctx, id, patch)
	return result[domain.Principal](ret, 0), ret.Error(1)
}

type SessionStore struct {
	mock.Mock
}

func NewSessionStore(t TestingT) *SessionStore {
	m := &SessionStore{}
	register(t, &m.Mock)
	return m
}

func (m *SessionStore) Store(ctx context.Context, token, userID string) (time.Time, error) {
	ret := m.Called(ctx, token, userID)
	return result[time.Time](ret, 0), ret.Error(1)
}

func (m *SessionStore) Lookup(ctx context.Context, token string) (string, error) {
	ret := m.Called(ctx, token)
	return ret.String(0), ret.Error(1)
}

func (m *SessionStore) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type RestaurantRepository struct {
	mock.Mock
}

func NewRestaurantRepository(t TestingT) *RestaurantRepository {
	m := &RestaurantRepository{}
	register(t, &m.Mock)
	return m
}

func (m *RestaurantRepository) GetRestaurantByOwner(ctx context.Context, owner string) (domain.RestaurantProfile, error) {
	ret := m.Called(ctx, owner)
	return result[domain.RestaurantProfile](ret, 0), ret.Error(1)
}

func (m *RestaurantRepository) GetRestaurant(ctx context.Context, id int64) (domain.RestaurantProfile, error) {
	ret := m.Called(ctx, id)
	return result[domain.RestaurantProfile](ret, 0), ret.Error(1)
}

func (m *RestaurantRepository) UpsertRestaurant(ctx context.Context, profile domain.RestaurantProfile) (domain.RestaurantProfile, error) {
	ret := m.Called(ctx, profile)
	return result[domain.RestaurantProfile](ret, 0), ret.Error(1)
}

func (m *RestaurantRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ret := m.Called(ctx)
	return result[[]domain.Category](ret, 0), ret.Error(1)
}

type ProductRepository struct {
	mock.Mock
}

func NewProductRepository(t TestingT) *ProductRepository {
	m := &ProductRepository{}
	register(t, &m.Mock)
	return m
}

func (m *ProductRepository) InsertProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	ret := m.Called(ctx, p)
	return result[domain.Product](ret, 0), ret.Error(1)
}

func (m *ProductRepository) UpsertProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	ret := m.Called(ctx, p)
	return result[domain.Product](ret, 0), ret.Error(1)
}

func (m *ProductRepository) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	ret := m.Called(ctx, id)
	return result[domain.Product](ret, 0), ret.Error(1)
}

func (m *ProductRepository) ListProducts(ctx context.Context, restaurantID int64, offset, limit uint64) ([]domain.Product, error) {
	ret := m.Called(ctx, restaurantID, offset, limit)
	return result[[]domain.Product](ret, 0), ret.Error(1)
}

type PostRepository struct {
	mock.Mock
}

func NewPostRepository(t TestingT) *PostRepository {
	m := &PostRepository{}
	register(t, &m.Mock)
	return m
}

func (m *PostRepository) CreatePost(ctx context.Context, restaurantID int64, title string, items []domain.PostItem) (domain.Post, error) {
	ret := m.Called(ctx, restaurantID, title, items)
	return result[domain.Post](ret, 0), ret.Error(1)
}

func (m *PostRepository) ListPosts(ctx context.Context, restaurantID int64, offset, limit uint64) ([]domain.Post, error) {
	ret := m.Called(ctx, restaurantID, offset, limit)
	return result[[]domain.Post](ret, 0), ret.Error(1)
}

func (m *PostRepository) GetPost(ctx context.Context, id int64) (domain.Post, error) {
	ret := m.Called(ctx, id)
	return result[domain.Post](ret, 0), ret.Error(1)
}

func (m *PostRepository) InsertLike(ctx context.Context, postID int64, userID string) (domain.PostLike, error) {
	ret := m.Called(ctx, postID, userID)
	return result[domain.PostLike](ret, 0), ret.Error(1)
}

func (m *PostRepository) DeleteLike(ctx context.Context, postID int64, userID string) (int, error) {
	ret := m.Called(ctx, postID, userID)
	return ret.Int(0), ret.Error(1)
}

func (m *PostRepository) HasLike(ctx context.Context, postID int64, userID string) (bool, error) {
	ret := m.Called(ctx, postID, userID)
	return ret.Bool(0), ret.Error(1)
}

type CartRepository struct {
	mock.Mock
}

func NewCartRepository(t TestingT) *CartRepository {
	m := &CartRepository{}
	register(t, &m.Mock)
	return m
}

func (m *CartRepository) GetCartLine(ctx context.Context, key domain.CartKey) (domain.CartLine, bool, error) {
	ret := m.Called(ctx, key)
	return result[domain.CartLine](ret, 0), ret.Bool(1), ret.Error(2)
}

func (m *CartRepository) UpsertCartLine(ctx context.Context, key domain.CartKey, quantity int) (domain.CartLine, error) {
	ret := m.Called(ctx, key, quantity)
	return result[domain.CartLine](ret, 0), ret.Error(1)
}

func (m *CartRepository) DeleteCartLine(ctx context.Context, key domain.CartKey) (int, error) {
	ret := m.Called(ctx, key)
	return ret.Int(0), ret.Error(1)
}

func (m *CartRepository) DeleteCartLines(ctx context.Context, userID string, restaurantIDs ...int64) (int, error) {
	ret := m.Called(ctx, userID, restaurantIDs)
	return ret.Int(0), ret.Error(1)
}

func (m *CartRepository) ListCartLines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	ret := m.Called(ctx, userID)
	return result[[]domain.CartLine](ret, 0), ret.Error(1)
}

func (m *CartRepository) CreatePurchase(ctx context.Context, order domain.Order) (domain.Order, error) {
	ret := m.Called(ctx, order)
	return result[domain.Order](ret, 0), ret.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t TestingT) *OrderRepository {
	m := &OrderRepository{}
	register(t, &m.Mock)
	return m
}

func (m *OrderRepository) GetPurchase(ctx context.Context, id int64) (domain.Order, error) {
	ret := m.Called(ctx, id)
	return result[domain.Order](ret, 0), ret.Error(1)
}

func (m *OrderRepository) ListPurchasesByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	ret := m.Called(ctx, userID)
	return result[[]domain.Order](ret, 0), ret.Error(1)
}

func (m *OrderRepository) ListPurchasesForRestaurant(ctx context.Context, restaurantID int64) ([]domain.Order, error) {
	ret := m.Called(ctx, restaurantID)
	return result[[]domain.Order](ret, 0), ret.Error(1)
}

func (m *OrderRepository) ReconcileLineStatus(ctx context.Context, purchaseID, restaurantID int64, status domain.Status) (domain.Order, error) {
	ret := m.Called(ctx, purchaseID, restaurantID, status)
	return result[domain.Order](ret, 0), ret.Error(1)
}

type ObjectStorage struct {
	mock.Mock
}

func NewObjectStorage(t TestingT) *ObjectStorage {
	m := &ObjectStorage{}
	register(t, &m.Mock)
	return m
}

func (m *ObjectStorage) Upload(ctx context.Context, folder string, content io.Reader, isImage bool) (string, error) {
	ret := m.Called(ctx, folder, content, isImage)
	return ret.String(0), ret.Error(1)
}

func (m *ObjectStorage) Remove(objectPath string) error {
	return m.Called(objectPath).Error(0)
}

func (m *ObjectStorage) PublicURL(objectPath string) string {
	return m.Called(objectPath).String(0)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t TestingT) *QRGenerator {
	m := &QRGenerator{}
	register(t, &m.Mock)
	return m
}

func (m *QRGenerator) Generate(purchaseID int64) ([]byte, error) {
	ret := m.Called(purchaseID)
	return result[[]byte](ret, 0), ret.Error(1)
}
