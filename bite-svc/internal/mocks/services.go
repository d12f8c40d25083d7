package mocks

import (
	"context"
	"io"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/draft"
	"scroll-and-bite/bite-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

type AuthServiceInterface struct {
	mock.Mock
}

func NewAuthServiceInterface(t TestingT) *AuthServiceInterface {
	m := &AuthServiceInterface{}
	register(t, &m.Mock)
	return m
}

func (m *AuthServiceInterface) SignUp(ctx context.Context, req service.SignUpRequest) (service.Session, error) {
	ret := m.Called(ctx, req)
	return result[service.Session](ret, 0), ret.Error(1)
}

func (m *AuthServiceInterface) SignIn(ctx context.Context, email, password string) (service.Session, error) {
	ret := m.Called(ctx, email, password)
	return result[service.Session](ret, 0), ret.Error(1)
}

func (m *AuthServiceInterface) SignInWithProvider(ctx context.Context, identity service.ProviderIdentity) (service.Session, error) {
	ret := m.Called(ctx, identity)
	return result[service.Session](ret, 0), ret.Error(1)
}

func (m *AuthServiceInterface) GetSession(ctx context.Context, token string) (domain.Principal, error) {
	ret := m.Called(ctx, token)
	return result[domain.Principal](ret, 0), ret.Error(1)
}

func (m *AuthServiceInterface) SignOut(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *AuthServiceInterface) UpdateProfile(ctx context.Context, userID string, patch domain.PrincipalPatch) (domain.Principal, error) {
	ret := m.Called(ctx, userID, patch)
	return result[domain.Principal](ret, 0), ret.Error(1)
}

func (m *AuthServiceInterface) Address(ctx context.Context, userID string) (domain.Address, error) {
	ret := m.Called(ctx, userID)
	return result[domain.Address](ret, 0), ret.Error(1)
}

func (m *AuthServiceInterface) SetAddress(ctx context.Context, userID string, address domain.Address) (domain.Address, error) {
	ret := m.Called(ctx, userID, address)
	return result[domain.Address](ret, 0), ret.Error(1)
}

type RestaurantServiceInterface struct {
	mock.Mock
}

func NewRestaurantServiceInterface(t TestingT) *RestaurantServiceInterface {
	m := &RestaurantServiceInterface{}
	register(t, &m.Mock)
	return m
}

func (m *RestaurantServiceInterface) Current(ctx context.Context, owner string) (domain.RestaurantProfile, error) {
	ret := m.Called(ctx, owner)
	return result[domain.RestaurantProfile](ret, 0), ret.Error(1)
}

func (m *RestaurantServiceInterface) Get(ctx context.Context, id int64) (domain.RestaurantProfile, error) {
	ret := m.Called(ctx, id)
	return result[domain.RestaurantProfile](ret, 0), ret.Error(1)
}

func (m *RestaurantServiceInterface) Save(ctx context.Context, owner string, d draft.RestaurantDraft, banner io.Reader) (domain.RestaurantProfile, error) {
	ret := m.Called(ctx, owner, d, banner)
	return result[domain.RestaurantProfile](ret, 0), ret.Error(1)
}

func (m *RestaurantServiceInterface) Verify(ctx context.Context, owner string) (service.Verification, error) {
	ret := m.Called(ctx, owner)
	return result[service.Verification](ret, 0), ret.Error(1)
}

func (m *RestaurantServiceInterface) Categories(ctx context.Context) ([]domain.Category, error) {
	ret := m.Called(ctx)
	return result[[]domain.Category](ret, 0), ret.Error(1)
}

func (m *RestaurantServiceInterface) StartWizard(owner string) draft.Wizard {
	return result[draft.Wizard](m.Called(owner), 0)
}

func (m *RestaurantServiceInterface) Wizard(owner string) (draft.Wizard, error) {
	ret := m.Called(owner)
	return result[draft.Wizard](ret, 0), ret.Error(1)
}

func (m *RestaurantServiceInterface) AdvanceWizard(owner string, step func(draft.Wizard) (draft.Wizard, error)) (draft.Wizard, error) {
	ret := m.Called(owner, step)
	return result[draft.Wizard](ret, 0), ret.Error(1)
}

func (m *RestaurantServiceInterface) CommitWizard(ctx context.Context, owner string) (domain.RestaurantProfile, error) {
	ret := m.Called(ctx, owner)
	return result[domain.RestaurantProfile](ret, 0), ret.Error(1)
}

type ProductServiceInterface struct {
	mock.Mock
}

func NewProductServiceInterface(t TestingT) *ProductServiceInterface {
	m := &ProductServiceInterface{}
	register(t, &m.Mock)
	return m
}

func (m *ProductServiceInterface) Create(ctx context.Context, owner string, d draft.ProductDraft) (domain.Product, error) {
	ret := m.Called(ctx, owner, d)
	return result[domain.Product](ret, 0), ret.Error(1)
}

func (m *ProductServiceInterface) Update(ctx context.Context, owner string, d draft.ProductDraft) (domain.Product, error) {
	ret := m.Called(ctx, owner, d)
	return result[domain.Product](ret, 0), ret.Error(1)
}

func (m *ProductServiceInterface) Get(ctx context.Context, owner string, id int64) (domain.Product, error) {
	ret := m.Called(ctx, owner, id)
	return result[domain.Product](ret, 0), ret.Error(1)
}

func (m *ProductServiceInterface) Public(ctx context.Context, id int64) (domain.Product, error) {
	ret := m.Called(ctx, id)
	return result[domain.Product](ret, 0), ret.Error(1)
}

func (m *ProductServiceInterface) List(ctx context.Context, restaurantID int64, offset, limit uint64) ([]domain.Product, error) {
	ret := m.Called(ctx, restaurantID, offset, limit)
	return result[[]domain.Product](ret, 0), ret.Error(1)
}

type PostServiceInterface struct {
	mock.Mock
}

func NewPostServiceInterface(t TestingT) *PostServiceInterface {
	m := &PostServiceInterface{}
	register(t, &m.Mock)
	return m
}

func (m *PostServiceInterface) Create(ctx context.Context, owner string, d draft.PostDraft) (domain.Post, error) {
	ret := m.Called(ctx, owner, d)
	return result[domain.Post](ret, 0), ret.Error(1)
}

func (m *PostServiceInterface) Get(ctx context.Context, id int64) (domain.Post, error) {
	ret := m.Called(ctx, id)
	return result[domain.Post](ret, 0), ret.Error(1)
}

func (m *PostServiceInterface) Like(ctx context.Context, postID int64, userID string) error {
	return m.Called(ctx, postID, userID).Error(0)
}

func (m *PostServiceInterface) Unlike(ctx context.Context, postID int64, userID string) error {
	return m.Called(ctx, postID, userID).Error(0)
}

func (m *PostServiceInterface) IsLiked(ctx context.Context, postID int64, userID string) (bool, error) {
	ret := m.Called(ctx, postID, userID)
	return ret.Bool(0), ret.Error(1)
}

type FeedServiceInterface struct {
	mock.Mock
}

func NewFeedServiceInterface(t TestingT) *FeedServiceInterface {
	m := &FeedServiceInterface{}
	register(t, &m.Mock)
	return m
}

func (m *FeedServiceInterface) Home(ctx context.Context, userID string, restaurantID int64, reset bool) (service.FeedPage[domain.Post], error) {
	ret := m.Called(ctx, userID, restaurantID, reset)
	return result[service.FeedPage[domain.Post]](ret, 0), ret.Error(1)
}

func (m *FeedServiceInterface) OwnPosts(ctx context.Context, owner string, reset bool) (service.FeedPage[domain.Post], error) {
	ret := m.Called(ctx, owner, reset)
	return result[service.FeedPage[domain.Post]](ret, 0), ret.Error(1)
}

func (m *FeedServiceInterface) Products(ctx context.Context, owner string, reset bool) (service.FeedPage[domain.Product], error) {
	ret := m.Called(ctx, owner, reset)
	return result[service.FeedPage[domain.Product]](ret, 0), ret.Error(1)
}

func (m *FeedServiceInterface) Close(userID string) int {
	return m.Called(userID).Int(0)
}

type CartServiceInterface struct {
	mock.Mock
}

func NewCartServiceInterface(t TestingT) *CartServiceInterface {
	m := &CartServiceInterface{}
	register(t, &m.Mock)
	return m
}

func (m *CartServiceInterface) AddOne(ctx context.Context, key domain.CartKey) (domain.CartLine, error) {
	ret := m.Called(ctx, key)
	return result[domain.CartLine](ret, 0), ret.Error(1)
}

func (m *CartServiceInterface) SetQuantity(ctx context.Context, key domain.CartKey, quantity int) (domain.CartLine, bool, error) {
	ret := m.Called(ctx, key, quantity)
	return result[domain.CartLine](ret, 0), ret.Bool(1), ret.Error(2)
}

func (m *CartServiceInterface) Remove(ctx context.Context, key domain.CartKey) error {
	return m.Called(ctx, key).Error(0)
}

func (m *CartServiceInterface) ClearAll(ctx context.Context, userID string, restaurantIDs ...int64) (int, error) {
	ret := m.Called(ctx, userID, restaurantIDs)
	return ret.Int(0), ret.Error(1)
}

func (m *CartServiceInterface) Cart(ctx context.Context, userID string) (service.CartView, error) {
	ret := m.Called(ctx, userID)
	return result[service.CartView](ret, 0), ret.Error(1)
}

func (m *CartServiceInterface) Checkout(ctx context.Context, userID string, req service.CheckoutRequest) (domain.Order, error) {
	ret := m.Called(ctx, userID, req)
	return result[domain.Order](ret, 0), ret.Error(1)
}

type OrderServiceInterface struct {
	mock.Mock
}

func NewOrderServiceInterface(t TestingT) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	register(t, &m.Mock)
	return m
}

func (m *OrderServiceInterface) LoadBoard(ctx context.Context, owner string) (*service.Board, error) {
	ret := m.Called(ctx, owner)
	return result[*service.Board](ret, 0), ret.Error(1)
}

func (m *OrderServiceInterface) UpdateStatusForOwner(ctx context.Context, owner string, orderID int64, status domain.Status) (domain.Order, error) {
	ret := m.Called(ctx, owner, orderID, status)
	return result[domain.Order](ret, 0), ret.Error(1)
}

func (m *OrderServiceInterface) ForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	ret := m.Called(ctx, userID)
	return result[[]domain.Order](ret, 0), ret.Error(1)
}

func (m *OrderServiceInterface) Get(ctx context.Context, userID string, id int64) (domain.Order, error) {
	ret := m.Called(ctx, userID, id)
	return result[domain.Order](ret, 0), ret.Error(1)
}

func (m *OrderServiceInterface) PickupCode(ctx context.Context, userID string, id int64) ([]byte, error) {
	ret := m.Called(ctx, userID, id)
	return result[[]byte](ret, 0), ret.Error(1)
}
