package httpapi

import (
	"context"
	"io"
	"net/http"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/draft"
	"scroll-and-bite/bite-svc/internal/service"
	"scroll-and-bite/bite-svc/internal/session"

	"github.com/gorilla/mux"
)

type AuthServiceInterface interface {
	SignUp(ctx context.Context, req service.SignUpRequest) (service.Session, error)
	SignIn(ctx context.Context, email, password string) (service.Session, error)
	SignInWithProvider(ctx context.Context, identity service.ProviderIdentity) (service.Session, error)
	GetSession(ctx context.Context, token string) (domain.Principal, error)
	SignOut(ctx context.Context, token string) error
	UpdateProfile(ctx context.Context, userID string, patch domain.PrincipalPatch) (domain.Principal, error)
	Address(ctx context.Context, userID string) (domain.Address, error)
	SetAddress(ctx context.Context, userID string, address domain.Address) (domain.Address, error)
}

type RestaurantServiceInterface interface {
	Current(ctx context.Context, owner string) (domain.RestaurantProfile, error)
	Get(ctx context.Context, id int64) (domain.RestaurantProfile, error)
	Save(ctx context.Context, owner string, d draft.RestaurantDraft, banner io.Reader) (domain.RestaurantProfile, error)
	Verify(ctx context.Context, owner string) (service.Verification, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	StartWizard(owner string) draft.Wizard
	Wizard(owner string) (draft.Wizard, error)
	AdvanceWizard(owner string, step func(draft.Wizard) (draft.Wizard, error)) (draft.Wizard, error)
	CommitWizard(ctx context.Context, owner string) (domain.RestaurantProfile, error)
}

type ProductServiceInterface interface {
	Create(ctx context.Context, owner string, d draft.ProductDraft) (domain.Product, error)
	Update(ctx context.Context, owner string, d draft.ProductDraft) (domain.Product, error)
	Get(ctx context.Context, owner string, id int64) (domain.Product, error)
	Public(ctx context.Context, id int64) (domain.Product, error)
	List(ctx context.Context, restaurantID int64, offset, limit uint64) ([]domain.Product, error)
}

type PostServiceInterface interface {
	Create(ctx context.Context, owner string, d draft.PostDraft) (domain.Post, error)
	Get(ctx context.Context, id int64) (domain.Post, error)
	Like(ctx context.Context, postID int64, userID string) error
	Unlike(ctx context.Context, postID int64, userID string) error
	IsLiked(ctx context.Context, postID int64, userID string) (bool, error)
}

type FeedServiceInterface interface {
	Home(ctx context.Context, userID string, restaurantID int64, reset bool) (service.FeedPage[domain.Post], error)
	OwnPosts(ctx context.Context, owner string, reset bool) (service.FeedPage[domain.Post], error)
	Products(ctx context.Context, owner string, reset bool) (service.FeedPage[domain.Product], error)
	Close(userID string) int
}

type CartServiceInterface interface {
	AddOne(ctx context.Context, key domain.CartKey) (domain.CartLine, error)
	SetQuantity(ctx context.Context, key domain.CartKey, quantity int) (domain.CartLine, bool, error)
	Remove(ctx context.Context, key domain.CartKey) error
	ClearAll(ctx context.Context, userID string, restaurantIDs ...int64) (int, error)
	Cart(ctx context.Context, userID string) (service.CartView, error)
	Checkout(ctx context.Context, userID string, req service.CheckoutRequest) (domain.Order, error)
}

type OrderServiceInterface interface {
	LoadBoard(ctx context.Context, owner string) (*service.Board, error)
	UpdateStatusForOwner(ctx context.Context, owner string, orderID int64, status domain.Status) (domain.Order, error)
	ForUser(ctx context.Context, userID string) ([]domain.Order, error)
	Get(ctx context.Context, userID string, id int64) (domain.Order, error)
	PickupCode(ctx context.Context, userID string, id int64) ([]byte, error)
}

var (
	_ AuthServiceInterface       = (*service.AuthService)(nil)
	_ RestaurantServiceInterface = (*service.RestaurantService)(nil)
	_ ProductServiceInterface    = (*service.ProductService)(nil)
	_ PostServiceInterface       = (*service.PostService)(nil)
	_ FeedServiceInterface       = (*service.FeedService)(nil)
	_ CartServiceInterface       = (*service.CartService)(nil)
	_ OrderServiceInterface      = (*service.OrderService)(nil)
)

type Handler struct {
	Auth        AuthServiceInterface
	Restaurants RestaurantServiceInterface
	Products    ProductServiceInterface
	Posts       PostServiceInterface
	Feeds       FeedServiceInterface
	Cart        CartServiceInterface
	Orders      OrderServiceInterface
	Sessions    *session.Registry
	Objects     ObjectURLs
}

// ObjectURLs turns stored object paths into public links.
type ObjectURLs interface {
	PublicURL(objectPath string) string
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/auth/signup", h.signUp).Methods("POST")
	r.HandleFunc("/api/auth/signin", h.signIn).Methods("POST")
	r.HandleFunc("/api/auth/provider", h.signInWithProvider).Methods("POST")
	r.HandleFunc("/api/auth/signout", h.authenticated(h.signOut)).Methods("POST")
	r.HandleFunc("/api/me", h.authenticated(h.getMe)).Methods("GET")
	r.HandleFunc("/api/me", h.authenticated(h.updateMe)).Methods("PATCH")
	r.HandleFunc("/api/me/address", h.authenticated(h.getAddress)).Methods("GET")
	r.HandleFunc("/api/me/address", h.authenticated(h.setAddress)).Methods("PUT")

	r.HandleFunc("/api/storage/url", h.getPublicURL).Methods("GET")
	r.HandleFunc("/api/categories", h.getCategories).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/products", h.getRestaurantProducts).Methods("GET")
	r.HandleFunc("/api/products/{id}", h.getProduct).Methods("GET")

	r.HandleFunc("/api/restaurant", h.creator(h.getOwnRestaurant)).Methods("GET")
	r.HandleFunc("/api/restaurant", h.creator(h.saveRestaurant)).Methods("PUT")
	r.HandleFunc("/api/restaurant/verification", h.creator(h.verifyRestaurant)).Methods("GET")
	r.HandleFunc("/api/restaurant/products", h.creator(h.getOwnProducts)).Methods("GET")
	r.HandleFunc("/api/restaurant/products", h.creator(h.createProduct)).Methods("POST")
	r.HandleFunc("/api/restaurant/products/{id}", h.creator(h.getOwnProduct)).Methods("GET")
	r.HandleFunc("/api/restaurant/products/{id}", h.creator(h.updateProduct)).Methods("PUT")
	r.HandleFunc("/api/restaurant/posts", h.creator(h.getOwnPosts)).Methods("GET")
	r.HandleFunc("/api/restaurant/posts", h.creator(h.createPost)).Methods("POST")

	r.HandleFunc("/api/wizard", h.creator(h.startWizard)).Methods("POST")
	r.HandleFunc("/api/wizard", h.creator(h.getWizard)).Methods("GET")
	r.HandleFunc("/api/wizard/fields", h.creator(h.updateWizardField)).Methods("PATCH")
	r.HandleFunc("/api/wizard/hours/{day}", h.creator(h.setWizardDay)).Methods("PUT")
	r.HandleFunc("/api/wizard/types", h.creator(h.toggleWizardType)).Methods("POST")
	r.HandleFunc("/api/wizard/next", h.creator(h.nextWizardStep)).Methods("POST")
	r.HandleFunc("/api/wizard/back", h.creator(h.previousWizardStep)).Methods("POST")
	r.HandleFunc("/api/wizard/commit", h.creator(h.commitWizard)).Methods("POST")

	r.HandleFunc("/api/feed", h.authenticated(h.getHomeFeed)).Methods("GET")
	r.HandleFunc("/api/posts/{id}", h.getPost).Methods("GET")
	r.HandleFunc("/api/posts/{id}/like", h.authenticated(h.getLike)).Methods("GET")
	r.HandleFunc("/api/posts/{id}/like", h.authenticated(h.likePost)).Methods("POST")
	r.HandleFunc("/api/posts/{id}/like", h.authenticated(h.unlikePost)).Methods("DELETE")

	r.HandleFunc("/api/cart", h.authenticated(h.getCart)).Methods("GET")
	r.HandleFunc("/api/cart", h.authenticated(h.clearCart)).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.authenticated(h.addToCart)).Methods("POST")
	r.HandleFunc("/api/cart/items/{restaurantId}/{productId}", h.authenticated(h.setCartQuantity)).Methods("PUT")
	r.HandleFunc("/api/cart/items/{restaurantId}/{productId}", h.authenticated(h.removeFromCart)).Methods("DELETE")
	r.HandleFunc("/api/cart/checkout", h.authenticated(h.checkout)).Methods("POST")

	r.HandleFunc("/api/purchases", h.authenticated(h.getPurchases)).Methods("GET")
	r.HandleFunc("/api/purchases/{id}", h.authenticated(h.getPurchase)).Methods("GET")
	r.HandleFunc("/api/purchases/{id}/qrcode", h.authenticated(h.getPurchaseQRCode)).Methods("GET")

	r.HandleFunc("/api/board", h.creator(h.getBoard)).Methods("GET")
	r.HandleFunc("/api/board/orders/{id}/status", h.creator(h.updateOrderStatus)).Methods("PUT")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "bite-svc",
	})
}

func (h *Handler) getPublicURL(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"url": h.Objects.PublicURL(r.URL.Query().Get("path"))})
}
