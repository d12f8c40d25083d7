package service

import (
	"context"
	"fmt"
	"strings"

	"scroll-and-bite/bite-svc/internal/domain"

	"github.com/samber/lo"
)

// RestaurantTotal sums the lines one restaurant contributes to a cart.
type RestaurantTotal struct {
	RestaurantID int64   `json:"restaurant_id"`
	Items        int     `json:"items"`
	Total        float64 `json:"total"`
}

type CartView struct {
	Lines       []domain.CartLine `json:"lines"`
	Restaurants []RestaurantTotal `json:"restaurants"`
	Total       float64           `json:"total"`
}

type CheckoutRequest struct {
	PaymentMethod string          `json:"payment_method"`
	DeliveryNotes string          `json:"delivery_notes"`
	Address       *domain.Address `json:"address,omitempty"`
}

type CartService struct {
	cart  CartRepository
	users UserRepository
}

func NewCartService(cart CartRepository, users UserRepository) *CartService {
	return &CartService{cart: cart, users: users}
}

// AddOne puts one more unit of the product in the cart, creating the line
// with quantity 1 when it does not exist yet.
func (s *CartService) AddOne(ctx context.Context, key domain.CartKey) (domain.CartLine, error) {
	line, found, err := s.cart.GetCartLine(ctx, key)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("failed to read cart line: %w", err)
	}
	quantity := 1
	if found {
		quantity = line.Quantity + 1
	}

	updated, err := s.cart.UpsertCartLine(ctx, key, quantity)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("failed to write cart line: %w", err)
	}
	return updated, nil
}

// SetQuantity overwrites the line's quantity. Zero or less removes the line
// and returns false.
func (s *CartService) SetQuantity(ctx context.Context, key domain.CartKey, quantity int) (domain.CartLine, bool, error) {
	if quantity <= 0 {
		return domain.CartLine{}, false, s.Remove(ctx, key)
	}
	line, err := s.cart.UpsertCartLine(ctx, key, quantity)
	if err != nil {
		return domain.CartLine{}, false, fmt.Errorf("failed to write cart line: %w", err)
	}
	return line, true, nil
}

func (s *CartService) Remove(ctx context.Context, key domain.CartKey) error {
	if _, err := s.cart.DeleteCartLine(ctx, key); err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}
	return nil
}

// ClearAll empties the user's cart, or only the named restaurants' lines.
func (s *CartService) ClearAll(ctx context.Context, userID string, restaurantIDs ...int64) (int, error) {
	removed, err := s.cart.DeleteCartLines(ctx, userID, restaurantIDs...)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}
	return removed, nil
}

func (s *CartService) Cart(ctx context.Context, userID string) (CartView, error) {
	lines, err := s.cart.ListCartLines(ctx, userID)
	if err != nil {
		return CartView{}, fmt.Errorf("failed to load cart: %w", err)
	}
	return buildCartView(lines), nil
}

func buildCartView(lines []domain.CartLine) CartView {
	grouped := lo.GroupBy(lines, func(l domain.CartLine) int64 { return l.RestaurantID })
	restaurantIDs := lo.Uniq(lo.Map(lines, func(l domain.CartLine, _ int) int64 { return l.RestaurantID }))

	totals := lo.Map(restaurantIDs, func(id int64, _ int) RestaurantTotal {
		group := grouped[id]
		return RestaurantTotal{
			RestaurantID: id,
			Items:        lo.SumBy(group, func(l domain.CartLine) int { return l.Quantity }),
			Total:        lo.SumBy(group, func(l domain.CartLine) float64 { return l.Subtotal() }),
		}
	})
	return CartView{
		Lines:       lines,
		Restaurants: totals,
		Total:       lo.SumBy(totals, func(t RestaurantTotal) float64 { return t.Total }),
	}
}

// Checkout turns the whole cart into one pending purchase and clears the
// cart of the restaurants involved.
func (s *CartService) Checkout(ctx context.Context, userID string, req CheckoutRequest) (domain.Order, error) {
	lines, err := s.cart.ListCartLines(ctx, userID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}
	if lo.ContainsBy(lines, func(l domain.CartLine) bool { return l.Product == nil || !l.Product.IsActive }) {
		return domain.Order{}, ErrProductUnavailable
	}

	address, err := s.deliveryAddress(ctx, userID, req.Address)
	if err != nil {
		return domain.Order{}, err
	}

	view := buildCartView(lines)
	order := domain.Order{
		UserID:        userID,
		PaymentMethod: req.PaymentMethod,
		DeliveryNotes: req.DeliveryNotes,
		StreetName:    address.StreetName,
		HouseNumber:   address.HouseNumber,
		ZipCode:       address.ZipCode,
		City:          address.City,
		State:         address.State,
		Country:       address.Country,
		TotalPrice:    view.Total,
		Lines: lo.Map(lines, func(l domain.CartLine, _ int) domain.OrderLine {
			return domain.OrderLine{
				RestaurantID: l.RestaurantID,
				ProductID:    l.ProductID,
				Quantity:     l.Quantity,
				Price:        l.Product.Price,
				Product:      l.Product,
			}
		}),
	}

	created, err := s.cart.CreatePurchase(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to create purchase: %w", err)
	}
	return created, nil
}

func (s *CartService) deliveryAddress(ctx context.Context, userID string, override *domain.Address) (domain.Address, error) {
	var address domain.Address
	if override != nil {
		address = *override
	} else {
		user, err := s.users.GetUser(ctx, userID)
		if err != nil {
			return domain.Address{}, fmt.Errorf("failed to load address: %w", err)
		}
		address = user.Address()
	}
	if strings.TrimSpace(address.StreetName) == "" || strings.TrimSpace(address.City) == "" {
		return domain.Address{}, ErrMissingAddress
	}
	return address, nil
}
