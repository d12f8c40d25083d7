package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/storage"

	"github.com/samber/lo"
)

const mixedStatusLabel = "mixed"

// Board is a restaurant's view of its incoming orders. Each order carries
// only that restaurant's lines.
type Board struct {
	mu           sync.RWMutex
	restaurantID int64
	orders       []domain.Order
	selected     *domain.Order
}

func NewBoard(restaurantID int64, orders []domain.Order) *Board {
	return &Board{restaurantID: restaurantID, orders: orders}
}

func (b *Board) RestaurantID() int64 { return b.restaurantID }

func (b *Board) Orders() []domain.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return lo.Map(b.orders, func(o domain.Order, _ int) domain.Order { return copyOrder(o) })
}

func (b *Board) Selected() (domain.Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.selected == nil {
		return domain.Order{}, false
	}
	return copyOrder(*b.selected), true
}

func (b *Board) Select(orderID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	order, ok := lo.Find(b.orders, func(o domain.Order) bool { return o.ID == orderID })
	if !ok {
		return ErrOrderNotOnBoard
	}
	selected := copyOrder(order)
	b.selected = &selected
	return nil
}

func (b *Board) replace(orders []domain.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = orders
	if b.selected == nil {
		return
	}
	if order, ok := lo.Find(orders, func(o domain.Order) bool { return o.ID == b.selected.ID }); ok {
		selected := copyOrder(order)
		b.selected = &selected
	} else {
		b.selected = nil
	}
}

// patch applies fn to the order in the list and to the selected copy.
func (b *Board) patch(orderID int64, fn func(*domain.Order)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	found := false
	for i := range b.orders {
		if b.orders[i].ID == orderID {
			b.orders[i] = copyOrder(b.orders[i])
			fn(&b.orders[i])
			found = true
		}
	}
	if b.selected != nil && b.selected.ID == orderID {
		fn(b.selected)
	}
	return found
}

func copyOrder(o domain.Order) domain.Order {
	o.Lines = append([]domain.OrderLine(nil), o.Lines...)
	return o
}

// SummaryLabel names the status shared by the restaurant's lines of order,
// or "mixed" when they differ.
func SummaryLabel(order domain.Order, restaurantID int64) string {
	statuses := lo.Uniq(lo.FilterMap(order.Lines, func(l domain.OrderLine, _ int) (domain.Status, bool) {
		return l.Status.Normalize(), l.RestaurantID == restaurantID
	}))
	switch len(statuses) {
	case 0:
		return order.Status.Normalize().String()
	case 1:
		return statuses[0].String()
	}
	return mixedStatusLabel
}

type OrderService struct {
	orders      OrderRepository
	restaurants RestaurantRepository
	qr          QRGenerator

	mu     sync.Mutex
	boards map[int64]*Board
}

func NewOrderService(orders OrderRepository, restaurants RestaurantRepository, qr QRGenerator) *OrderService {
	return &OrderService{
		orders:      orders,
		restaurants: restaurants,
		qr:          qr,
		boards:      make(map[int64]*Board),
	}
}

// LoadBoard (re)loads the owner's board from the store.
func (s *OrderService) LoadBoard(ctx context.Context, owner string) (*Board, error) {
	restaurant, err := s.restaurants.GetRestaurantByOwner(ctx, owner)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoRestaurant
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}
	orders, err := s.orders.ListPurchasesForRestaurant(ctx, restaurant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	board, ok := s.boards[restaurant.ID]
	if !ok {
		board = NewBoard(restaurant.ID, orders)
		s.boards[restaurant.ID] = board
		return board, nil
	}
	board.replace(orders)
	return board, nil
}

// UpdateOwnLinesStatus moves the board restaurant's lines of an order to
// status. The board is patched before the write and restored when the
// write fails. The purchase itself is promoted once every line, of every
// restaurant, has the same status.
func (s *OrderService) UpdateOwnLinesStatus(ctx context.Context, board *Board, orderID int64, status domain.Status) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, ErrInvalidStatus
	}
	status = status.Normalize()

	before, onBoard := lo.Find(board.Orders(), func(o domain.Order) bool { return o.ID == orderID })
	if !onBoard {
		return domain.Order{}, ErrOrderNotOnBoard
	}

	board.patch(orderID, func(o *domain.Order) {
		for i := range o.Lines {
			if o.Lines[i].RestaurantID == board.restaurantID {
				o.Lines[i].Status = status
			}
		}
	})

	reconciled, err := s.orders.ReconcileLineStatus(ctx, orderID, board.restaurantID, status)
	if err != nil {
		board.patch(orderID, func(o *domain.Order) { *o = copyOrder(before) })
		return domain.Order{}, fmt.Errorf("failed to update order status: %w", err)
	}

	board.patch(orderID, func(o *domain.Order) {
		o.Status = reconciled.Status
	})
	return reconciled, nil
}

// UpdateStatusForOwner runs UpdateOwnLinesStatus against the owner's cached
// board, loading it on first use.
func (s *OrderService) UpdateStatusForOwner(ctx context.Context, owner string, orderID int64, status domain.Status) (domain.Order, error) {
	board, err := s.boardFor(ctx, owner)
	if err != nil {
		return domain.Order{}, err
	}
	return s.UpdateOwnLinesStatus(ctx, board, orderID, status)
}

func (s *OrderService) boardFor(ctx context.Context, owner string) (*Board, error) {
	restaurant, err := s.restaurants.GetRestaurantByOwner(ctx, owner)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoRestaurant
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}
	s.mu.Lock()
	board, ok := s.boards[restaurant.ID]
	s.mu.Unlock()
	if ok {
		return board, nil
	}
	return s.LoadBoard(ctx, owner)
}

func (s *OrderService) ForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListPurchasesByUser(ctx, userID)
}

// Get returns the buyer's own purchase. Other users' purchases yield
// ErrNotOwner.
func (s *OrderService) Get(ctx context.Context, userID string, id int64) (domain.Order, error) {
	order, err := s.orders.GetPurchase(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if order.UserID != userID {
		return domain.Order{}, ErrNotOwner
	}
	return order, nil
}

// PickupCode renders the QR code shown at pickup.
func (s *OrderService) PickupCode(ctx context.Context, userID string, id int64) ([]byte, error) {
	order, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	code, err := s.qr.Generate(order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return code, nil
}
