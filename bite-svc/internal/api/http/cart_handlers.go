package httpapi

import (
	"net/http"
	"strconv"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/service"
)

// cartKey builds the caller's key from the restaurantId and productId path
// variables.
func cartKey(r *http.Request, userID string) (domain.CartKey, bool) {
	restaurantID, okRestaurant := pathID(r, "restaurantId")
	productID, okProduct := pathID(r, "productId")
	return domain.CartKey{ProductID: productID, UserID: userID, RestaurantID: restaurantID}, okRestaurant && okProduct
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	cart, err := h.Cart.Cart(r.Context(), principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, cart)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	var payload struct {
		ProductID    int64 `json:"product_id"`
		RestaurantID int64 `json:"restaurant_id"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "Invalid payload")
		return
	}
	if payload.ProductID <= 0 || payload.RestaurantID <= 0 {
		writeBadRequest(w, "Missing product_id or restaurant_id")
		return
	}

	line, err := h.Cart.AddOne(r.Context(), domain.CartKey{
		ProductID:    payload.ProductID,
		UserID:       principal.ID,
		RestaurantID: payload.RestaurantID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, line)
}

func (h *Handler) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	key, ok := cartKey(r, principal.ID)
	if !ok {
		writeBadRequest(w, "Invalid cart item")
		return
	}
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "Invalid payload")
		return
	}

	line, kept, err := h.Cart.SetQuantity(r.Context(), key, payload.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	if !kept {
		writeData(w, http.StatusOK, nil)
		return
	}
	writeData(w, http.StatusOK, line)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	key, ok := cartKey(r, principal.ID)
	if !ok {
		writeBadRequest(w, "Invalid cart item")
		return
	}
	if err := h.Cart.Remove(r.Context(), key); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

// clearCart empties the cart, or only the restaurants named by repeated
// restaurant_id query parameters.
func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	var restaurantIDs []int64
	for _, raw := range r.URL.Query()["restaurant_id"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeBadRequest(w, "Invalid restaurant_id")
			return
		}
		restaurantIDs = append(restaurantIDs, id)
	}

	removed, err := h.Cart.ClearAll(r.Context(), principal.ID, restaurantIDs...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]int{"removed": removed})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	var req service.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid payload")
		return
	}

	order, err := h.Cart.Checkout(r.Context(), principal.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, order)
}
