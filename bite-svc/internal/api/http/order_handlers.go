package httpapi

import (
	"net/http"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/service"

	"github.com/samber/lo"
)

type boardOrder struct {
	domain.Order
	Summary string `json:"summary"`
}

func (h *Handler) getPurchases(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	orders, err := h.Orders.ForUser(r.Context(), principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, orders)
}

func (h *Handler) getPurchase(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid purchase id")
		return
	}
	order, err := h.Orders.Get(r.Context(), principal.ID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, order)
}

func (h *Handler) getPurchaseQRCode(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid purchase id")
		return
	}
	qrCode, err := h.Orders.PickupCode(r.Context(), principal.ID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func (h *Handler) getBoard(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	board, err := h.Orders.LoadBoard(r.Context(), principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, lo.Map(board.Orders(), func(order domain.Order, _ int) boardOrder {
		return boardOrder{Order: order, Summary: service.SummaryLabel(order, board.RestaurantID())}
	}))
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid purchase id")
		return
	}
	var payload struct {
		Status domain.Status `json:"status"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "Invalid payload")
		return
	}

	order, err := h.Orders.UpdateStatusForOwner(r.Context(), principal.ID, id, payload.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, order)
}
