package httpapi

import (
	"net/http"

	"scroll-and-bite/bite-svc/internal/draft"
)

const defaultPageSize = 20

type productPayload struct {
	Name        string   `json:"product_name"`
	Price       *float64 `json:"price"`
	CategoryID  int64    `json:"category_id"`
	Ingredients string   `json:"ingredients"`
	Allergens   string   `json:"allergens"`
	IsActive    *bool    `json:"is_active"`
}

func (p productPayload) draft(id int64) draft.ProductDraft {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	return draft.ProductDraft{
		ID:          id,
		Name:        p.Name,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		Ingredients: p.Ingredients,
		Allergens:   p.Allergens,
		IsActive:    active,
	}
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid product id")
		return
	}
	product, err := h.Products.Public(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, product)
}

func (h *Handler) getRestaurantProducts(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid restaurant id")
		return
	}
	products, err := h.Products.List(r.Context(), restaurantID, queryUint(r, "offset", 0), queryUint(r, "limit", defaultPageSize))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, products)
}

func (h *Handler) getOwnProducts(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	page, err := h.Feeds.Products(r.Context(), principal.ID, queryBool(r, "reset"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, page)
}

func (h *Handler) getOwnProduct(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid product id")
		return
	}
	product, err := h.Products.Get(r.Context(), principal.ID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, product)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	h.writeProduct(w, r, 0)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid product id")
		return
	}
	h.writeProduct(w, r, id)
}

// writeProduct creates the product when id is zero and updates it
// otherwise. The image comes from the optional "image" form file.
func (h *Handler) writeProduct(w http.ResponseWriter, r *http.Request, id int64) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	var payload productPayload
	if err := decodePayload(r, &payload); err != nil {
		writeBadRequest(w, "Invalid payload")
		return
	}
	image, err := formFile(r, "image", imageTypes)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if image != nil {
		defer image.Close()
	}

	d := payload.draft(id)
	if image != nil {
		d.Image = image
	}

	if id == 0 {
		product, err := h.Products.Create(r.Context(), principal.ID, d)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusCreated, product)
		return
	}

	product, err := h.Products.Update(r.Context(), principal.ID, d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, product)
}
