package httpapi

import (
	"fmt"
	"net/http"

	"scroll-and-bite/bite-svc/internal/draft"
)

func (h *Handler) getHomeFeed(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	page, err := h.Feeds.Home(r.Context(), principal.ID, queryInt64(r, "restaurant_id"), queryBool(r, "reset"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, page)
}

func (h *Handler) getOwnPosts(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	page, err := h.Feeds.OwnPosts(r.Context(), principal.ID, queryBool(r, "reset"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, page)
}

// createPost takes a multipart form: "data" holds the title and one
// product id per video, and the "videos" files come in the same order.
func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	if !isMultipart(r) {
		writeBadRequest(w, "Expected multipart form")
		return
	}

	var payload struct {
		Title      string  `json:"title"`
		ProductIDs []int64 `json:"product_ids"`
	}
	if err := decodePayload(r, &payload); err != nil {
		writeBadRequest(w, "Invalid payload")
		return
	}
	videos, err := formFiles(r, "videos", videoTypes)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	defer closeAll(videos)

	if len(payload.ProductIDs) > len(videos) {
		writeBadRequest(w, fmt.Sprintf("Got %d product ids for %d videos", len(payload.ProductIDs), len(videos)))
		return
	}

	d := draft.PostDraft{Title: payload.Title}
	for _, video := range videos {
		d = d.WithItem(draft.PostItemDraft{Video: video})
	}
	for i, productID := range payload.ProductIDs {
		if d, err = d.WithProduct(i, productID); err != nil {
			writeBadRequest(w, err.Error())
			return
		}
	}

	post, err := h.Posts.Create(r.Context(), principal.ID, d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, post)
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid post id")
		return
	}
	post, err := h.Posts.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, post)
}

func (h *Handler) getLike(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid post id")
		return
	}
	liked, err := h.Posts.IsLiked(r.Context(), id, principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"liked": liked})
}

func (h *Handler) likePost(w http.ResponseWriter, r *http.Request) {
	h.setLike(w, r, true)
}

func (h *Handler) unlikePost(w http.ResponseWriter, r *http.Request) {
	h.setLike(w, r, false)
}

func (h *Handler) setLike(w http.ResponseWriter, r *http.Request, liked bool) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid post id")
		return
	}

	var err error
	if liked {
		err = h.Posts.Like(r.Context(), id, principal.ID)
	} else {
		err = h.Posts.Unlike(r.Context(), id, principal.ID)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"liked": liked})
}
