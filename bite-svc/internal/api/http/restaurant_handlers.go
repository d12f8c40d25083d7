package httpapi

import (
	"net/http"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/draft"

	"github.com/gorilla/mux"
)

type wizardView struct {
	Step     draft.Step               `json:"step"`
	StepName string                   `json:"step_name"`
	Profile  domain.RestaurantProfile `json:"profile"`
	Types    []string                 `json:"types"`
	Options  []string                 `json:"options"`
}

func newWizardView(w draft.Wizard, owner string) wizardView {
	return wizardView{
		Step:     w.Step(),
		StepName: w.Step().String(),
		Profile:  w.Draft().Profile(owner),
		Types:    w.Types(),
		Options:  draft.RestaurantTypes,
	}
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Restaurants.Categories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, categories)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid restaurant id")
		return
	}
	restaurant, err := h.Restaurants.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, restaurant)
}

func (h *Handler) getOwnRestaurant(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	restaurant, err := h.Restaurants.Current(r.Context(), principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, restaurant)
}

// saveRestaurant accepts the profile as JSON, or as the "data" field of a
// multipart form carrying an optional "banner" image.
func (h *Handler) saveRestaurant(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	var profile domain.RestaurantProfile
	if err := decodePayload(r, &profile); err != nil {
		writeBadRequest(w, "Invalid payload")
		return
	}
	banner, err := formFile(r, "banner", imageTypes)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if banner != nil {
		defer banner.Close()
	}

	saved, err := h.Restaurants.Save(r.Context(), principal.ID, draft.FromProfile(profile), banner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, saved)
}

func (h *Handler) verifyRestaurant(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	verification, err := h.Restaurants.Verify(r.Context(), principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, verification)
}

func (h *Handler) startWizard(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	wizard := h.Restaurants.StartWizard(principal.ID)
	writeData(w, http.StatusCreated, newWizardView(wizard, principal.ID))
}

func (h *Handler) getWizard(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	wizard, err := h.Restaurants.Wizard(principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, newWizardView(wizard, principal.ID))
}

// advanceWizard runs step on the caller's wizard and answers with the
// resulting state.
func (h *Handler) advanceWizard(w http.ResponseWriter, r *http.Request, step func(draft.Wizard) (draft.Wizard, error)) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	wizard, err := h.Restaurants.AdvanceWizard(principal.ID, step)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, newWizardView(wizard, principal.ID))
}

func (h *Handler) updateWizardField(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "Invalid payload")
		return
	}
	h.advanceWizard(w, r, func(wizard draft.Wizard) (draft.Wizard, error) {
		return wizard.Update(draft.Field(payload.Field), payload.Value)
	})
}

func (h *Handler) setWizardDay(w http.ResponseWriter, r *http.Request) {
	day, err := domain.ParseWeekday(mux.Vars(r)["day"])
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var hours domain.DayHours
	if err := decodeJSON(r, &hours); err != nil {
		writeBadRequest(w, "Invalid payload")
		return
	}
	h.advanceWizard(w, r, func(wizard draft.Wizard) (draft.Wizard, error) {
		return wizard.SetDay(day, hours)
	})
}

func (h *Handler) toggleWizardType(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Type string `json:"type"`
	}
	if err := decodeJSON(r, &payload); err != nil || payload.Type == "" {
		writeBadRequest(w, "Invalid payload")
		return
	}
	h.advanceWizard(w, r, func(wizard draft.Wizard) (draft.Wizard, error) {
		return wizard.ToggleType(payload.Type)
	})
}

func (h *Handler) nextWizardStep(w http.ResponseWriter, r *http.Request) {
	h.advanceWizard(w, r, func(wizard draft.Wizard) (draft.Wizard, error) {
		return wizard.Next()
	})
}

func (h *Handler) previousWizardStep(w http.ResponseWriter, r *http.Request) {
	h.advanceWizard(w, r, func(wizard draft.Wizard) (draft.Wizard, error) {
		return wizard.Back(), nil
	})
}

func (h *Handler) commitWizard(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	restaurant, err := h.Restaurants.CommitWizard(r.Context(), principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, restaurant)
}
