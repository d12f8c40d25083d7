package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/draft"
	"scroll-and-bite/bite-svc/internal/realtime"
	"scroll-and-bite/bite-svc/internal/service"
	"scroll-and-bite/bite-svc/internal/storage"

	"github.com/gorilla/mux"
)

const maxUploadSize = 64 << 20

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Msg     string      `json:"msg,omitempty"`
}

// ValidationError bodies also list the offending fields.
type validationEnvelope struct {
	envelope
	Fields []string `json:"fields"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("Error handling request: %v", err)
	}

	var validation *draft.ValidationError
	if errors.As(err, &validation) {
		writeJSON(w, status, validationEnvelope{
			envelope: envelope{Msg: err.Error()},
			Fields:   validation.Fields,
		})
		return
	}
	writeJSON(w, status, envelope{Msg: err.Error()})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, envelope{Msg: msg})
}

func statusFor(err error) int {
	var validation *draft.ValidationError
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, draft.ErrWrongType),
		errors.Is(err, draft.ErrWrongStep),
		errors.Is(err, draft.ErrNoOwner),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, realtime.ErrInvalidFilter),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidSignUp),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrProductUnavailable),
		errors.Is(err, service.ErrMissingAddress),
		errors.Is(err, storage.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, storage.ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotCreator),
		errors.Is(err, service.ErrNotOwner),
		errors.Is(err, storage.ErrDenied):
		return http.StatusForbidden
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, service.ErrNoRestaurant),
		errors.Is(err, service.ErrNoWizard),
		errors.Is(err, service.ErrOrderNotOnBoard):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrConflict),
		errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, storage.ErrTransport):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id, err == nil && id > 0
}

func queryUint(r *http.Request, name string, defaultValue uint64) uint64 {
	n, err := strconv.ParseUint(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}

func queryInt64(r *http.Request, name string) int64 {
	n, _ := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	return n
}

func queryBool(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
