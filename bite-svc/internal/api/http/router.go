package httpapi

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter serves the API and, when files is set, the public object
// storage under prefix.
func NewRouter(handler *Handler, prefix string, files http.Handler) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	if files != nil {
		r.PathPrefix(prefix).Handler(files).Methods("GET")
	}
	return cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)
}

func StartServer(addr string, handler http.Handler) {
	log.Printf("Bite Service starting on %s", addr)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
