package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// SetupRoutes registers the API endpoints on router.
func SetupRoutes(router *mux.Router, handlers *Handlers) {
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/partitions", handlers.Partition).Methods("POST")
	api.HandleFunc("/algorithms", handlers.ListAlgorithms).Methods("GET")
	api.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
}

// NewHandler builds the complete HTTP handler: routes, logging, panic
// recovery and CORS.
func NewHandler(cfg *ServerConfig) http.Handler {
	router := mux.NewRouter()
	SetupRoutes(router, NewHandlers(cfg))

	router.Use(LoggingMiddleware)
	router.Use(RecoveryMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(router)
}
