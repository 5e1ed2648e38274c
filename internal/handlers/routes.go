package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jwaldner/optionsim/internal/logger"
)

// NewRouter registers every API route on a fresh router
func NewRouter(h *PricingHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", h.HealthHandler).Methods("GET")

	// Pricing endpoints
	api.HandleFunc("/american/price", h.AmericanPriceHandler).Methods("POST")
	api.HandleFunc("/american/theta", h.ThetaHandler).Methods("POST")
	api.HandleFunc("/european/price", h.EuropeanPriceHandler).Methods("POST")
	api.HandleFunc("/covered-call/simulate", h.CoveredCallHandler).Methods("POST")

	// Stored scenarios
	api.HandleFunc("/scenarios", h.ListScenariosHandler).Methods("GET")
	api.HandleFunc("/scenarios", h.ResetHandler).Methods("DELETE")
	api.HandleFunc("/scenarios/{id}", h.GetScenarioHandler).Methods("GET")
	api.HandleFunc("/scenarios/{id}", h.DeleteScenarioHandler).Methods("DELETE")

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Verbose.Printf("%s %s took %v", r.Method, r.URL.Path, time.Since(start))
	})
}
