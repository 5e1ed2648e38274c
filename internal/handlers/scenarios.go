package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jwaldner/optionsim/internal/logger"
	"github.com/jwaldner/optionsim/internal/models"
	"github.com/jwaldner/optionsim/internal/scenario"
)

func (h *PricingHandler) ListScenariosHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ScenarioListResponse{
		Success:   true,
		Count:     len(list),
		Scenarios: list,
	})
}

func (h *PricingHandler) GetScenarioHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sc, err := h.store.Get(id)
	if err != nil {
		writeError(w, scenarioStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, models.ScenarioResponse{Success: true, Scenario: sc})
}

func (h *PricingHandler) DeleteScenarioHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.store.Delete(id); err != nil {
		writeError(w, scenarioStatus(err), err)
		return
	}
	logger.Info.Printf("🗑️ Deleted scenario %s", id)
	writeJSON(w, http.StatusOK, models.ResetResponse{Success: true, Cleared: 1})
}

// ResetHandler clears every stored scenario
func (h *PricingHandler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.Clear()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	logger.Info.Printf("🔄 Reset cleared %d scenarios", n)
	writeJSON(w, http.StatusOK, models.ResetResponse{Success: true, Cleared: n})
}

func scenarioStatus(err error) int {
	if errors.Is(err, scenario.ErrUnknownScenario) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
