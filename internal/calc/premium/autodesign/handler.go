package autodesign

import (
	"encoding/json"
	"errors"
	"net/http"

	"Bearing/internal/calc/bearing"
	"Bearing/internal/calc/premium/batch"
)

type Handler struct {
	Eval batch.Evaluator
}

func (h *Handler) Bearing(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Layers(r.Context(), input, h.Eval)
	switch {
	case errors.Is(err, ErrNoFeasibleDesign):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		http.Error(w, err.Error(), bearing.StatusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
