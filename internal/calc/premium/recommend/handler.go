package recommend

import (
	"encoding/json"
	"net/http"

	"Bearing/internal/calc/bearing"
)

type Handler struct{}

func (h *Handler) Shim(w http.ResponseWriter, r *http.Request) {
	var input bearing.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := ShimThickness(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
