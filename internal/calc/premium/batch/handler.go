package batch

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type Handler struct {
	Eval   Evaluator
	Logger *zap.Logger
}

func (h *Handler) Bearing(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(r.Context(), input, h.Eval)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if h.Logger != nil {
		h.Logger.Info("batch evaluated",
			zap.Int("count", res.Count),
			zap.Int("failed", res.Failed),
			zap.Int("passed", res.Passed))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
