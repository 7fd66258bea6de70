package profile

import (
	"encoding/json"
	"net/http"

	"Bearing/internal/auth"
)

// Profile is the session view returned to the signed-in engineer.
type Profile struct {
	ID    int    `json:"id"`
	Login string `json:"login"`
}

type ProfileHandler struct{}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	login, _ := auth.UserLogin(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Profile{ID: userID, Login: login})
}
