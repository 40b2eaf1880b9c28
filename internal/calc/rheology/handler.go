package rheology

import (
	"encoding/json"
	"net/http"
)

type Handler struct{}

// Resolve reports the effective rheology and its source so the client can
// badge where the numbers came from.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	var mud *MudProperties
	if err := json.NewDecoder(r.Body).Decode(&mud); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Resolve(mud))
}
