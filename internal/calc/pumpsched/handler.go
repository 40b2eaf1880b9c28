package pumpsched

import (
	"encoding/json"
	"net/http"

	geometry "Wellcore/internal/calc/geometry"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Simulate(input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

type ProgramRequest struct {
	Strings      []geometry.DrillStringSection `json:"strings"`
	Annulus      []geometry.AnnulusSection     `json:"annulus"`
	DensityKgM3  float64                       `json:"density_kg_m3"`
	RateM3PerMin float64                       `json:"rate_m3_per_min"`
}

// Program returns the generated two-stage displacement for the geometry.
func (h *Handler) Program(w http.ResponseWriter, r *http.Request) {
	var req ProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	stages := GenerateProgram(req.Strings, req.Annulus, req.DensityKgM3, req.RateM3PerMin)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stages)
}
