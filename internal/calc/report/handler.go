package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	swabsurge "Wellcore/internal/calc/swabsurge"
	volumes "Wellcore/internal/calc/volumes"

	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Project string          `json:"project"`
	Author  string          `json:"author"`
	Title   string          `json:"title"`
	Volumes volumes.Input   `json:"volumes"`
	Swab    swabsurge.Input `json:"swab"`
	Notes   string          `json:"notes"`
}

type Handler struct{}

// Generate renders a well-control summary PDF: volume totals and the swab
// estimate for the given geometry and trip parameters.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Well Control Summary"
	}

	vols, err := volumes.Calculate(input.Volumes)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	swab, err := swabsurge.Calculate(input.Swab)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Well: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Engineer: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Volume Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	if vols.NoData {
		pdf.Cell(0, 6, "No geometry defined.")
		pdf.Ln(6)
	} else {
		for _, line := range []string{
			fmt.Sprintf("Drill string capacity: %.2f m3", vols.DSCapacityM3),
			fmt.Sprintf("Steel displacement: %.2f m3", vols.DSDisplacementM3),
			fmt.Sprintf("Wet displacement: %.2f m3", vols.DSWetM3),
			fmt.Sprintf("Open hole: %.2f m3", vols.OpenHoleM3),
			fmt.Sprintf("Annulus with pipe: %.2f m3", vols.AnnulusWithPipeM3),
		} {
			pdf.Cell(0, 6, line)
			pdf.Ln(6)
		}
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("%s Estimate", titleOf(swab.Mode)))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	if swab.NoData {
		pdf.Cell(0, 6, "Insufficient data for a trip estimate.")
		pdf.Ln(6)
	} else {
		pdf.Cell(0, 6, fmt.Sprintf("Total: %.1f kPa", swab.TotalKPa))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Recommended SABP: %.1f kPa", swab.RecommendedSABPKPa))
		pdf.Ln(6)
		if swab.NonLaminar {
			pdf.Cell(0, 6, "Warning: non-laminar annular flow in at least one interval.")
			pdf.Ln(6)
		}
		if swab.UnderbalanceRisk {
			pdf.Cell(0, 6, "Warning: swab exceeds the pore-pressure margin.")
			pdf.Ln(6)
		}
	}
	pdf.Ln(6)
	pdf.MultiCell(0, 6, input.Notes, "", "L", false)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"well-report.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

func titleOf(m swabsurge.Mode) string {
	if m == swabsurge.ModeSurge {
		return "Surge"
	}
	return "Swab"
}
