package importer

import (
	"encoding/json"
	"fmt"
	"net/http"

	geometry "Wellcore/internal/calc/geometry"
	volumes "Wellcore/internal/calc/volumes"

	"github.com/xuri/excelize/v2"
)

type Handler struct{}

type GeometryImportResult struct {
	StringCount  int                           `json:"string_count"`
	AnnulusCount int                           `json:"annulus_count"`
	Strings      []geometry.DrillStringSection `json:"strings"`
	Annulus      []geometry.AnnulusSection     `json:"annulus"`
	Volumes      volumes.Result                `json:"volumes"`
}

// Geometry parses drill-string and annulus sections from an uploaded
// workbook ("strings" and "annulus" sheets, header row skipped) and returns
// the computed volume summary. Unparseable rows are skipped.
func (h *Handler) Geometry(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	strings := parseStringRows(sheetRows(f, "strings", 0))
	annulus := parseAnnulusRows(sheetRows(f, "annulus", 1))
	if len(strings) == 0 && len(annulus) == 0 {
		http.Error(w, "No sections found", http.StatusBadRequest)
		return
	}

	vols, err := volumes.Calculate(volumes.Input{Strings: strings, Annulus: annulus})
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GeometryImportResult{
		StringCount:  len(strings),
		AnnulusCount: len(annulus),
		Strings:      strings,
		Annulus:      annulus,
		Volumes:      vols,
	})
}

// sheetRows prefers the named sheet and falls back to sheet order.
func sheetRows(f *excelize.File, name string, index int) [][]string {
	sheet := name
	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		sheet = f.GetSheetName(index)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil
	}
	return rows
}

func parseStringRows(rows [][]string) []geometry.DrillStringSection {
	var out []geometry.DrillStringSection
	for i := 1; i < len(rows); i++ {
		s, err := parseStringRow(rows[i])
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}

func parseStringRow(row []string) (geometry.DrillStringSection, error) {
	// expected: name, top_depth_m, length_m, outer_diameter_m, inner_diameter_m
	if len(row) < 5 {
		return geometry.DrillStringSection{}, fmt.Errorf("bad row")
	}
	top, err := toFloat(row[1])
	if err != nil {
		return geometry.DrillStringSection{}, err
	}
	length, err := toFloat(row[2])
	if err != nil {
		return geometry.DrillStringSection{}, err
	}
	od, err := toFloat(row[3])
	if err != nil {
		return geometry.DrillStringSection{}, err
	}
	id, err := toFloat(row[4])
	if err != nil {
		return geometry.DrillStringSection{}, err
	}
	return geometry.DrillStringSection{
		Name:           row[0],
		TopDepthM:      top,
		LengthM:        length,
		OuterDiameterM: od,
		InnerDiameterM: id,
	}, nil
}

func parseAnnulusRows(rows [][]string) []geometry.AnnulusSection {
	var out []geometry.AnnulusSection
	for i := 1; i < len(rows); i++ {
		a, err := parseAnnulusRow(rows[i])
		if err != nil {
			continue
		}
		out = append(out, a)
	}
	return out
}

func parseAnnulusRow(row []string) (geometry.AnnulusSection, error) {
	// expected: name, top_depth_m, length_m, inner_diameter_m, outer_diameter_m(optional)
	if len(row) < 4 {
		return geometry.AnnulusSection{}, fmt.Errorf("bad row")
	}
	top, err := toFloat(row[1])
	if err != nil {
		return geometry.AnnulusSection{}, err
	}
	length, err := toFloat(row[2])
	if err != nil {
		return geometry.AnnulusSection{}, err
	}
	id, err := toFloat(row[3])
	if err != nil {
		return geometry.AnnulusSection{}, err
	}
	od := 0.0
	if len(row) > 4 && row[4] != "" {
		od, _ = toFloat(row[4])
	}
	return geometry.AnnulusSection{
		Name:           row[0],
		TopDepthM:      top,
		LengthM:        length,
		InnerDiameterM: id,
		OuterDiameterM: od,
	}, nil
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(s, "%f", &v)
	return v, err
}
