package volumes

import (
	"math"

	geometry "Wellcore/internal/calc/geometry"
)

type Input struct {
	Strings []geometry.DrillStringSection `json:"strings"`
	Annulus []geometry.AnnulusSection     `json:"annulus"`
}

type Result struct {
	DSCapacityM3      float64                `json:"ds_capacity_m3"`
	DSDisplacementM3  float64                `json:"ds_displacement_m3"`
	DSWetM3           float64                `json:"ds_wet_m3"`
	OpenHoleM3        float64                `json:"open_hole_m3"`
	AnnulusWithPipeM3 float64                `json:"annulus_with_pipe_m3"`
	Slices            []geometry.VolumeSlice `json:"slices"`
	Warnings          []geometry.Warning     `json:"warnings,omitempty"`
	NoData            bool                   `json:"no_data"`
	Notes             string                 `json:"notes"`
}

// Calculate sums section capacities and displacements and the slice-by-slice
// annular volume. Malformed geometry degrades toward zero; an empty well
// returns an explicit no-data result rather than an error.
func Calculate(in Input) (Result, error) {
	if len(in.Strings) == 0 && len(in.Annulus) == 0 {
		return Result{NoData: true, Notes: "No geometry defined."}, nil
	}

	res := Result{Notes: "Volumes from piecewise annular geometry."}
	for _, s := range in.Strings {
		l := math.Max(s.LengthM, 0)
		res.DSCapacityM3 += geometry.CircleArea(s.InnerDiameterM) * l
		res.DSDisplacementM3 += math.Max(geometry.CircleArea(s.OuterDiameterM)-geometry.CircleArea(s.InnerDiameterM), 0) * l
	}
	res.DSWetM3 = res.DSCapacityM3 + res.DSDisplacementM3

	for _, a := range in.Annulus {
		res.OpenHoleM3 += geometry.CircleArea(a.InnerDiameterM) * math.Max(a.LengthM, 0)
	}

	res.Slices = geometry.Slices(in.Strings, in.Annulus)
	for _, sl := range res.Slices {
		res.AnnulusWithPipeM3 += sl.VolumeM3
	}

	res.Warnings = geometry.Validate(in.Strings, in.Annulus)
	return res, nil
}
