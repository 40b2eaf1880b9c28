// Package rheology selects effective drilling-fluid rheology from lab
// measurements with a fixed fallback order.
package rheology

import "math"

// Source identifies which measurement set the resolver used, for UI badging.
type Source string

const (
	SourceLab        Source = "lab"
	SourceViscometer Source = "viscometer"
	SourceDefault    Source = "default"
)

// Defaults for an unweighted water-base mud when no readings exist at all.
const (
	DefaultTheta600 = 30.0
	DefaultTheta300 = 20.0
)

type MudProperties struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	DensityKgM3 float64  `json:"density_kg_m3"`
	PVmPaS      *float64 `json:"pv_mpa_s,omitempty"`
	YPPa        *float64 `json:"yp_pa,omitempty"`
	Theta600    *float64 `json:"theta600,omitempty"`
	Theta300    *float64 `json:"theta300,omitempty"`
	IsActive    bool     `json:"is_active"`
}

// Resolved is the effective Bingham-plastic rheology pair.
type Resolved struct {
	PVmPaS float64 `json:"pv_mpa_s"`
	YPPa   float64 `json:"yp_pa"`
	Source Source  `json:"source"`
}

// Resolve picks rheology in fixed order: lab PV and YP when both are
// present, then the two-point viscometer readings, then defaults. It never
// fails; absent data always falls through to something readable.
func Resolve(mud *MudProperties) Resolved {
	if mud != nil && mud.PVmPaS != nil && mud.YPPa != nil {
		return Resolved{
			PVmPaS: math.Max(*mud.PVmPaS, 0),
			YPPa:   math.Max(*mud.YPPa, 0),
			Source: SourceLab,
		}
	}

	t600, t300 := DefaultTheta600, DefaultTheta300
	source := SourceDefault
	if mud != nil && (mud.Theta600 != nil || mud.Theta300 != nil) {
		if mud.Theta600 != nil {
			t600 = *mud.Theta600
		}
		if mud.Theta300 != nil {
			t300 = *mud.Theta300
		}
		source = SourceViscometer
	}

	// Standard two-point conversion: PV = θ600−θ300 (mPa·s),
	// YP = θ300−PV (lbf/100ft²) scaled to Pa.
	pv := math.Max(t600-t300, 0)
	yp := math.Max(t300-pv, 0) * 0.4788
	return Resolved{PVmPaS: pv, YPPa: yp, Source: source}
}

// ActiveMud returns the first active record in input order, nil when none.
func ActiveMud(muds []MudProperties) *MudProperties {
	for i := range muds {
		if muds[i].IsActive {
			return &muds[i]
		}
	}
	return nil
}
