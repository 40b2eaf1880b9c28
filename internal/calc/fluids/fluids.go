// Package fluids models the static fluid column as depth-ordered layers in
// the string or the annulus.
package fluids

import (
	"fmt"
	"math"

	rheology "Wellcore/internal/calc/rheology"
)

// Placement is a closed two-case tag: a layer sits either inside the drill
// string or in the annulus.
type Placement string

const (
	PlacementString  Placement = "string"
	PlacementAnnulus Placement = "annulus"
)

type Layer struct {
	ID          string                  `json:"id,omitempty"`
	Placement   Placement               `json:"placement"`
	TopMDm      float64                 `json:"top_md_m"`
	BottomMDm   float64                 `json:"bottom_md_m"`
	DensityKgM3 float64                 `json:"density_kg_m3"`
	Mud         *rheology.MudProperties `json:"mud,omitempty"`
	Label       string                  `json:"label,omitempty"`
}

// LayerAt returns the first layer of the given placement covering the depth.
// Overlapping layers resolve take-first in input order, matching the
// containment tie-break used for geometry sections.
func LayerAt(layers []Layer, p Placement, depth float64) (Layer, bool) {
	for _, l := range layers {
		if l.Placement == p && l.TopMDm <= depth && l.BottomMDm >= depth {
			return l, true
		}
	}
	return Layer{}, false
}

// DensityAt resolves the fluid density at a depth, falling back to the given
// default when no layer covers it. Negative densities clamp to 0.
func DensityAt(layers []Layer, p Placement, depth, fallback float64) float64 {
	if l, ok := LayerAt(layers, p, depth); ok {
		return math.Max(l.DensityKgM3, 0)
	}
	return math.Max(fallback, 0)
}

// Validate warns on inverted intervals and same-placement overlaps. Layer
// order is a caller convention, never enforced here.
func Validate(layers []Layer) []string {
	var warns []string
	for i, l := range layers {
		if l.BottomMDm < l.TopMDm {
			warns = append(warns, fmt.Sprintf("layer %d (%s): bottom above top", i, l.Label))
		}
		for j := i + 1; j < len(layers); j++ {
			o := layers[j]
			if l.Placement != o.Placement {
				continue
			}
			if math.Min(l.BottomMDm, o.BottomMDm)-math.Max(l.TopMDm, o.TopMDm) > 0 {
				warns = append(warns, fmt.Sprintf("layers %d and %d overlap in the %s", i, j, l.Placement))
			}
		}
	}
	return warns
}
