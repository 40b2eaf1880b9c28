// Package geometry models the wellbore as nested drill-string and annulus
// sections and decomposes it into non-overlapping depth slices.
package geometry

import (
	"fmt"
	"math"
	"sort"
)

type DrillStringSection struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	TopDepthM      float64 `json:"top_depth_m"`
	LengthM        float64 `json:"length_m"`
	OuterDiameterM float64 `json:"outer_diameter_m"`
	InnerDiameterM float64 `json:"inner_diameter_m"`
}

func (s DrillStringSection) BottomDepthM() float64 {
	return s.TopDepthM + math.Max(s.LengthM, 0)
}

// AnnulusSection describes the open-hole/casing envelope, not the pipe.
// InnerDiameterM is the hole or casing ID; OuterDiameterM is informational.
type AnnulusSection struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	TopDepthM      float64 `json:"top_depth_m"`
	LengthM        float64 `json:"length_m"`
	InnerDiameterM float64 `json:"inner_diameter_m"`
	OuterDiameterM float64 `json:"outer_diameter_m"`
}

func (s AnnulusSection) BottomDepthM() float64 {
	return s.TopDepthM + math.Max(s.LengthM, 0)
}

// VolumeSlice is a transient depth interval [Top, Bottom) with its net
// annular flow area. Recomputed from scratch on every call, never stored.
type VolumeSlice struct {
	TopDepthM    float64 `json:"top_depth_m"`
	BottomDepthM float64 `json:"bottom_depth_m"`
	AreaM2       float64 `json:"area_m2"`
	VolumeM3     float64 `json:"volume_m3"`
}

// BoundaryDepths merges the top and bottom depths of all sections into a
// strictly increasing sequence. Values are compared exactly; fewer than two
// distinct boundaries yields nil.
func BoundaryDepths(strings []DrillStringSection, annulus []AnnulusSection) []float64 {
	seen := make(map[float64]struct{}, 2*(len(strings)+len(annulus)))
	for _, s := range strings {
		seen[s.TopDepthM] = struct{}{}
		seen[s.BottomDepthM()] = struct{}{}
	}
	for _, a := range annulus {
		seen[a.TopDepthM] = struct{}{}
		seen[a.BottomDepthM()] = struct{}{}
	}
	if len(seen) < 2 {
		return nil
	}
	out := make([]float64, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Float64s(out)
	return out
}

// Slices decomposes the wellbore into annular volume slices. A candidate
// slice is kept only when some annulus section fully contains it; the first
// containing section in input order wins. A containing string section
// contributes its OD, otherwise the annulus is treated as open (OD 0).
func Slices(strings []DrillStringSection, annulus []AnnulusSection) []VolumeSlice {
	bounds := BoundaryDepths(strings, annulus)
	var out []VolumeSlice
	for i := 0; i+1 < len(bounds); i++ {
		top, bottom := bounds[i], bounds[i+1]
		if bottom <= top {
			continue
		}
		ann, ok := containingAnnulus(annulus, top, bottom)
		if !ok {
			continue
		}
		od := 0.0
		if str, ok := containingString(strings, top, bottom); ok {
			od = math.Max(str.OuterDiameterM, 0)
		}
		area := AnnularArea(ann.InnerDiameterM, od)
		out = append(out, VolumeSlice{
			TopDepthM:    top,
			BottomDepthM: bottom,
			AreaM2:       area,
			VolumeM3:     area * (bottom - top),
		})
	}
	return out
}

// AnnularArea is the net flow area between a hole of diameter id and a pipe
// of diameter od, clamped to zero when the pipe fills or exceeds the hole.
func AnnularArea(id, od float64) float64 {
	id = math.Max(id, 0)
	od = math.Max(od, 0)
	area := math.Pi * (id*id - od*od) / 4
	return math.Max(area, 0)
}

// CircleArea is the bore area of a diameter, negative values clamped to 0.
func CircleArea(d float64) float64 {
	d = math.Max(d, 0)
	return math.Pi * d * d / 4
}

// DiametersAt reports the hole ID and pipe OD at a measured depth, both 0
// when no section covers it. First matching section in input order wins.
func DiametersAt(strings []DrillStringSection, annulus []AnnulusSection, depth float64) (holeID, pipeOD float64) {
	for _, a := range annulus {
		if a.TopDepthM <= depth && a.BottomDepthM() >= depth {
			holeID = math.Max(a.InnerDiameterM, 0)
			break
		}
	}
	for _, s := range strings {
		if s.TopDepthM <= depth && s.BottomDepthM() >= depth {
			pipeOD = math.Max(s.OuterDiameterM, 0)
			break
		}
	}
	return holeID, pipeOD
}

func containingAnnulus(annulus []AnnulusSection, top, bottom float64) (AnnulusSection, bool) {
	for _, a := range annulus {
		if a.TopDepthM <= top && a.BottomDepthM() >= bottom {
			return a, true
		}
	}
	return AnnulusSection{}, false
}

func containingString(strings []DrillStringSection, top, bottom float64) (DrillStringSection, bool) {
	for _, s := range strings {
		if s.TopDepthM <= top && s.BottomDepthM() >= bottom {
			return s, true
		}
	}
	return DrillStringSection{}, false
}

// Warning is an advisory geometry defect. Validation runs outside the
// computation path; the calculators themselves never reject geometry.
type Warning struct {
	Section string `json:"section"`
	Message string `json:"message"`
}

// Validate reports overlapping sections, depth intervals not covered by any
// annulus section (those slices are dropped from volume totals), and
// inverted diameters.
func Validate(strings []DrillStringSection, annulus []AnnulusSection) []Warning {
	var warns []Warning
	for _, s := range strings {
		if s.LengthM < 0 {
			warns = append(warns, Warning{s.Name, "negative length"})
		}
		if s.InnerDiameterM > s.OuterDiameterM {
			warns = append(warns, Warning{s.Name, "inner diameter exceeds outer diameter"})
		}
	}
	for _, a := range annulus {
		if a.LengthM < 0 {
			warns = append(warns, Warning{a.Name, "negative length"})
		}
	}
	for i := 0; i < len(annulus); i++ {
		for j := i + 1; j < len(annulus); j++ {
			if overlaps(annulus[i].TopDepthM, annulus[i].BottomDepthM(), annulus[j].TopDepthM, annulus[j].BottomDepthM()) {
				warns = append(warns, Warning{annulus[i].Name, fmt.Sprintf("overlaps annulus section %q", annulus[j].Name)})
			}
		}
	}
	for i := 0; i < len(strings); i++ {
		for j := i + 1; j < len(strings); j++ {
			if overlaps(strings[i].TopDepthM, strings[i].BottomDepthM(), strings[j].TopDepthM, strings[j].BottomDepthM()) {
				warns = append(warns, Warning{strings[i].Name, fmt.Sprintf("overlaps string section %q", strings[j].Name)})
			}
		}
	}
	bounds := BoundaryDepths(strings, annulus)
	for i := 0; i+1 < len(bounds); i++ {
		top, bottom := bounds[i], bounds[i+1]
		if bottom <= top {
			continue
		}
		if _, ok := containingAnnulus(annulus, top, bottom); !ok {
			warns = append(warns, Warning{
				Section: "annulus",
				Message: fmt.Sprintf("no annulus section covers %.1f-%.1f m; interval excluded from totals", top, bottom),
			})
		}
	}
	for _, sl := range Slices(strings, annulus) {
		if str, ok := containingString(strings, sl.TopDepthM, sl.BottomDepthM); ok {
			if ann, ok2 := containingAnnulus(annulus, sl.TopDepthM, sl.BottomDepthM); ok2 && str.OuterDiameterM > ann.InnerDiameterM {
				warns = append(warns, Warning{str.Name, "pipe OD exceeds hole ID"})
			}
		}
	}
	return warns
}

func overlaps(aTop, aBottom, bTop, bBottom float64) bool {
	return math.Min(aBottom, bBottom)-math.Max(aTop, bTop) > 0
}
