package swabsurge

import "sort"

// PressureWindowPoint bounds the safe pressure range at one depth.
type PressureWindowPoint struct {
	DepthM  float64 `json:"depth_m"`
	PoreKPa float64 `json:"pore_kpa"`
	FracKPa float64 `json:"frac_kpa"`
}

// PressureWindow is the depth-indexed pore/frac envelope with safety
// margins. Consumed read-only for risk flagging.
type PressureWindow struct {
	Points        []PressureWindowPoint `json:"points"`
	PoreMarginKPa float64               `json:"pore_margin_kpa"`
	FracMarginKPa float64               `json:"frac_margin_kpa"`
}

// PoreAt interpolates pore pressure at a depth, clamped to the end points.
// ok is false when the window has no points.
func (w PressureWindow) PoreAt(depth float64) (float64, bool) {
	return w.interp(depth, func(p PressureWindowPoint) float64 { return p.PoreKPa })
}

// FracAt interpolates fracture pressure at a depth, clamped to the end points.
func (w PressureWindow) FracAt(depth float64) (float64, bool) {
	return w.interp(depth, func(p PressureWindowPoint) float64 { return p.FracKPa })
}

func (w PressureWindow) interp(depth float64, val func(PressureWindowPoint) float64) (float64, bool) {
	if len(w.Points) == 0 {
		return 0, false
	}
	pts := make([]PressureWindowPoint, len(w.Points))
	copy(pts, w.Points)
	sort.Slice(pts, func(i, j int) bool { return pts[i].DepthM < pts[j].DepthM })

	if depth <= pts[0].DepthM {
		return val(pts[0]), true
	}
	last := pts[len(pts)-1]
	if depth >= last.DepthM {
		return val(last), true
	}
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		if depth < a.DepthM || depth > b.DepthM {
			continue
		}
		span := b.DepthM - a.DepthM
		if span <= 0 {
			return val(a), true
		}
		t := (depth - a.DepthM) / span
		return val(a) + t*(val(b)-val(a)), true
	}
	return val(last), true
}
