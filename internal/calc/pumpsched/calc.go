// Package pumpsched advances a displacement program stage by stage and
// tracks fluid fronts, returns and bottomhole pressure.
package pumpsched

import (
	"math"
	"sort"

	fluids "Wellcore/internal/calc/fluids"
	geometry "Wellcore/internal/calc/geometry"
)

const gravity = 9.80665

// State is the simulator phase after a stage has been consumed.
type State string

const (
	StateIdle            State = "idle"
	StateStaging         State = "staging"
	StatePumping         State = "pumping"
	StateReturnsTracking State = "returns_tracking"
	StateComplete        State = "complete" // terminal
)

type Stage struct {
	Name             string  `json:"name"`
	FluidDensityKgM3 float64 `json:"fluid_density_kg_m3"`
	VolumeM3         float64 `json:"volume_m3"`
	RateM3PerMin     float64 `json:"rate_m3_per_min"`
}

type Input struct {
	Stages         []Stage                       `json:"stages"`
	Strings        []geometry.DrillStringSection `json:"strings"`
	Annulus        []geometry.AnnulusSection     `json:"annulus"`
	Layers         []fluids.Layer                `json:"layers"`
	MudDensityKgM3 float64                       `json:"mud_density_kg_m3"`
	StrokeVolumeM3 float64                       `json:"stroke_volume_m3"`
}

// StageResult is the hydraulic state after one stage.
type StageResult struct {
	Name          string  `json:"name"`
	State         State   `json:"state"`
	Skipped       bool    `json:"skipped"`
	DurationMin   float64 `json:"duration_min"`
	Strokes       float64 `json:"strokes"`
	CumulativeM3  float64 `json:"cumulative_m3"`
	ReturnsM3     float64 `json:"returns_m3"`
	StringFrontM  float64 `json:"string_front_m"`
	AnnulusFrontM float64 `json:"annulus_front_m"`
	BottomholeKPa float64 `json:"bottomhole_kpa"`
}

type Result struct {
	FinalState       State         `json:"final_state"`
	TotalVolumeM3    float64       `json:"total_volume_m3"`
	TotalDurationMin float64       `json:"total_duration_min"`
	TotalStrokes     float64       `json:"total_strokes"`
	TotalReturnsM3   float64       `json:"total_returns_m3"`
	Timeline         []StageResult `json:"timeline"`
	NoData           bool          `json:"no_data"`
	Notes            string        `json:"notes"`
}

// front is one fluid batch inside the annulus, in arrival order. Later
// arrivals sit deeper because the annulus fills from the bottom.
type front struct {
	density float64
	volume  float64
}

// Simulate consumes every stage in order and always terminates after the
// last one. A stage with zero or negative rate is flagged and skipped with
// no hydraulic progress.
func Simulate(in Input) (Result, error) {
	if len(in.Stages) == 0 || (len(in.Strings) == 0 && len(in.Annulus) == 0) {
		return Result{FinalState: StateIdle, NoData: true, Notes: "No stages or geometry defined."}, nil
	}

	well := newWellModel(in)
	res := Result{Timeline: make([]StageResult, 0, len(in.Stages))}

	var pumped float64
	var arrivals []front
	state := StateStaging
	for _, st := range in.Stages {
		entry := StageResult{Name: st.Name}
		if st.RateM3PerMin <= 0 || st.VolumeM3 <= 0 {
			entry.Skipped = true
		} else {
			prevIntoAnnulus := math.Max(pumped-well.stringCapacity, 0)
			pumped += st.VolumeM3
			intoAnnulus := math.Max(pumped-well.stringCapacity, 0)
			if d := intoAnnulus - prevIntoAnnulus; d > 0 {
				arrivals = append(arrivals, front{density: st.FluidDensityKgM3, volume: d})
			}

			entry.DurationMin = st.VolumeM3 / st.RateM3PerMin
			if in.StrokeVolumeM3 > 0 {
				entry.Strokes = st.VolumeM3 / in.StrokeVolumeM3
			}
			res.TotalDurationMin += entry.DurationMin
			res.TotalStrokes += entry.Strokes

			state = StatePumping
			if intoAnnulus > 0 {
				state = StateReturnsTracking
			}
		}

		entry.State = state
		entry.CumulativeM3 = pumped
		entry.ReturnsM3 = math.Min(pumped, well.totalCapacity) // liquid-full well: displaced volume returns
		entry.StringFrontM = well.stringFront(pumped)
		entry.AnnulusFrontM = well.annulusFront(math.Max(pumped-well.stringCapacity, 0))
		entry.BottomholeKPa = well.bottomhole(in, arrivals)
		res.Timeline = append(res.Timeline, entry)
	}

	res.FinalState = StateComplete
	res.Timeline[len(res.Timeline)-1].State = StateComplete
	res.TotalVolumeM3 = pumped
	res.TotalReturnsM3 = res.Timeline[len(res.Timeline)-1].ReturnsM3
	res.Notes = "Incompressible plug displacement through string and annulus."
	return res, nil
}

// GenerateProgram builds the canonical two-stage displacement: fill the
// string, then displace the annulus to surface.
func GenerateProgram(strings []geometry.DrillStringSection, annulus []geometry.AnnulusSection, densityKgM3, rateM3PerMin float64) []Stage {
	well := newWellModel(Input{Strings: strings, Annulus: annulus})
	var out []Stage
	if well.stringCapacity > 0 {
		out = append(out, Stage{Name: "Displace string", FluidDensityKgM3: densityKgM3, VolumeM3: well.stringCapacity, RateM3PerMin: rateM3PerMin})
	}
	if well.annulusCapacity > 0 {
		out = append(out, Stage{Name: "Displace annulus", FluidDensityKgM3: densityKgM3, VolumeM3: well.annulusCapacity, RateM3PerMin: rateM3PerMin})
	}
	return out
}

// wellModel precomputes the capacity profile once per simulation. It is
// local to the call; nothing survives between invocations.
type wellModel struct {
	strings         []geometry.DrillStringSection // sorted by top depth
	slices          []geometry.VolumeSlice        // sorted by top depth
	stringCapacity  float64
	annulusCapacity float64
	totalCapacity   float64
	bitDepth        float64
}

func newWellModel(in Input) *wellModel {
	w := &wellModel{
		strings: append([]geometry.DrillStringSection(nil), in.Strings...),
		slices:  geometry.Slices(in.Strings, in.Annulus),
	}
	sort.SliceStable(w.strings, func(i, j int) bool { return w.strings[i].TopDepthM < w.strings[j].TopDepthM })
	sort.SliceStable(w.slices, func(i, j int) bool { return w.slices[i].TopDepthM < w.slices[j].TopDepthM })
	for _, s := range w.strings {
		w.stringCapacity += geometry.CircleArea(s.InnerDiameterM) * math.Max(s.LengthM, 0)
		w.bitDepth = math.Max(w.bitDepth, s.BottomDepthM())
	}
	for _, sl := range w.slices {
		w.annulusCapacity += sl.VolumeM3
		w.bitDepth = math.Max(w.bitDepth, sl.BottomDepthM)
	}
	w.totalCapacity = w.stringCapacity + w.annulusCapacity
	return w
}

// stringFront maps pumped volume to the depth of the new-fluid front inside
// the string, linear within each section.
func (w *wellModel) stringFront(pumped float64) float64 {
	remaining := math.Min(pumped, w.stringCapacity)
	depth := 0.0
	for _, s := range w.strings {
		area := geometry.CircleArea(s.InnerDiameterM)
		vol := area * math.Max(s.LengthM, 0)
		if vol <= 0 {
			continue
		}
		if remaining >= vol {
			remaining -= vol
			depth = s.BottomDepthM()
			continue
		}
		return s.TopDepthM + remaining/area
	}
	return depth
}

// annulusFront maps the volume that has entered the annulus to the depth of
// its leading edge, filling slices bottom-up. Returns the bit depth while
// the annulus holds none of the new fluid, and 0 once it is full to surface.
func (w *wellModel) annulusFront(intoAnnulus float64) float64 {
	if len(w.slices) == 0 {
		return 0
	}
	remaining := math.Min(intoAnnulus, w.annulusCapacity)
	depth := w.slices[len(w.slices)-1].BottomDepthM
	for i := len(w.slices) - 1; i >= 0; i-- {
		sl := w.slices[i]
		if sl.VolumeM3 <= 0 {
			continue
		}
		if remaining >= sl.VolumeM3 {
			remaining -= sl.VolumeM3
			depth = sl.TopDepthM
			continue
		}
		return sl.BottomDepthM - remaining/math.Max(sl.AreaM2, 1e-9)
	}
	return depth
}

// bottomhole integrates the annular hydrostatic column: pumped batches from
// the bottom up in reverse arrival order, the original fluid column above.
func (w *wellModel) bottomhole(in Input, arrivals []front) float64 {
	if len(w.slices) == 0 {
		return 0
	}

	batches := make([]front, 0, len(arrivals))
	for i := len(arrivals) - 1; i >= 0; i-- {
		batches = append(batches, arrivals[i])
	}

	var kpa float64
	bi := 0
	for i := len(w.slices) - 1; i >= 0; i-- {
		sl := w.slices[i]
		area := math.Max(sl.AreaM2, 1e-9)
		bottom := sl.BottomDepthM
		for bottom > sl.TopDepthM {
			var rho float64
			var height float64
			if bi < len(batches) {
				b := &batches[bi]
				rho = math.Max(b.density, 0)
				height = math.Min(b.volume/area, bottom-sl.TopDepthM)
				b.volume -= height * area
				if b.volume <= 1e-12 {
					bi++
				}
			} else {
				mid := (bottom + sl.TopDepthM) / 2
				rho = fluids.DensityAt(in.Layers, fluids.PlacementAnnulus, mid, in.MudDensityKgM3)
				height = bottom - sl.TopDepthM
			}
			kpa += rho * gravity * height / 1000
			bottom -= height
		}
	}
	return kpa
}
