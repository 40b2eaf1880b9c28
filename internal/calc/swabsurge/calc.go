// Package swabsurge estimates tripping-induced pressure changes by walking
// the annulus in depth increments and accumulating frictional losses.
package swabsurge

import (
	"math"

	fluids "Wellcore/internal/calc/fluids"
	geometry "Wellcore/internal/calc/geometry"
	rheology "Wellcore/internal/calc/rheology"
)

const (
	gravity = 9.80665

	// epsilon floors every denominator so degenerate geometry yields a
	// large finite loss instead of NaN/Inf.
	epsilon = 1e-9

	// laminarReLimit is laminar-inclusive: Re of exactly 2000 stays laminar.
	laminarReLimit = 2000.0

	defaultStepM = 50.0
)

type Mode string

const (
	ModeSwab  Mode = "swab"  // tripping out, pressure reduction
	ModeSurge Mode = "surge" // tripping in, pressure increase
)

type Input struct {
	BitDepthM          float64                       `json:"bit_depth_m"`
	StepM              float64                       `json:"step_m"`
	HoistSpeedMS       float64                       `json:"hoist_speed_ms"` // negative = running in (surge)
	EccentricityFactor float64                       `json:"eccentricity_factor"`
	Strings            []geometry.DrillStringSection `json:"strings"`
	Annulus            []geometry.AnnulusSection     `json:"annulus"`
	Layers             []fluids.Layer                `json:"layers"`
	Mud                *rheology.MudProperties       `json:"mud,omitempty"`
	Window             PressureWindow                `json:"window"`
}

// Sample is one point of the cumulative pressure profile.
type Sample struct {
	DepthM        float64 `json:"depth_m"`
	CumulativeKPa float64 `json:"cumulative_kpa"`
}

type Result struct {
	Mode                Mode              `json:"mode"`
	TotalKPa            float64           `json:"total_kpa"`
	RecommendedSABPKPa  float64           `json:"recommended_sabp_kpa"`
	NonLaminar          bool              `json:"non_laminar"`
	UnderbalanceRisk    bool              `json:"underbalance_risk"`
	FractureRisk        bool              `json:"fracture_risk"`
	StaticBottomholeKPa float64           `json:"static_bottomhole_kpa"`
	Rheology            rheology.Resolved `json:"rheology"`
	Profile             []Sample          `json:"profile"`
	NoData              bool              `json:"no_data"`
	Notes               string            `json:"notes"`
}

// Calculate walks the annulus from surface to the bit and integrates the
// frictional pressure change induced by pipe movement. The profile is
// rebuilt in full on every call; nothing is cached.
func Calculate(in Input) (Result, error) {
	if in.BitDepthM <= 0 || len(in.Annulus) == 0 {
		return Result{NoData: true, Notes: "No geometry to evaluate."}, nil
	}
	if fallbackDensity(in) <= 0 && len(in.Layers) == 0 {
		return Result{NoData: true, Notes: "No fluid column defined."}, nil
	}

	rh := rheology.Resolve(in.Mud)
	res := Result{Mode: mode(in.HoistSpeedMS), Rheology: rh}

	res.Profile = make([]Sample, 0, int(in.BitDepthM/stepOf(in))+1)
	res.TotalKPa, res.NonLaminar = WalkProfile(in, rh, func(s Sample) bool {
		res.Profile = append(res.Profile, s)
		return true
	})
	res.StaticBottomholeKPa = staticBottomhole(in)

	res.RecommendedSABPKPa, res.UnderbalanceRisk, res.FractureRisk = assess(in, res)
	res.Notes = "Bingham-plastic annular friction, laminar/Blasius branches."
	return res, nil
}

// WalkProfile drives fn with cumulative (depth, pressure) samples from the
// surface down to the bit; iteration stops early when fn returns false. The
// walk is restartable: each call starts from the surface with no carried
// state. Returns the accumulated total and whether any increment left the
// laminar branch.
func WalkProfile(in Input, rh rheology.Resolved, fn func(Sample) bool) (total float64, nonLaminar bool) {
	step := stepOf(in)
	ecc := in.EccentricityFactor
	if ecc <= 0 {
		ecc = 1
	}
	speed := math.Abs(in.HoistSpeedMS)
	fallback := fallbackDensity(in)

	for depth := 0.0; depth < in.BitDepthM; {
		seg := math.Min(step, in.BitDepthM-depth)
		mid := depth + seg/2

		holeID, pipeOD := geometry.DiametersAt(in.Strings, in.Annulus, mid)
		rho := fluids.DensityAt(in.Layers, fluids.PlacementAnnulus, mid, fallback)

		dP, turbulent := incrementKPa(holeID, pipeOD, rho, speed, ecc, rh, seg)
		total += dP
		nonLaminar = nonLaminar || turbulent

		depth += seg
		if !fn(Sample{DepthM: depth, CumulativeKPa: total}) {
			return total, nonLaminar
		}
	}
	return total, nonLaminar
}

// incrementKPa is the per-increment friction loss. Hydraulic diameter,
// shear rate and Reynolds number are all floored at epsilon.
func incrementKPa(holeID, pipeOD, rho, pipeSpeed, ecc float64, rh rheology.Resolved, seg float64) (float64, bool) {
	if holeID <= 0 || pipeSpeed <= 0 || rho <= 0 {
		return 0, false
	}
	annArea := math.Max(geometry.AnnularArea(holeID, pipeOD), epsilon)
	velocity := pipeSpeed * geometry.CircleArea(pipeOD) / annArea * ecc
	if velocity <= 0 {
		return 0, false
	}

	dh := math.Max(holeID-pipeOD, epsilon)
	shear := math.Max(12*velocity/dh, epsilon)
	viscosity := math.Max(rh.PVmPaS/1000+rh.YPPa/shear, epsilon)

	re := math.Max(rho*velocity*dh/viscosity, epsilon)
	f, turbulent := frictionFactor(re)
	return f * rho * velocity * velocity / (2 * dh) * seg / 1000, turbulent
}

// frictionFactor selects the correlation branch for a Reynolds number:
// laminar 64/Re up to and including 2000, Blasius above.
func frictionFactor(re float64) (float64, bool) {
	re = math.Max(re, epsilon)
	if re > laminarReLimit {
		return 0.3164 / math.Pow(re, 0.25), true
	}
	return 64 / re, false
}

// staticBottomhole integrates the hydrostatic head of the annular column.
func staticBottomhole(in Input) float64 {
	step := stepOf(in)
	fallback := fallbackDensity(in)
	var kpa float64
	for depth := 0.0; depth < in.BitDepthM; {
		seg := math.Min(step, in.BitDepthM-depth)
		rho := fluids.DensityAt(in.Layers, fluids.PlacementAnnulus, depth+seg/2, fallback)
		kpa += rho * gravity * seg / 1000
		depth += seg
	}
	return kpa
}

// assess turns the accumulated total into a recommended surface-applied
// backpressure and risk flags against the pressure window. Without window
// points the margin alone is used and no risk is flagged.
func assess(in Input, res Result) (sabp float64, underbalance, fracture bool) {
	switch res.Mode {
	case ModeSwab:
		effective := res.StaticBottomholeKPa - res.TotalKPa
		pore, ok := in.Window.PoreAt(in.BitDepthM)
		if !ok {
			return math.Max(res.TotalKPa-in.Window.PoreMarginKPa, 0), false, false
		}
		floor := pore + in.Window.PoreMarginKPa
		return math.Max(floor-effective, 0), effective < floor, false
	default:
		effective := res.StaticBottomholeKPa + res.TotalKPa
		frac, ok := in.Window.FracAt(in.BitDepthM)
		if !ok {
			return 0, false, false
		}
		return 0, false, effective > frac-in.Window.FracMarginKPa
	}
}

func mode(hoistSpeed float64) Mode {
	if hoistSpeed < 0 {
		return ModeSurge
	}
	return ModeSwab
}

func stepOf(in Input) float64 {
	if in.StepM <= 0 {
		return defaultStepM
	}
	return in.StepM
}

func fallbackDensity(in Input) float64 {
	if in.Mud != nil {
		return math.Max(in.Mud.DensityKgM3, 0)
	}
	return 0
}
