package recommend

import (
	"fmt"

	swabsurge "Wellcore/internal/calc/swabsurge"
)

type TripSpeedInput struct {
	Base       swabsurge.Input `json:"base"`
	MaxSpeedMS float64         `json:"max_speed_ms"`
}

type TripSpeedResult struct {
	SpeedMS    float64 `json:"speed_ms"`
	TotalKPa   float64 `json:"total_kpa"`
	NonLaminar bool    `json:"non_laminar"`
	Limited    bool    `json:"limited"` // true when the max speed itself is safe
	Notes      string  `json:"notes"`
}

// TripSpeed finds the fastest hoisting speed whose swab stays clear of the
// pore-pressure margin, by bisection on the monotone speed-swab relation.
func TripSpeed(in TripSpeedInput) (TripSpeedResult, error) {
	if in.MaxSpeedMS <= 0 {
		in.MaxSpeedMS = 1.0
	}
	if len(in.Base.Window.Points) == 0 {
		return TripSpeedResult{}, fmt.Errorf("pressure window required")
	}

	probe := func(speed float64) (swabsurge.Result, error) {
		base := in.Base
		base.HoistSpeedMS = speed
		return swabsurge.Calculate(base)
	}

	top, err := probe(in.MaxSpeedMS)
	if err != nil {
		return TripSpeedResult{}, err
	}
	if top.NoData {
		return TripSpeedResult{}, fmt.Errorf("insufficient well data")
	}
	if !top.UnderbalanceRisk {
		return TripSpeedResult{
			SpeedMS:    in.MaxSpeedMS,
			TotalKPa:   top.TotalKPa,
			NonLaminar: top.NonLaminar,
			Limited:    true,
			Notes:      "Maximum requested speed is within the swab margin.",
		}, nil
	}

	lo, hi := 0.0, in.MaxSpeedMS
	var best swabsurge.Result
	for i := 0; i < 48 && hi-lo > 1e-6; i++ {
		mid := (lo + hi) / 2
		r, err := probe(mid)
		if err != nil {
			return TripSpeedResult{}, err
		}
		if r.UnderbalanceRisk {
			hi = mid
		} else {
			lo = mid
			best = r
		}
	}

	return TripSpeedResult{
		SpeedMS:    lo,
		TotalKPa:   best.TotalKPa,
		NonLaminar: best.NonLaminar,
		Notes:      "Fastest speed holding swab within the pore margin.",
	}, nil
}
