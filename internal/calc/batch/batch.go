package batch

import (
	"fmt"

	swabsurge "Wellcore/internal/calc/swabsurge"
)

// SwabSweepInput evaluates one swab estimate per hoisting speed, for
// building trip-speed tables.
type SwabSweepInput struct {
	SpeedsMS []float64       `json:"speeds_ms"`
	Base     swabsurge.Input `json:"base"`
}

type SwabSweepItem struct {
	SpeedMS float64          `json:"speed_ms"`
	Result  swabsurge.Result `json:"result"`
}

type SwabSweepResult struct {
	Items []SwabSweepItem `json:"items"`
}

func CalculateSwabSweep(in SwabSweepInput) (SwabSweepResult, error) {
	if len(in.SpeedsMS) == 0 {
		return SwabSweepResult{}, fmt.Errorf("no speeds")
	}
	out := SwabSweepResult{Items: make([]SwabSweepItem, 0, len(in.SpeedsMS))}
	for _, speed := range in.SpeedsMS {
		base := in.Base
		base.HoistSpeedMS = speed
		res, err := swabsurge.Calculate(base)
		if err != nil {
			return SwabSweepResult{}, err
		}
		out.Items = append(out.Items, SwabSweepItem{SpeedMS: speed, Result: res})
	}
	return out, nil
}
