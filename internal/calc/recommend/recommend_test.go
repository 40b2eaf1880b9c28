package recommend

import (
	"testing"

	geometry "Wellcore/internal/calc/geometry"
	rheology "Wellcore/internal/calc/rheology"
	swabsurge "Wellcore/internal/calc/swabsurge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func baseSwab(poreKPa float64) swabsurge.Input {
	return swabsurge.Input{
		BitDepthM: 1500,
		StepM:     50,
		Strings: []geometry.DrillStringSection{
			{Name: "DP", TopDepthM: 0, LengthM: 1500, OuterDiameterM: 0.127, InnerDiameterM: 0.1086},
		},
		Annulus: []geometry.AnnulusSection{
			{Name: "Casing", TopDepthM: 0, LengthM: 600, InnerDiameterM: 0.220},
			{Name: "Open hole", TopDepthM: 600, LengthM: 900, InnerDiameterM: 0.216},
		},
		Mud: &rheology.MudProperties{DensityKgM3: 1200, PVmPaS: f(18), YPPa: f(9.5)},
		Window: swabsurge.PressureWindow{
			Points:        []swabsurge.PressureWindowPoint{{DepthM: 1500, PoreKPa: poreKPa, FracKPa: 30000}},
			PoreMarginKPa: 100,
		},
	}
}

func TestTripSpeedUnconstrained(t *testing.T) {
	// Generous margin: the requested ceiling is already safe.
	res, err := TripSpeed(TripSpeedInput{Base: baseSwab(10000), MaxSpeedMS: 0.8})
	require.NoError(t, err)
	assert.True(t, res.Limited)
	assert.Equal(t, 0.8, res.SpeedMS)
}

func TestTripSpeedBisection(t *testing.T) {
	// Tight margin: static head is ~17652 kPa, pore+margin 17500. Only a
	// slow trip keeps the swab under ~152 kPa.
	res, err := TripSpeed(TripSpeedInput{Base: baseSwab(17400), MaxSpeedMS: 2.0})
	require.NoError(t, err)
	assert.False(t, res.Limited)
	assert.Greater(t, res.SpeedMS, 0.0)
	assert.Less(t, res.SpeedMS, 2.0)

	// The recommended speed must itself be risk-free.
	in := baseSwab(17400)
	in.HoistSpeedMS = res.SpeedMS
	check, err := swabsurge.Calculate(in)
	require.NoError(t, err)
	assert.False(t, check.UnderbalanceRisk)
}

func TestTripSpeedRequiresWindow(t *testing.T) {
	in := TripSpeedInput{Base: baseSwab(17000)}
	in.Base.Window.Points = nil
	_, err := TripSpeed(in)
	assert.Error(t, err)
}

func TestTripSpeedNoWellData(t *testing.T) {
	in := TripSpeedInput{Base: swabsurge.Input{Window: swabsurge.PressureWindow{
		Points: []swabsurge.PressureWindowPoint{{DepthM: 100, PoreKPa: 1000}},
	}}}
	_, err := TripSpeed(in)
	assert.Error(t, err)
}
