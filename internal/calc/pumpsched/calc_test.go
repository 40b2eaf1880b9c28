package pumpsched

import (
	"testing"

	geometry "Wellcore/internal/calc/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGeometry() ([]geometry.DrillStringSection, []geometry.AnnulusSection) {
	strings := []geometry.DrillStringSection{
		{Name: "DP", TopDepthM: 0, LengthM: 1500, OuterDiameterM: 0.127, InnerDiameterM: 0.1086},
	}
	annulus := []geometry.AnnulusSection{
		{Name: "Casing", TopDepthM: 0, LengthM: 600, InnerDiameterM: 0.220},
		{Name: "Open hole", TopDepthM: 600, LengthM: 900, InnerDiameterM: 0.216},
	}
	return strings, annulus
}

func TestSimulateStringDisplacement(t *testing.T) {
	strings, annulus := testGeometry()
	in := Input{
		Strings:        strings,
		Annulus:        annulus,
		MudDensityKgM3: 1200,
		StrokeVolumeM3: 0.01,
		Stages: []Stage{
			{Name: "Half string", FluidDensityKgM3: 1200, VolumeM3: 6.947, RateM3PerMin: 1.0},
		},
	}

	res, err := Simulate(in)
	require.NoError(t, err)
	require.Len(t, res.Timeline, 1)

	st := res.Timeline[0]
	assert.InDelta(t, 750, st.StringFrontM, 1.0)
	assert.InDelta(t, 6.947, st.DurationMin, 1e-9)
	assert.InDelta(t, 694.7, st.Strokes, 1e-6)
	assert.Equal(t, StateComplete, st.State) // last stage is terminal
	assert.Equal(t, StateComplete, res.FinalState)
	assert.InDelta(t, 1500, st.AnnulusFrontM, 1e-9) // nothing in the annulus yet
}

func TestSimulateReturnsTracking(t *testing.T) {
	strings, annulus := testGeometry()
	in := Input{
		Strings:        strings,
		Annulus:        annulus,
		MudDensityKgM3: 1200,
		Stages: []Stage{
			{Name: "Fill string", FluidDensityKgM3: 1450, VolumeM3: 13.5, RateM3PerMin: 1.2},
			{Name: "Displace open hole", FluidDensityKgM3: 1450, VolumeM3: 21.97, RateM3PerMin: 1.2},
		},
	}

	res, err := Simulate(in)
	require.NoError(t, err)
	require.Len(t, res.Timeline, 2)

	assert.Equal(t, StatePumping, res.Timeline[0].State)
	assert.Equal(t, StateComplete, res.Timeline[1].State)

	// The second stage pushed the new fluid up to the casing shoe.
	assert.InDelta(t, 600, res.Timeline[1].AnnulusFrontM, 2.0)
	assert.InDelta(t, 1500, res.Timeline[1].StringFrontM, 1e-6)

	// Denser displacement fluid raises bottomhole pressure.
	assert.Greater(t, res.Timeline[1].BottomholeKPa, res.Timeline[0].BottomholeKPa)
}

func TestSimulateUniformDensityBottomhole(t *testing.T) {
	strings, annulus := testGeometry()
	in := Input{
		Strings:        strings,
		Annulus:        annulus,
		MudDensityKgM3: 1200,
		Stages: []Stage{
			{Name: "Circulate", FluidDensityKgM3: 1200, VolumeM3: 20, RateM3PerMin: 1.0},
		},
	}

	res, err := Simulate(in)
	require.NoError(t, err)

	// Same density in and out: hydrostatic column of 1200 kg/m3 over 1500 m.
	assert.InDelta(t, 1200*9.80665*1500/1000, res.Timeline[0].BottomholeKPa, 1.0)
}

func TestSimulateSkipsBadStage(t *testing.T) {
	strings, annulus := testGeometry()
	in := Input{
		Strings: strings,
		Annulus: annulus,
		Stages: []Stage{
			{Name: "Broken pump", FluidDensityKgM3: 1450, VolumeM3: 5, RateM3PerMin: 0},
			{Name: "Resume", FluidDensityKgM3: 1450, VolumeM3: 5, RateM3PerMin: 1.0},
		},
	}

	res, err := Simulate(in)
	require.NoError(t, err)
	require.Len(t, res.Timeline, 2)

	assert.True(t, res.Timeline[0].Skipped)
	assert.Equal(t, 0.0, res.Timeline[0].CumulativeM3)
	assert.Equal(t, 5.0, res.Timeline[1].CumulativeM3)
	assert.Equal(t, StateComplete, res.FinalState)
}

func TestSimulateNoData(t *testing.T) {
	res, err := Simulate(Input{})
	require.NoError(t, err)
	assert.True(t, res.NoData)
	assert.Equal(t, StateIdle, res.FinalState)

	res, err = Simulate(Input{Stages: []Stage{{Name: "s", VolumeM3: 1, RateM3PerMin: 1}}})
	require.NoError(t, err)
	assert.True(t, res.NoData)
}

func TestGenerateProgram(t *testing.T) {
	strings, annulus := testGeometry()

	stages := GenerateProgram(strings, annulus, 1450, 1.2)
	require.Len(t, stages, 2)
	assert.Equal(t, "Displace string", stages[0].Name)
	assert.InDelta(t, 13.89, stages[0].VolumeM3, 0.05)
	assert.Equal(t, "Displace annulus", stages[1].Name)
	assert.InDelta(t, 36.78, stages[1].VolumeM3, 0.1)

	// Generated program runs to completion through the simulator.
	res, err := Simulate(Input{Stages: stages, Strings: strings, Annulus: annulus, MudDensityKgM3: 1200})
	require.NoError(t, err)
	assert.Equal(t, StateComplete, res.FinalState)
	assert.InDelta(t, 0, res.Timeline[1].AnnulusFrontM, 1e-6) // full to surface
}
