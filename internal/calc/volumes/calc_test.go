package volumes

import (
	"testing"

	geometry "Wellcore/internal/calc/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTwoAnnulusSections(t *testing.T) {
	in := Input{
		Annulus: []geometry.AnnulusSection{
			{Name: "Surface casing", TopDepthM: 0, LengthM: 600, InnerDiameterM: 0.340},
			{Name: "Open hole", TopDepthM: 600, LengthM: 900, InnerDiameterM: 0.244},
		},
	}

	res, err := Calculate(in)
	require.NoError(t, err)
	assert.False(t, res.NoData)
	assert.InDelta(t, 96.64, res.OpenHoleM3, 0.05)

	// No pipe anywhere: with-pipe volume equals open hole.
	assert.InDelta(t, res.OpenHoleM3, res.AnnulusWithPipeM3, 1e-9)
}

func TestCalculateStringTotals(t *testing.T) {
	in := Input{
		Strings: []geometry.DrillStringSection{
			{Name: "DP", TopDepthM: 0, LengthM: 500, OuterDiameterM: 0.127, InnerDiameterM: 0.1086},
		},
		Annulus: []geometry.AnnulusSection{
			{Name: "Casing", TopDepthM: 0, LengthM: 500, InnerDiameterM: 0.220},
		},
	}

	res, err := Calculate(in)
	require.NoError(t, err)

	assert.InDelta(t, 4.632, res.DSCapacityM3, 0.01)
	assert.InDelta(t, 1.701, res.DSDisplacementM3, 0.01)
	assert.InDelta(t, res.DSCapacityM3+res.DSDisplacementM3, res.DSWetM3, 1e-12)
	assert.InDelta(t, 12.66, res.AnnulusWithPipeM3, 0.01)
	assert.LessOrEqual(t, res.AnnulusWithPipeM3, res.OpenHoleM3)
}

func TestCalculateZeroLengthSection(t *testing.T) {
	in := Input{
		Strings: []geometry.DrillStringSection{
			{Name: "Stub", TopDepthM: 0, LengthM: 0, OuterDiameterM: 0.127, InnerDiameterM: 0.1086},
		},
		Annulus: []geometry.AnnulusSection{
			{Name: "Casing", TopDepthM: 0, LengthM: 500, InnerDiameterM: 0.220},
		},
	}

	res, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.DSCapacityM3)
	assert.Equal(t, 0.0, res.DSDisplacementM3)
	for _, sl := range res.Slices {
		assert.Greater(t, sl.BottomDepthM, sl.TopDepthM)
	}
}

func TestCalculateNegativeValuesClamp(t *testing.T) {
	in := Input{
		Strings: []geometry.DrillStringSection{
			{Name: "Bad", TopDepthM: 0, LengthM: -100, OuterDiameterM: -0.1, InnerDiameterM: -0.2},
		},
		Annulus: []geometry.AnnulusSection{
			{Name: "Casing", TopDepthM: 0, LengthM: 500, InnerDiameterM: 0.220},
		},
	}

	res, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.DSCapacityM3)
	assert.Equal(t, 0.0, res.DSDisplacementM3)
	assert.GreaterOrEqual(t, res.AnnulusWithPipeM3, 0.0)
}

func TestCalculateNoData(t *testing.T) {
	res, err := Calculate(Input{})
	require.NoError(t, err)
	assert.True(t, res.NoData)
	assert.Zero(t, res.OpenHoleM3)
	assert.Empty(t, res.Slices)
}
