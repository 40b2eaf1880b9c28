package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundaryDepths(t *testing.T) {
	strings := []DrillStringSection{
		{Name: "DP", TopDepthM: 0, LengthM: 500, OuterDiameterM: 0.127, InnerDiameterM: 0.1086},
	}
	annulus := []AnnulusSection{
		{Name: "Casing", TopDepthM: 0, LengthM: 600, InnerDiameterM: 0.220},
		{Name: "Open hole", TopDepthM: 600, LengthM: 900, InnerDiameterM: 0.216},
	}

	got := BoundaryDepths(strings, annulus)
	assert.Equal(t, []float64{0, 500, 600, 1500}, got)

	// Idempotent: same inputs, same sorted list.
	assert.Equal(t, got, BoundaryDepths(strings, annulus))
}

func TestBoundaryDepthsDegenerate(t *testing.T) {
	assert.Nil(t, BoundaryDepths(nil, nil))

	// A single zero-length section has one distinct boundary, not two.
	assert.Nil(t, BoundaryDepths(nil, []AnnulusSection{{TopDepthM: 100, LengthM: 0, InnerDiameterM: 0.2}}))
}

func TestSlicesSingleContainment(t *testing.T) {
	strings := []DrillStringSection{
		{Name: "DP", TopDepthM: 0, LengthM: 500, OuterDiameterM: 0.127, InnerDiameterM: 0.1086},
	}
	annulus := []AnnulusSection{
		{Name: "Casing", TopDepthM: 0, LengthM: 500, InnerDiameterM: 0.220},
	}

	slices := Slices(strings, annulus)
	require.Len(t, slices, 1)
	assert.InDelta(t, 0.02533, slices[0].AreaM2, 1e-4)
	assert.InDelta(t, 12.66, slices[0].VolumeM3, 0.01)
}

func TestSlicesGapDropped(t *testing.T) {
	// Annulus covers 0-600 only; the string runs to 900. The 600-900
	// interval has no containing annulus section and produces no slice.
	strings := []DrillStringSection{
		{Name: "DP", TopDepthM: 0, LengthM: 900, OuterDiameterM: 0.127, InnerDiameterM: 0.1086},
	}
	annulus := []AnnulusSection{
		{Name: "Casing", TopDepthM: 0, LengthM: 600, InnerDiameterM: 0.220},
	}

	slices := Slices(strings, annulus)
	require.Len(t, slices, 1)
	assert.Equal(t, 0.0, slices[0].TopDepthM)
	assert.Equal(t, 600.0, slices[0].BottomDepthM)
}

func TestSlicesOpenAnnulus(t *testing.T) {
	annulus := []AnnulusSection{
		{Name: "Open hole", TopDepthM: 0, LengthM: 600, InnerDiameterM: 0.340},
	}

	slices := Slices(nil, annulus)
	require.Len(t, slices, 1)
	assert.InDelta(t, 54.46, slices[0].VolumeM3, 0.05)
}

func TestAnnularAreaClamped(t *testing.T) {
	// Pipe larger than hole clamps to zero rather than going negative.
	assert.Equal(t, 0.0, AnnularArea(0.127, 0.220))
	assert.Equal(t, 0.0, AnnularArea(-1, -1))
}

func TestDiametersAt(t *testing.T) {
	strings := []DrillStringSection{
		{Name: "DP", TopDepthM: 0, LengthM: 500, OuterDiameterM: 0.127, InnerDiameterM: 0.1086},
	}
	annulus := []AnnulusSection{
		{Name: "Casing", TopDepthM: 0, LengthM: 600, InnerDiameterM: 0.220},
	}

	id, od := DiametersAt(strings, annulus, 300)
	assert.Equal(t, 0.220, id)
	assert.Equal(t, 0.127, od)

	id, od = DiametersAt(strings, annulus, 550)
	assert.Equal(t, 0.220, id)
	assert.Equal(t, 0.0, od)

	id, od = DiametersAt(strings, annulus, 2000)
	assert.Equal(t, 0.0, id)
	assert.Equal(t, 0.0, od)
}

func TestValidate(t *testing.T) {
	strings := []DrillStringSection{
		{Name: "DP", TopDepthM: 0, LengthM: 900, OuterDiameterM: 0.127, InnerDiameterM: 0.1086},
		{Name: "HWDP", TopDepthM: 800, LengthM: 200, OuterDiameterM: 0.127, InnerDiameterM: 0.0762},
	}
	annulus := []AnnulusSection{
		{Name: "Casing", TopDepthM: 0, LengthM: 600, InnerDiameterM: 0.220},
	}

	warns := Validate(strings, annulus)
	require.NotEmpty(t, warns)

	var overlap, gap bool
	for _, w := range warns {
		if w.Section == "DP" {
			overlap = true
		}
		if w.Section == "annulus" {
			gap = true
		}
	}
	assert.True(t, overlap, "expected overlapping string warning")
	assert.True(t, gap, "expected uncovered interval warning")
}

func TestValidateCleanGeometry(t *testing.T) {
	strings := []DrillStringSection{
		{Name: "DP", TopDepthM: 0, LengthM: 500, OuterDiameterM: 0.127, InnerDiameterM: 0.1086},
	}
	annulus := []AnnulusSection{
		{Name: "Casing", TopDepthM: 0, LengthM: 500, InnerDiameterM: 0.220},
	}
	assert.Empty(t, Validate(strings, annulus))
}
