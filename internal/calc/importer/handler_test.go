package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringRow(t *testing.T) {
	s, err := parseStringRow([]string{"DP 5in", "0", "500", "0.127", "0.1086"})
	require.NoError(t, err)
	assert.Equal(t, "DP 5in", s.Name)
	assert.Equal(t, 500.0, s.LengthM)
	assert.Equal(t, 0.127, s.OuterDiameterM)

	_, err = parseStringRow([]string{"short", "0", "500"})
	assert.Error(t, err)

	_, err = parseStringRow([]string{"DP", "x", "500", "0.127", "0.1086"})
	assert.Error(t, err)
}

func TestParseAnnulusRow(t *testing.T) {
	a, err := parseAnnulusRow([]string{"Casing", "0", "600", "0.220", "0.244"})
	require.NoError(t, err)
	assert.Equal(t, 0.220, a.InnerDiameterM)
	assert.Equal(t, 0.244, a.OuterDiameterM)

	// OD column is optional.
	a, err = parseAnnulusRow([]string{"Open hole", "600", "900", "0.216"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, a.OuterDiameterM)
}

func TestParseRowsSkipsHeaderAndBadRows(t *testing.T) {
	rows := [][]string{
		{"name", "top_depth_m", "length_m", "outer_diameter_m", "inner_diameter_m"},
		{"DP", "0", "500", "0.127", "0.1086"},
		{"garbage", "a", "b", "c", "d"},
	}
	out := parseStringRows(rows)
	require.Len(t, out, 1)
	assert.Equal(t, "DP", out[0].Name)
}
