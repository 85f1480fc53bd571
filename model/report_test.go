package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinate(t *testing.T) {
	v, err := ParseCoordinate("-77.6")
	require.NoError(t, err)
	assert.InDelta(t, -77.6, v, 1e-9)

	for _, raw := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "infinity", "north", ""} {
		_, err := ParseCoordinate(raw)
		assert.Error(t, err, raw)
	}
}

func TestSetFieldRejectsNonFiniteCoordinates(t *testing.T) {
	var r Report
	assert.Error(t, r.SetField(ColLatitude, "NaN"))
	assert.Error(t, r.SetField(ColLongitude, "-Inf"))
	require.NoError(t, r.SetField(ColLatitude, "12.9"))
	assert.InDelta(t, 12.9, r.Latitude, 1e-9)
}

func TestRowFollowsColumns(t *testing.T) {
	r := Report{ID: 1, ImageFilename: "a.jpg", Latitude: 12.9, Longitude: 77.6, Location: "MG Road", Description: "Flood", Status: StatusNotResolved}
	assert.Equal(t, []string{"1", "a.jpg", "12.9", "77.6", "MG Road", "Flood", "not_resolved"}, r.Row(VariantBasic.Columns()))
}
