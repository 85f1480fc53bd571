package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	cases := map[string]string{
		"flood.jpg":             "1700000000123-flood.jpg",
		"../../etc/passwd":      "1700000000123-passwd",
		`C:\Users\me\photo.png`: "1700000000123-photo.png",
		"":                      "1700000000123-image",
	}
	for in, want := range cases {
		assert.Equal(t, want, uploadName(in, now), in)
	}
}

func TestParseCoordinate(t *testing.T) {
	v, ok := parseCoordinate(" 12.9 ")
	assert.True(t, ok)
	assert.InDelta(t, 12.9, v, 1e-9)

	v, ok = parseCoordinate("-77.6")
	assert.True(t, ok)
	assert.InDelta(t, -77.6, v, 1e-9)

	_, ok = parseCoordinate("")
	assert.False(t, ok)
	_, ok = parseCoordinate("north")
	assert.False(t, ok)

	for _, raw := range []string{"NaN", "Inf", "+Inf", "-inf"} {
		_, ok = parseCoordinate(raw)
		assert.False(t, ok, raw)
	}
}

func TestSaveUploadNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	now := time.UnixMilli(1700000000123)

	first, err := saveUpload(strings.NewReader("first"), "flood.jpg", dir, now)
	require.NoError(t, err)
	assert.Equal(t, "1700000000123-flood.jpg", first)

	second, err := saveUpload(strings.NewReader("second"), "flood.jpg", dir, now)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Regexp(t, `^1700000000123-[0-9a-f]{8}-flood\.jpg$`, second)

	got, err := os.ReadFile(filepath.Join(dir, first))
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))
	got, err = os.ReadFile(filepath.Join(dir, second))
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}
