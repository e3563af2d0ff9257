package handlers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseCoordinatesValid(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"100 64 -200", []string{"100", "64", "-200"}},
		{"100,64,-200", []string{"100", "64", "-200"}},
		{"100, 64, -200", []string{"100", "64", "-200"}},
		{"~ ~ ~", []string{"~", "~", "~"}},
		{"~ ~+10 ~-5", []string{"~", "~+10", "~-5"}},
		{"~10 ~ ~", []string{"~10", "~", "~"}},
		{"0.5 64.25 -0.5", []string{"0.5", "64.25", "-0.5"}},
		{"~-0.5 ~ 12", []string{"~-0.5", "~", "12"}},
		{"  1   2   3  ", []string{"1", "2", "3"}},
	}
	for _, tt := range tests {
		got, err := ParseCoordinates(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseCoordinatesWrongCount(t *testing.T) {
	for _, in := range []string{"", "1", "1 2", "1 2 3 4", ",,,"} {
		_, err := ParseCoordinates(in)
		require.Error(t, err, "input %q", in)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, msgCoordCount, valErr.Message, "input %q", in)
	}
}

func TestParseCoordinatesBadToken(t *testing.T) {
	for _, in := range []string{"a b c", "1 2 z", "~x ~ ~", "1 2 3a", "-- 2 3", "~~ 1 2"} {
		_, err := ParseCoordinates(in)
		require.Error(t, err, "input %q", in)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, msgCoordFormat, valErr.Message, "input %q", in)
	}
}

func TestPropertyParseCoordinatesAcceptsFloats(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Float64Range(-30000, 30000).Draw(t, "x")
		y := rapid.Float64Range(-64, 320).Draw(t, "y")
		z := rapid.Float64Range(-30000, 30000).Draw(t, "z")
		in := fmt.Sprintf("%v %v %v", x, y, z)
		got, err := ParseCoordinates(in)
		if err != nil {
			t.Fatalf("rejected %q: %v", in, err)
		}
		if len(got) != 3 {
			t.Fatalf("got %d tokens for %q", len(got), in)
		}
	})
}
