package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundingMode(t *testing.T) {
	tests := []struct {
		in      string
		want    RoundingMode
		wantErr bool
	}{
		{in: "", want: RoundHalfUp},
		{in: "half-up", want: RoundHalfUp},
		{in: "HALF_UP", want: RoundHalfUp},
		{in: "half-even", want: RoundHalfEven},
		{in: " half_even ", want: RoundHalfEven},
		{in: "bankers", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRoundingMode(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownRounding)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundingMode_Round(t *testing.T) {
	tests := []struct {
		in       float64
		halfUp   float64
		halfEven float64
	}{
		{in: 1.825, halfUp: 1.83, halfEven: 1.82},
		{in: 1.835, halfUp: 1.84, halfEven: 1.84},
		{in: 0.416, halfUp: 0.42, halfEven: 0.42},
		{in: 1.6425, halfUp: 1.64, halfEven: 1.64},
		{in: 2.675, halfUp: 2.68, halfEven: 2.68},
		{in: 0.125, halfUp: 0.13, halfEven: 0.12},
		{in: 0, halfUp: 0, halfEven: 0},
		{in: 266.8181818, halfUp: 266.82, halfEven: 266.82},
	}

	for _, tt := range tests {
		t.Run(FormatFloat(tt.in, 4), func(t *testing.T) {
			assert.InDelta(t, tt.halfUp, RoundHalfUp.Round(tt.in), 1e-12)
			assert.InDelta(t, tt.halfEven, RoundHalfEven.Round(tt.in), 1e-12)
		})
	}
}

func TestRoundingMode_RoundNonFinite(t *testing.T) {
	assert.True(t, math.IsNaN(RoundHalfUp.Round(math.NaN())))
	assert.True(t, math.IsInf(RoundHalfEven.Round(math.Inf(1)), 1))
}

func TestRoundingModes(t *testing.T) {
	assert.Equal(t, []RoundingMode{RoundHalfUp, RoundHalfEven}, RoundingModes())
}
