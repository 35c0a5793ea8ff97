package ancpipe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Test_GainNeverExceedsMax checks that gain_smoothed never exceeds
// GAIN_MAX, regardless of how quiet rms_out gets.
func Test_GainNeverExceedsMax(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		gainMax := float32(rapid.Float64Range(0.1, 200).Draw(t, "gainMax"))
		alphaGain := float32(rapid.Float64Range(0, 1).Draw(t, "alphaGain"))
		coeffGain := float32(rapid.Float64Range(0.01, 5).Draw(t, "coeffGain"))

		fs := NewFilterState(4)
		rmsValues := rapid.SliceOfN(rapid.Float64Range(0, 1), 1, 100).Draw(t, "rmsValues")

		for _, v := range rmsValues {
			g := fs.updateGain(float32(v), coeffGain, 1e-6, alphaGain, gainMax)
			assert.LessOrEqualf(t, g, gainMax, "gain must never exceed GAIN_MAX")
			assert.False(t, math.IsNaN(float64(g)), "gain must never be NaN")
			assert.False(t, math.IsInf(float64(g), 0), "gain must never be Inf")
		}
	})
}

// Test_AGCClampUnderNearSilentPrimary checks that an extremely quiet
// primary channel pushes gain toward, but never past, GAIN_MAX, with no
// NaN/Inf in the output and saturation at the headroom-scaled full scale.
func Test_AGCClampUnderNearSilentPrimary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlockSize = 128
	fs := NewFilterState(cfg.FilterLength)

	maxSample := int32(cfg.OutputHeadroom * float32(math.MaxInt32))

	for block := 0; block < 50; block++ {
		frame := NewFrame(cfg.BlockSize)
		for i := 0; i < cfg.BlockSize; i++ {
			noise := float32(1e-5) * (float32(i%3) - 1)
			raw := EncodeSample(noise, cfg.NormalizeFactor)
			frame[2*i] = raw
			frame[2*i+1] = raw / 2
		}
		_, _ = ProcessBlock(&cfg, fs, frame)

		for _, s := range frame {
			require.LessOrEqual(t, s, maxSample+1)
			require.GreaterOrEqual(t, s, -maxSample-1)
		}
	}

	assert.LessOrEqual(t, fs.gainSmoothed, cfg.GainMax)
	assert.False(t, math.IsNaN(float64(fs.gainSmoothed)))
}
