package ancpipe

/*------------------------------------------------------------------
 *
 * Purpose:	Per-block NLMS + AGC + SNR core.
 *
 * Description:	Pure numeric core with no goroutines, channels or I/O —
 *		easy to property-test in isolation. processing.go wires this
 *		to the pipeline's queues. The block is walked sample-by-
 *		sample maintaining running filter state, with a mid-block
 *		cooperative yield point to keep the scheduler and watchdog
 *		honest on long blocks.
 *
 *------------------------------------------------------------------*/

import (
	"math"
	"runtime"
)

// ProcessBlock runs the full per-block algorithm against frame in place:
// unpack, per-sample NLMS, RMS/SNR, AGC, saturate, repack. It
// returns the smoothed SNR for this block and whether it is this block's
// turn to publish it to the indicator (the COMPTEUR_LED downsample).
func ProcessBlock(cfg *Config, fs *FilterState, frame Frame) (snrDB float32, publish bool) {
	blockSize := len(frame) / 2
	yieldAt := blockSize / 2

	left := make([]float32, blockSize)
	right := make([]float32, blockSize)
	filtered := make([]float32, blockSize)

	// Step 1: unpack + normalize.
	for i := 0; i < blockSize; i++ {
		left[i] = float32(frame[2*i]>>8) * cfg.NormalizeFactor
		right[i] = float32(frame[2*i+1]>>8) * cfg.NormalizeFactor
	}

	// Step 2: RMS of noisy primary.
	rmsIn := rms(right)

	// Step 3: per-sample NLMS loop.
	for i := 0; i < blockSize; i++ {
		filtered[i] = fs.step(left[i], right[i], cfg.Epsilon, cfg.Mu)
		if i == yieldAt {
			runtime.Gosched()
		}
	}

	fs.maybeResyncNorm(cfg.NormResyncFrames)

	// Step 4: RMS of denoised.
	rmsOut := rms(filtered)

	// Step 5: SNR.
	snrDB = fs.updateSNR(rmsIn, rmsOut, cfg.Epsilon, cfg.AlphaSNR)

	// Step 6: downsampled publish decision.
	publish = fs.nextLEDCounter(cfg.CompteurLED)

	// Step 7: adaptive gain.
	gain := fs.updateGain(rmsOut, cfg.CoeffGain, cfg.Epsilon, cfg.AlphaGain, cfg.GainMax)
	for i := range filtered {
		filtered[i] *= gain
	}

	// Step 8: saturate.
	for i := range filtered {
		if filtered[i] > 1.0 {
			filtered[i] = 1.0
		} else if filtered[i] < -1.0 {
			filtered[i] = -1.0
		}
	}

	// Steps 9-10: fixed point conversion, duplicate to both channels.
	scale := cfg.OutputHeadroom * float32(math.MaxInt32)
	for i := 0; i < blockSize; i++ {
		s := int32(filtered[i] * scale)
		frame[2*i] = s
		frame[2*i+1] = s
	}

	return snrDB, publish
}
