package ancpipe

/*------------------------------------------------------------------
 *
 * Purpose:	RMS, SNR smoothing and adaptive gain control.
 *
 * Description:	AGC here is a simple inverse-RMS normalization with
 *		exponential smoothing and a ceiling — no lookahead, no
 *		attack/release curve.
 *
 *------------------------------------------------------------------*/

import "math"

// rms computes the root-mean-square of xs.
func rms(xs []float32) float32 {
	if len(xs) == 0 {
		return 0
	}
	var sumSquares float64
	for _, x := range xs {
		sumSquares += float64(x) * float64(x)
	}
	return float32(math.Sqrt(sumSquares / float64(len(xs))))
}

// updateSNR applies exponential smoothing to the raw noise-reduction ratio
// in dB and returns the newly smoothed value. A near-silent primary channel
// (rmsIn at or below epsilon) reports 0 dB rather than letting log10(0)
// drive the reading to -Inf.
func (f *FilterState) updateSNR(rmsIn, rmsOut, epsilon, alpha float32) float32 {
	var snrDB float32
	if rmsIn > epsilon {
		snrDB = float32(20 * math.Log10(float64(rmsIn)/float64(rmsOut+epsilon)))
	}
	f.snrSmoothed = alpha*f.snrSmoothed + (1-alpha)*snrDB
	return f.snrSmoothed
}

// nextLEDCounter increments the downsample counter and reports whether this
// block's SNR should be published.
func (f *FilterState) nextLEDCounter(compteurLED int) bool {
	f.ledCounter++
	if f.ledCounter >= compteurLED {
		f.ledCounter = 0
		return true
	}
	return false
}

// updateGain applies the AGC raw-compute/smooth/clamp sequence and returns
// the clamped gain to apply this block. gainSmoothed never exceeds gainMax.
func (f *FilterState) updateGain(rmsOut, coeffGain, epsilon, alphaGain, gainMax float32) float32 {
	g := coeffGain / (rmsOut + epsilon)
	f.gainSmoothed = alphaGain*f.gainSmoothed + (1-alphaGain)*g
	if f.gainSmoothed > gainMax {
		f.gainSmoothed = gainMax
	}
	return f.gainSmoothed
}
