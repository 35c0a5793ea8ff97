package ancpipe

/*------------------------------------------------------------------
 *
 * Purpose:	Build-time tunables for the adaptive noise-cancellation
 *		pipeline.
 *
 * Description:	The algorithm in nlms.go and agc.go is parameterized by a
 *		handful of constants (filter length, step size, AGC ceiling,
 *		smoothing factors, ...) that are meant to be fixed at build
 *		time rather than reconfigured live, but that are, in
 *		practice, the dials a developer turns while chasing
 *		convergence behavior on a bench. DefaultConfig
 *		gives the production defaults; BindFlags lets a harness
 *		binary (cmd/ancpipesim) override them without a rebuild.
 *
 *		This is NOT a runtime-reconfiguration feature: a Config is
 *		resolved once, before Pipeline construction, and the running
 *		pipeline never re-reads it.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Config holds every build-time parameter governing the NLMS/AGC/indicator
// pipeline and its external bus connections.
type Config struct {
	SampleRate int // Hz
	BlockSize  int // samples per channel per frame

	FilterLength int     // M, NLMS tap count
	Mu           float32 // NLMS step size
	Epsilon      float32 // regularization epsilon

	NormalizeFactor float32 // shifted-int32 -> float scale
	OutputHeadroom  float32 // output scale as a fraction of full scale (0.7, ~3 dB headroom)

	CoeffGain float32 // AGC target numerator
	GainMax   float32 // AGC ceiling

	AlphaGain float32 // EMA smoothing for gain
	AlphaSNR  float32 // EMA smoothing for SNR

	CompteurLED int // SNR publish downsample ratio

	SNRMin float32 // indicator mapping range, dB
	SNRMax float32

	NormResyncFrames int // periodic from-scratch norm recompute interval

	Q1Capacity int // acquisition -> processing
	Q2Capacity int // processing -> output
	Q3Capacity int // processing -> indicator
}

// DefaultConfig returns the values typical of a bench setup tuned for a
// 48kHz stereo stream.
func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		BlockSize:  1024,

		FilterLength: 64,
		Mu:           0.1,
		Epsilon:      1e-6,

		NormalizeFactor: 1.0 / (1 << 23),
		OutputHeadroom:  0.7,

		CoeffGain: 0.3,
		GainMax:   50,

		AlphaGain: 0.99,
		AlphaSNR:  0.9,

		CompteurLED: 10,

		SNRMin: 0,
		SNRMax: 7,

		NormResyncFrames: 256,

		Q1Capacity: 2,
		Q2Capacity: 2,
		Q3Capacity: 4,
	}
}

// BindFlags registers the tunables on fs, defaulting to the values already
// present in c. NormalizeFactor, OutputHeadroom and the three queue
// capacities are not bound and keep their DefaultConfig values. Used by
// bench/tuning binaries; the production daemon calls it too.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.SampleRate, "sample-rate", c.SampleRate, "Audio sample rate in Hz.")
	fs.IntVar(&c.BlockSize, "block-size", c.BlockSize, "Samples per channel per frame.")
	fs.IntVarP(&c.FilterLength, "filter-length", "M", c.FilterLength, "NLMS adaptive filter tap count.")
	fs.Float32Var(&c.Mu, "mu", c.Mu, "NLMS step size (0 < mu < 2 for stability).")
	fs.Float32Var(&c.Epsilon, "epsilon", c.Epsilon, "Regularization constant guarding every division.")
	fs.Float32Var(&c.CoeffGain, "coeff-gain", c.CoeffGain, "AGC target RMS numerator.")
	fs.Float32Var(&c.GainMax, "gain-max", c.GainMax, "AGC gain ceiling.")
	fs.Float32Var(&c.AlphaGain, "alpha-gain", c.AlphaGain, "EMA smoothing factor for AGC gain.")
	fs.Float32Var(&c.AlphaSNR, "alpha-snr", c.AlphaSNR, "EMA smoothing factor for published SNR.")
	fs.IntVar(&c.CompteurLED, "compteur-led", c.CompteurLED, "SNR-publish downsample ratio (blocks per indicator update).")
	fs.Float32Var(&c.SNRMin, "snr-min", c.SNRMin, "Indicator color-ramp floor, dB.")
	fs.Float32Var(&c.SNRMax, "snr-max", c.SNRMax, "Indicator color-ramp ceiling, dB.")
	fs.IntVar(&c.NormResyncFrames, "norm-resync-frames", c.NormResyncFrames, "Blocks between from-scratch norm recomputation (0 disables).")
}

// Validate rejects configurations that would make the algorithm meaningless
// or divide by zero. Called once at Pipeline construction.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("ancpipe: sample rate must be positive, got %d", c.SampleRate)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("ancpipe: block size must be positive, got %d", c.BlockSize)
	}
	if c.FilterLength <= 0 {
		return fmt.Errorf("ancpipe: filter length must be positive, got %d", c.FilterLength)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("ancpipe: epsilon must be positive, got %v", c.Epsilon)
	}
	if c.GainMax <= 0 {
		return fmt.Errorf("ancpipe: gain max must be positive, got %v", c.GainMax)
	}
	if c.AlphaGain < 0 || c.AlphaGain > 1 {
		return fmt.Errorf("ancpipe: alpha-gain must be in [0,1], got %v", c.AlphaGain)
	}
	if c.AlphaSNR < 0 || c.AlphaSNR > 1 {
		return fmt.Errorf("ancpipe: alpha-snr must be in [0,1], got %v", c.AlphaSNR)
	}
	if c.CompteurLED <= 0 {
		return fmt.Errorf("ancpipe: compteur-led must be positive, got %d", c.CompteurLED)
	}
	if c.SNRMax <= c.SNRMin {
		return fmt.Errorf("ancpipe: snr-max (%v) must exceed snr-min (%v)", c.SNRMax, c.SNRMin)
	}
	if c.Q1Capacity <= 0 || c.Q2Capacity <= 0 || c.Q3Capacity <= 0 {
		return fmt.Errorf("ancpipe: queue capacities must be positive")
	}
	return nil
}
