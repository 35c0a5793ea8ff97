// Command ancpipesim runs the real pipeline against synthetic reference and
// primary streams and reports the number of blocks processed, the final
// block's output RMS and the last indicator color, for tuning and
// regression-checking the NLMS core without real hardware.
package main

/*------------------------------------------------------------------
 *
 * Purpose:	Bench/scenario harness: generate a known signal, run it
 *		through the real engine, score the result.
 *
 * Description:	Implements a set of end-to-end scenarios: silent input,
 *		pure noise cancellation, signal plus uncorrelated noise, and
 *		AGC clamp under a near-silent primary channel.
 *
 *------------------------------------------------------------------*/

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/pflag"

	ancpipe "github.com/n5dsp/ancpipe/src"
)

func main() {
	cfg := ancpipe.DefaultConfig()
	cfg.BindFlags(pflag.CommandLine)

	scenario := pflag.StringP("scenario", "s", "noise-cancel", "Scenario: silent, noise-cancel, signal-noise, agc-clamp.")
	blocks := pflag.IntP("blocks", "n", 100, "Number of blocks to run.")
	seed := pflag.Uint64("seed", 1, "PRNG seed for reproducible synthetic signals.")

	pflag.Parse()

	gen, err := buildScenario(*scenario, cfg, *seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ancpipesim:", err)
		os.Exit(1)
	}

	logger := ancpipe.NewLogger(os.Stderr)

	inBus := ancpipe.NewGeneratorInputBus(cfg.BlockSize, gen)
	outBus := ancpipe.NewRecordingOutputBus()
	indicator := ancpipe.NewRecordingIndicator()

	pipeline, err := ancpipe.NewPipeline(cfg, logger, inBus, outBus, indicator)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ancpipesim: pipeline:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for {
			if inBus.ReadCount() >= (*blocks)*cfg.BlockSize {
				cancel()
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()

	if err := pipeline.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "ancpipesim: pipeline run:", err)
		os.Exit(1)
	}

	report(outBus, indicator, cfg)
}

// buildScenario returns a SampleFunc producing raw (left, right) samples
// for the named scenario.
func buildScenario(name string, cfg ancpipe.Config, seed uint64) (ancpipe.SampleFunc, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0xA5A5A5A5))

	switch name {
	case "silent":
		return func(int) (int32, int32) { return 0, 0 }, nil

	case "noise-cancel":
		return func(int) (int32, int32) {
			n := noiseSample(rng, 0.3)
			left := ancpipe.EncodeSample(n, cfg.NormalizeFactor)
			right := ancpipe.EncodeSample(0.5*n, cfg.NormalizeFactor)
			return left, right
		}, nil

	case "signal-noise":
		return func(i int) (int32, int32) {
			n := noiseSample(rng, 0.3)
			sine := float32(0.2 * math.Sin(2*math.Pi*440*float64(i)/float64(cfg.SampleRate)))
			left := ancpipe.EncodeSample(n, cfg.NormalizeFactor)
			right := ancpipe.EncodeSample(sine+n, cfg.NormalizeFactor)
			return left, right
		}, nil

	case "agc-clamp":
		return func(int) (int32, int32) {
			n := noiseSample(rng, 1e-5)
			left := ancpipe.EncodeSample(n, cfg.NormalizeFactor)
			right := ancpipe.EncodeSample(0.5*n, cfg.NormalizeFactor)
			return left, right
		}, nil

	default:
		return nil, fmt.Errorf("unknown scenario %q", name)
	}
}

func noiseSample(rng *rand.Rand, amplitude float32) float32 {
	return amplitude * (2*rng.Float32() - 1)
}

func report(outBus *ancpipe.RecordingOutputBus, indicator *ancpipe.RecordingIndicator, cfg ancpipe.Config) {
	frames := outBus.Frames()
	fmt.Printf("blocks processed: %d\n", len(frames))

	if len(frames) == 0 {
		return
	}

	last := frames[len(frames)-1]
	var sumSquares float64
	for i := 0; i < len(last); i += 2 {
		v := float64(last[i])
		sumSquares += v * v
	}
	rms := math.Sqrt(sumSquares / float64(len(last)/2))
	fmt.Printf("final block output RMS (raw int32 scale): %.1f\n", rms)

	if color, ok := indicator.Last(); ok {
		fmt.Printf("final indicator color: r=%d g=%d b=%d\n", color[0], color[1], color[2])
	}
}
