// Command ancpipe runs the real-time two-channel adaptive
// noise-cancellation pipeline against a host sound card (via PortAudio) and
// a GPIO-wired RGB indicator LED.
package main

/*------------------------------------------------------------------
 *
 * Purpose:	Daemon entrypoint wiring Config, Pipeline and the hardware
 *		backends together.
 *
 * Description:	Parse flags, build the library's config/pipeline types, run
 *		until interrupted, log fatal on any init-time device failure.
 *
 *------------------------------------------------------------------*/

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	ancpipe "github.com/n5dsp/ancpipe/src"
)

func main() {
	cfg := ancpipe.DefaultConfig()
	cfg.BindFlags(pflag.CommandLine)

	gpioChip := pflag.String("gpio-chip", "gpiochip0", "GPIO chip for the indicator LED.")
	gpioRed := pflag.Int("gpio-red", 17, "GPIO line driving the indicator's red channel.")
	gpioGreen := pflag.Int("gpio-green", 27, "GPIO line driving the indicator's green channel.")
	gpioBlue := pflag.Int("gpio-blue", 22, "GPIO line driving the indicator's blue channel.")
	versionFlag := pflag.Bool("version", false, "Print the build version and exit.")

	pflag.Parse()

	if *versionFlag {
		fmt.Println(ancpipe.Version())
		return
	}

	logger := ancpipe.NewLogger(os.Stderr)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	indicator, err := ancpipe.NewGPIOIndicator(*gpioChip, *gpioRed, *gpioGreen, *gpioBlue)
	if err != nil {
		logger.Fatal("indicator init failed", "err", err)
	}
	defer indicator.Close()

	inBus := ancpipe.NewPortAudioInputBus(cfg.BlockSize)
	outBus := ancpipe.NewPortAudioOutputBus(cfg.BlockSize)

	pipeline, err := ancpipe.NewPipeline(cfg, logger, inBus, outBus, indicator)
	if err != nil {
		logger.Fatal("pipeline construction failed", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pipeline.Run(ctx); err != nil {
		logger.Error("pipeline exited with error", "err", err)
		pipeline.Close()
		os.Exit(1)
	}

	if err := pipeline.Close(); err != nil {
		logger.Error("error closing buses", "err", err)
		os.Exit(1)
	}
}
