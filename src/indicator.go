package ancpipe

/*------------------------------------------------------------------
 *
 * Purpose:	Indicator task, color ramp and blink-strategy dispatch.
 *
 * Description:	Steady state: consume smoothed SNR values from Q3 and map
 *		them onto a green/red color ramp. Boot/fault states: a small
 *		set of named blink modes, each a fixed color and period keyed
 *		off pipeline lifecycle (booting, steady, faulted), looked up
 *		in a table instead of a runtime function-pointer table, which
 *		is preferable when the mode set is small and known at build
 *		time.
 *
 *------------------------------------------------------------------*/

import (
	"context"
	"time"
)

// IndicatorDevice is the external indicator collaborator: a
// single RGB pixel with set_color/refresh/clear.
type IndicatorDevice interface {
	SetColor(index int, r, g, b uint8) error
	Refresh() error
	Clear() error
}

// BlinkMode is a tagged variant over the small, build-time-known set of
// boot/fault blink behaviors.
type BlinkMode int

const (
	BlinkOff BlinkMode = iota
	BlinkSlowGreen
	BlinkSlowYellow
	BlinkFastYellow
	BlinkFastRed
)

// blinkStrategy pairs a BlinkMode with the color it flashes and its period.
// A zero Period means "solid", not "blink".
type blinkStrategy struct {
	r, g, b uint8
	period  time.Duration
}

// blinkStrategies is a compile-time-known table indexed by the tagged
// variant, not a runtime function-pointer table.
var blinkStrategies = map[BlinkMode]blinkStrategy{
	BlinkOff:        {0, 0, 0, 0},
	BlinkSlowGreen:  {0, 255, 0, 800 * time.Millisecond},
	BlinkSlowYellow: {255, 200, 0, 800 * time.Millisecond},
	BlinkFastYellow: {255, 200, 0, 150 * time.Millisecond},
	BlinkFastRed:    {255, 0, 0, 150 * time.Millisecond},
}

// ratioToColor maps an SNR reading onto a red-to-green RGB ramp:
// ratio = clamp((snr-SNR_MIN)/(SNR_MAX-SNR_MIN), 0, 1); r=(255*(1-ratio))>>3;
// g=(255*ratio)>>3; b=0.
func ratioToColor(snrDB float32, cfg *Config) (r, g, b uint8) {
	ratio := (snrDB - cfg.SNRMin) / (cfg.SNRMax - cfg.SNRMin)
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	r = uint8(int(255*(1-ratio)) >> 3)
	g = uint8(int(255*ratio) >> 3)
	return r, g, 0
}

// applyRamp pushes the steady-state color for snrDB to dev and refreshes.
func applyRamp(dev IndicatorDevice, cfg *Config, snrDB float32) error {
	r, g, b := ratioToColor(snrDB, cfg)
	if err := dev.SetColor(0, r, g, b); err != nil {
		return err
	}
	return dev.Refresh()
}

// applyBlinkFrame pushes one frame (on or off) of mode's blink pattern.
func applyBlinkFrame(dev IndicatorDevice, mode BlinkMode, on bool) error {
	s := blinkStrategies[mode]
	if !on {
		if err := dev.SetColor(0, 0, 0, 0); err != nil {
			return err
		}
		return dev.Refresh()
	}
	if err := dev.SetColor(0, s.r, s.g, s.b); err != nil {
		return err
	}
	return dev.Refresh()
}

// RunIndicator runs the indicator task. Before the first SNR sample is
// published it blinks BlinkSlowGreen ("booting, awaiting convergence data");
// from the first sample onward it renders the continuous color ramp.
func RunIndicator(ctx context.Context, p *Pipeline) error {
	logger := p.Logger.With("task", "indicator")
	if err := pinTaskPriority(niceIndicator); err != nil {
		logger.Warn("priority request rejected, running at default priority", "err", err)
	}

	warm := false
	blinkOn := false
	ticker := time.NewTicker(blinkStrategies[BlinkSlowGreen].period)
	defer ticker.Stop()

	for {
		if !warm {
			select {
			case snr, ok := <-p.Q3:
				if !ok {
					return nil
				}
				warm = true
				if err := applyRamp(p.Indicator, &p.Config, snr); err != nil {
					logger.Warn("indicator update failed", "err", err)
				}
			case <-ticker.C:
				blinkOn = !blinkOn
				if err := applyBlinkFrame(p.Indicator, BlinkSlowGreen, blinkOn); err != nil {
					logger.Warn("indicator blink failed", "err", err)
				}
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		select {
		case snr, ok := <-p.Q3:
			if !ok {
				return nil
			}
			if err := applyRamp(p.Indicator, &p.Config, snr); err != nil {
				logger.Warn("indicator update failed", "err", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunFaultBlink drives dev with mode until ctx is done. Neither Pipeline.Run
// nor the daemon calls it: an init-time device failure does not switch the
// indicator to a fault blink.
func RunFaultBlink(ctx context.Context, dev IndicatorDevice, mode BlinkMode) error {
	s := blinkStrategies[mode]
	if s.period == 0 {
		return dev.Clear()
	}
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	on := false
	for {
		select {
		case <-ticker.C:
			on = !on
			if err := applyBlinkFrame(dev, mode, on); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
