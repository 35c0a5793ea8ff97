package ancpipe

/*------------------------------------------------------------------
 *
 * Purpose:	GPIO-backed tri-LED indicator (discrete red/green/blue
 *		lines, no PWM).
 *
 * Description:	Alternate IndicatorDevice backend for boards wired with
 *		three discrete GPIO lines driving a common-cathode LED
 *		instead of a PWM/I2C RGB pixel. SetColor thresholds each
 *		channel to on/off since plain GPIO lines have no brightness
 *		control.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// GPIOIndicator drives three discrete GPIO output lines as an RGB LED.
type GPIOIndicator struct {
	chip         *gpiocdev.Chip
	red          *gpiocdev.Line
	green        *gpiocdev.Line
	blue         *gpiocdev.Line
	brightOn     uint8 // channel values >= this threshold register as "on"
}

// NewGPIOIndicator opens chipName (e.g. "gpiochip0") and requests redLine,
// greenLine and blueLine as outputs, all initially low.
func NewGPIOIndicator(chipName string, redLine, greenLine, blueLine int) (*GPIOIndicator, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("ancpipe: open gpio chip %s: %w", chipName, err)
	}

	red, err := chip.RequestLine(redLine, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("ancpipe: request red line %d: %w", redLine, err)
	}
	green, err := chip.RequestLine(greenLine, gpiocdev.AsOutput(0))
	if err != nil {
		red.Close()
		chip.Close()
		return nil, fmt.Errorf("ancpipe: request green line %d: %w", greenLine, err)
	}
	blue, err := chip.RequestLine(blueLine, gpiocdev.AsOutput(0))
	if err != nil {
		red.Close()
		green.Close()
		chip.Close()
		return nil, fmt.Errorf("ancpipe: request blue line %d: %w", blueLine, err)
	}

	return &GPIOIndicator{
		chip:     chip,
		red:      red,
		green:    green,
		blue:     blue,
		brightOn: 16, // color channel values are already >>3'd, i.e. 0-31
	}, nil
}

// SetColor thresholds each 0-31 channel value to a line level; index is
// ignored since this board has exactly one physical indicator.
func (g *GPIOIndicator) SetColor(_ int, r, gr, b uint8) error {
	if err := g.red.SetValue(boolToLine(r >= g.brightOn)); err != nil {
		return err
	}
	if err := g.green.SetValue(boolToLine(gr >= g.brightOn)); err != nil {
		return err
	}
	return g.blue.SetValue(boolToLine(b >= g.brightOn))
}

// Refresh is a no-op: GPIO line writes take effect immediately.
func (g *GPIOIndicator) Refresh() error { return nil }

func (g *GPIOIndicator) Clear() error {
	return g.SetColor(0, 0, 0, 0)
}

// Close releases the requested lines and the chip handle.
func (g *GPIOIndicator) Close() error {
	g.red.Close()
	g.green.Close()
	g.blue.Close()
	return g.chip.Close()
}

func boolToLine(on bool) int {
	if on {
		return 1
	}
	return 0
}
