package ancpipe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_RatioToColor feeds snr_db values and checks the resulting (r, g, b)
// after the >>3 brightness limit.
func Test_RatioToColor(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		snr     float32
		r, g, b uint8
	}{
		{-5, 31, 0, 0},
		{0, 31, 0, 0},
		{3.5, 15, 15, 0},
		{7, 0, 31, 0},
		{20, 0, 31, 0},
	}

	for _, c := range cases {
		r, g, b := ratioToColor(c.snr, &cfg)
		assert.Equalf(t, c.r, r, "red channel for snr=%v", c.snr)
		assert.Equalf(t, c.g, g, "green channel for snr=%v", c.snr)
		assert.Equalf(t, c.b, b, "blue channel for snr=%v", c.snr)
	}
}

// Test_IndicatorBlinksThenTracksSNR exercises RunIndicator directly: it
// starts the task in its pre-sample (slow green blink) state, publishes one
// sample, and checks that the continuous ramp color is rendered. The blink
// frames themselves are not observed, since the slow green period is longer
// than this test runs.
func Test_IndicatorBlinksThenTracksSNR(t *testing.T) {
	cfg := DefaultConfig()
	logger := NewLogger(nil)
	rec := NewRecordingIndicator()

	p := &Pipeline{
		Config:    cfg,
		Logger:    logger,
		Q3:        make(chan float32, 4),
		Indicator: rec,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- RunIndicator(ctx, p) }()

	// Let the task start and enter its pre-sample loop before publishing.
	time.Sleep(5 * time.Millisecond)

	p.Q3 <- 7.0
	time.Sleep(10 * time.Millisecond)

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, [3]uint8{0, 31, 0}, last, "should render the ramp color for snr=7 after warming up")

	cancel()
	<-done
}
