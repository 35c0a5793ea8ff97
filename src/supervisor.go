package ancpipe

/*------------------------------------------------------------------
 *
 * Purpose:	Lifecycle/shutdown of the four pipeline tasks.
 *
 * Description:	Each of the four pipeline tasks runs as its own goroutine
 *		under golang.org/x/sync/errgroup, which gives cancellation-on-
 *		first-error for free: if acquisition's input bus fails to
 *		init, output and indicator shut down too instead of running
 *		forever against a half-started pipeline.
 *
 *------------------------------------------------------------------*/

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Run starts acquisition, processing, output and indicator concurrently and
// blocks until ctx is canceled or one of them returns a non-nil error other
// than context.Canceled, in which case the others are canceled too and the
// first such error is returned.
func (p *Pipeline) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return RunAcquisition(gctx, p) })
	g.Go(func() error { return RunProcessing(gctx, p) })
	g.Go(func() error { return RunOutput(gctx, p) })
	g.Go(func() error { return RunIndicator(gctx, p) })

	err := g.Wait()
	if err == context.Canceled {
		return nil
	}
	return err
}

// Close releases the pipeline's input and output buses; the indicator device
// is left to its owner. Call after Run returns.
func (p *Pipeline) Close() error {
	var firstErr error
	if err := p.InputBus.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := p.OutputBus.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
