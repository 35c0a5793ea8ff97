package ancpipe

/*------------------------------------------------------------------
 *
 * Purpose:	Acquisition task.
 *
 * Description:	Repeatedly block-reads a full stereo frame from the input
 *		bus into the pool's current buffer, then hands a reference
 *		to it onto Q1. A bus-read error is logged and the loop
 *		continues without rotating the pool, so the next attempt
 *		reuses (and overwrites) the same buffer rather than handing
 *		a half-filled one downstream.
 *
 *------------------------------------------------------------------*/

import "context"

// RunAcquisition runs the acquisition task until ctx is done or the input
// bus returns a non-recoverable error from Init. Runtime read errors are
// logged and do not stop the loop.
func RunAcquisition(ctx context.Context, p *Pipeline) error {
	if err := p.InputBus.Init(ctx, p.Config.SampleRate); err != nil {
		return err
	}

	logger := p.Logger.With("task", "acquisition")
	if err := pinTaskPriority(niceIOBound); err != nil {
		logger.Warn("priority request rejected, running at default priority", "err", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		buf := p.Pool.Current()
		if err := p.InputBus.Read(ctx, buf); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("input bus read failed, reusing buffer", "err", err)
			continue
		}

		select {
		case p.Q1 <- buf:
		case <-ctx.Done():
			return ctx.Err()
		}

		p.Pool.Advance()
	}
}
