package ancpipe

/*------------------------------------------------------------------
 *
 * Purpose:	Output task.
 *
 * Description:	Dequeues a processed frame from Q2 and blocking-writes it to
 *		the output bus. A bus-write error is logged and the loop
 *		continues; the buffer is implicitly reclaimed by the pool on
 *		the next acquisition iteration since there is no explicit
 *		free step.
 *
 *------------------------------------------------------------------*/

import "context"

// RunOutput runs the output task until ctx is done or Q2 is closed.
func RunOutput(ctx context.Context, p *Pipeline) error {
	if err := p.OutputBus.Init(ctx, p.Config.SampleRate); err != nil {
		return err
	}

	logger := p.Logger.With("task", "output")
	if err := pinTaskPriority(niceIOBound); err != nil {
		logger.Warn("priority request rejected, running at default priority", "err", err)
	}

	for {
		var buf Frame
		select {
		case b, ok := <-p.Q2:
			if !ok {
				return nil
			}
			buf = b
		case <-ctx.Done():
			return ctx.Err()
		}

		if err := p.OutputBus.Write(ctx, buf); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("output bus write failed", "err", err)
		}
	}
}
