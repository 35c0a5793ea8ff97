package ancpipe

/*------------------------------------------------------------------
 *
 * Purpose:	Processing task.
 *
 * Description:	Receives a frame buffer from Q1, runs ProcessBlock (NLMS +
 *		AGC + SNR, nlms.go/agc.go) against it in place, opportunistically
 *		publishes the smoothed SNR to Q3 (dropping on a full queue),
 *		and forwards the buffer to Q2. Runs as its own dedicated task
 *		rather than being called inline from acquisition, so a slow
 *		block never delays the next bus read.
 *
 *------------------------------------------------------------------*/

import "context"

// RunProcessing runs the processing task until ctx is done or Q1 is closed.
func RunProcessing(ctx context.Context, p *Pipeline) error {
	logger := p.Logger.With("task", "processing")
	if err := pinTaskPriority(niceProcessing); err != nil {
		logger.Warn("priority request rejected, running at default priority", "err", err)
	}

	for {
		var buf Frame
		select {
		case b, ok := <-p.Q1:
			if !ok {
				return nil
			}
			buf = b
		case <-ctx.Done():
			return ctx.Err()
		}

		snrDB, publish := ProcessBlock(&p.Config, p.Filter, buf)

		if publish {
			select {
			case p.Q3 <- snrDB:
			default:
				logger.Warn("indicator queue full, dropping SNR sample", "snr_db", snrDB)
			}
		}

		select {
		case p.Q2 <- buf:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
