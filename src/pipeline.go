package ancpipe

/*------------------------------------------------------------------
 *
 * Purpose:	Bundle the pipeline's shared resources into one explicit
 *		value.
 *
 * Description:	The three queues (Q1, Q2, Q3), the frame pool and the
 *		filter state are held on an explicit Pipeline value that is
 *		constructed once at init and passed by reference to every
 *		task at spawn — never an ambient package-global.
 *
 *------------------------------------------------------------------*/

import (
	"github.com/charmbracelet/log"
)

// Pipeline bundles the three bounded queues, the frame pool and the filter
// state that the acquisition/processing/output/indicator tasks share.
// Everything here except the queues themselves is owned by exactly one
// task.
type Pipeline struct {
	Config Config
	Logger *log.Logger

	Pool   *FramePool
	Filter *FilterState

	// Q1: acquisition -> processing, buffer references.
	Q1 chan Frame
	// Q2: processing -> output, buffer references.
	Q2 chan Frame
	// Q3: processing -> indicator, SNR samples (dB).
	Q3 chan float32

	InputBus  InputBus
	OutputBus OutputBus
	Indicator IndicatorDevice
}

// NewPipeline validates cfg and constructs a Pipeline wired to the given
// buses and indicator. It does not start any tasks; call Pipeline.Run (or
// spawn the task functions directly) to do that.
func NewPipeline(cfg Config, logger *log.Logger, in InputBus, out OutputBus, ind IndicatorDevice) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewLogger(nil)
	}
	return &Pipeline{
		Config:    cfg,
		Logger:    logger,
		Pool:      NewFramePool(cfg.BlockSize),
		Filter:    NewFilterState(cfg.FilterLength),
		Q1:        make(chan Frame, cfg.Q1Capacity),
		Q2:        make(chan Frame, cfg.Q2Capacity),
		Q3:        make(chan float32, cfg.Q3Capacity),
		InputBus:  in,
		OutputBus: out,
		Indicator: ind,
	}, nil
}
