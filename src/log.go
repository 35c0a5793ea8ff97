package ancpipe

/*------------------------------------------------------------------
 *
 * Purpose:	Colored, leveled logging for the pipeline tasks.
 *
 * Description:	Named severities (info, warn, error, fatal) rendered through
 *		charmbracelet/log instead of a bare console writer, with one
 *		*Logger instance threaded through the Pipeline instead of
 *		reaching for a package-global.
 *
 *------------------------------------------------------------------*/

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger builds the logger shared by every pipeline task. Audio-path
// errors (bus read/write failures, dropped SNR samples) log at Warn and the
// owning task's loop continues; init failures are left to the caller to log
// at Fatal and abort startup.
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    false,
		Level:           log.InfoLevel,
	})
	l = l.With("component", "ancpipe")
	return l
}
