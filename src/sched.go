package ancpipe

/*------------------------------------------------------------------
 *
 * Purpose:	Per-task scheduling priority.
 *
 * Description:	Acquisition and output are I/O-bound and run at a
 *		medium priority; processing is CPU-bound at the same or a
 *		lower priority; the indicator is lowest. On a real-time
 *		kernel each task would be a fixed-priority thread; on Linux
 *		the closest equivalent available without root is a per-
 *		thread niceness, set once the calling goroutine has been
 *		pinned to its own OS thread so the setting sticks for the
 *		task's whole lifetime.
 *
 *------------------------------------------------------------------*/

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Task niceness, lower is higher priority. These are requests, not
// guarantees: an unprivileged process cannot lower niceness below 0 on
// most distributions, so a failure here is logged and otherwise ignored.
const (
	niceIOBound    = -2 // acquisition, output
	niceProcessing = 0  // processing: same or lower priority than I/O
	niceIndicator  = 10 // lowest priority, purely cosmetic work
)

// pinTaskPriority locks the calling goroutine to its current OS thread for
// the rest of its lifetime and requests nice as that thread's scheduling
// priority. Must be called from the task's own goroutine before it enters
// its main loop. A non-nil error means the priority request was rejected;
// the task still runs, just without the requested priority.
func pinTaskPriority(nice int) error {
	runtime.LockOSThread()
	tid := unix.Gettid()
	return unix.Setpriority(unix.PRIO_PROCESS, tid, nice)
}
