package ancpipe

/*------------------------------------------------------------------
 *
 * Purpose:	Build-time version reporting.
 *
 * Description:	Version string set via -ldflags at build time, falling back
 *		to the Go module's own embedded build info (VCS revision)
 *		when unset, e.g. for `go run`.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"runtime/debug"
)

// ANCPIPE_VERSION is set at build time via
// `-ldflags "-X 'github.com/n5dsp/ancpipe/src.ANCPIPE_VERSION=X'"`.
var ANCPIPE_VERSION string

// Version returns ANCPIPE_VERSION if the build set it, otherwise a
// best-effort string derived from the embedded VCS build info.
func Version() string {
	if ANCPIPE_VERSION != "" {
		return ANCPIPE_VERSION
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	rev := getBuildSettingOrDefault(bi, "vcs.revision", "unknown")
	dirty := getBuildSettingOrDefault(bi, "vcs.modified", "false")
	if dirty == "true" {
		return fmt.Sprintf("%s-dirty", rev)
	}
	return rev
}

func getBuildSettingOrDefault(bi *debug.BuildInfo, key, defaultValue string) string {
	for _, bs := range bi.Settings {
		if bs.Key == key {
			return bs.Value
		}
	}
	return defaultValue
}
