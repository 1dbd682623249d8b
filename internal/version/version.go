// Package version carries markd's build metadata, stamped via ldflags.
package version

import (
	"runtime"
	"time"
)

// Populated at build time; the defaults identify a local dev build.
var (
	Version   = "dev"                           // ex: v0.1.0
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2025-08-11T18:42:00Z
	GoVersion = runtime.Version()               // go version
)
