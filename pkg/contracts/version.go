// Package contracts defines the shared data contracts between the engine,
// the HTTP API, and external consumers.
package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the current version of the application.
	Version = "0.1.0"

	// APIVersion is the version prefix of the HTTP API contracts.
	APIVersion = "v1"

	// ReportFormatVersion is the version of the analysis report format.
	ReportFormatVersion = "v1"
)

// UserAgent returns the identification string sent by outbound clients.
func UserAgent() string {
	return fmt.Sprintf("tabpulse/%s (%s; %s)", Version, runtime.GOOS, runtime.GOARCH)
}
