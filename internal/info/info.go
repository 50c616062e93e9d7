// Package info holds application version information.
package info

var (
	AppName = "alogger"
	// Version is overridden at link time with -ldflags "-X".
	Version = "DEV"
	// BuildDate is set together with Version, formatted YYYY-MM-DD.
	BuildDate = ""
)
