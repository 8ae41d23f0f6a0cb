// Package darwin provides the macOS platform backend. Captures go through
// the screencapture utility and the display inventory through
// system_profiler, so the package itself needs no cgo; only the provider
// registration in init.go is restricted to darwin builds.
package darwin
