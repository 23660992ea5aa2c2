// Package version provides build version information for netc.
//
// Version and git commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/netc/version.Version=1.0.0"
//
// The default HTTP adapter advertises UserAgent() on every request that does
// not carry its own User-Agent header.
package version
