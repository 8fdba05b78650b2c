// hostinfo_unix.go - host page-size lookup for Linux/Darwin. Build-tag
// split directly modeled on the teacher's filewatcher_unix.go /
// filewatcher_darwin.go, which likewise select a golang.org/x/sys/unix
// syscall per OS behind identical function signatures.
//go:build linux || darwin

package main

import "golang.org/x/sys/unix"

// hostPageSizeBytes returns the OS page size, printed as an informational
// diagnostic only — the pass itself never consults it (spec.md §6: no
// environment/host probing is part of the core).
func hostPageSizeBytes() int {
	return unix.Getpagesize()
}
