//go:build !windows

package server

import (
	"os"
	"syscall"
)

// SIGHUP rebuilds the runtime from the current config and environment.
func reloadSignals() []os.Signal {
	return []os.Signal{syscall.SIGHUP}
}
