//go:build !linux && !darwin

package cmd

import "os"

var shutdownSignals = []os.Signal{os.Interrupt}
