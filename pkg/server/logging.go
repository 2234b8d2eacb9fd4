package server

import (
	"io"
	"strings"

	"k8s.io/klog/v2"
	"k8s.io/klog/v2/textlogger"
)

// verbosity maps a config log level to a klog verbosity. Errors and
// warnings are always emitted, so both map to 0.
func verbosity(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error", "warn", "warning":
		return 0
	case "debug":
		return 4
	case "trace":
		return 6
	default:
		return 1
	}
}

func initLogging(level string, out io.Writer) {
	logger := textlogger.NewLogger(textlogger.NewConfig(
		textlogger.Output(out),
		textlogger.Verbosity(verbosity(level)),
	))
	klog.SetLoggerWithOptions(logger)
}
