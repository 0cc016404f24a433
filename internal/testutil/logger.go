package testutil

import (
	"io"

	"github.com/AbduSubhan11/Evolution-of-Todo/internal/logger"
)

// MakeNoopLogger returns a logger that discards all output.
func MakeNoopLogger() *logger.Logger {
	return logger.New(io.Discard, "error")
}
