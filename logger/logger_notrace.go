//go:build !debug_trace
// +build !debug_trace

// logger_notrace.go compiles the trace logging out, so that the per-frame
// path does not pay for it.

package logger

import (
	"context"
)

// Tracef is a no-op without the "debug_trace" build tag.
func Tracef(ctx context.Context, format string, args ...any) {}
