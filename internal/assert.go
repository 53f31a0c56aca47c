// Package internal contains helpers shared by the avscale packages.
package internal

import (
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// Assert panics (through the logger) if an internal invariant is broken.
func Assert(
	ctx context.Context,
	mustBeTrue bool,
	what string,
	extraArgs ...any,
) {
	if mustBeTrue {
		return
	}

	logger.Panic(ctx, "assertion failed: "+what, extraArgs)
}
