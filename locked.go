// locked.go provides a ScaleFilter wrapper which serializes all the calls.

package avscale

import (
	"context"

	"github.com/xaionaro-go/avscale/allocator"
	"github.com/xaionaro-go/avscale/types"
	"github.com/xaionaro-go/xsync"
)

// Locked makes a ScaleFilter usable from multiple goroutines: frame
// processing and reconfiguration never overlap.
type Locked struct {
	locker xsync.Mutex
	Filter *ScaleFilter
}

func NewLocked(f *ScaleFilter) *Locked {
	return &Locked{
		Filter: f,
	}
}

func (l *Locked) String() string {
	return xsync.DoR1(context.TODO(), &l.locker, l.Filter.String)
}

func (l *Locked) Process(ctx context.Context, dst, src []byte) (int, error) {
	return xsync.DoA3R2(xsync.WithNoLogging(ctx, true), &l.locker, l.Filter.Process, ctx, dst, src)
}

func (l *Locked) Reconfigure(ctx context.Context, cfg types.PipelineConfig) error {
	return xsync.DoA2R1(ctx, &l.locker, l.Filter.Reconfigure, ctx, cfg)
}

func (l *Locked) SetInputFormat(ctx context.Context, in types.MediaFormat) error {
	return xsync.DoA2R1(ctx, &l.locker, l.Filter.SetInputFormat, ctx, in)
}

func (l *Locked) SetParameters(ctx context.Context, params Parameters) error {
	return xsync.DoA2R1(ctx, &l.locker, l.Filter.SetParameters, ctx, params)
}

func (l *Locked) SetParameter(ctx context.Context, name, value string) error {
	return xsync.DoA3R1(ctx, &l.locker, l.Filter.SetParameter, ctx, name, value)
}

func (l *Locked) Config() (types.PipelineConfig, bool) {
	return xsync.DoR2(context.TODO(), &l.locker, l.Filter.Config)
}

func (l *Locked) ConnectOutput(
	ctx context.Context,
	out types.MediaFormat,
	alloc allocator.Allocator,
	requested allocator.Properties,
) (_ret allocator.Properties, _err error) {
	l.locker.Do(ctx, func() {
		_ret, _err = l.Filter.ConnectOutput(ctx, out, alloc, requested)
	})
	return
}

func (l *Locked) DisconnectOutput(ctx context.Context) {
	l.locker.Do(ctx, func() {
		l.Filter.DisconnectOutput(ctx)
	})
}

func (l *Locked) GetStats() *Statistics {
	return l.Filter.GetStats()
}

func (l *Locked) Close(ctx context.Context) error {
	return xsync.DoA1R1(ctx, &l.locker, l.Filter.Close, ctx)
}
