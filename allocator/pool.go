// pool.go implements an Allocator backed by a sync.Pool of byte buffers.

package allocator

import (
	"context"
	"fmt"
	"sync"

	"github.com/xaionaro-go/avscale/logger"
)

var ReuseMemory = true

type Buffer struct {
	Bytes []byte
}

// Pool hands out buffers of the negotiated size. Buffers of a previous
// negotiation are dropped when returned.
type Pool struct {
	sync.Pool
	Properties Properties

	// MaxBufferSize limits what SetProperties accepts; zero means no limit.
	MaxBufferSize uint
}

var _ Allocator = (*Pool)(nil)

func NewPool() *Pool {
	p := &Pool{}
	p.Pool.New = func() any {
		return &Buffer{Bytes: make([]byte, p.Properties.BufferSize)}
	}
	return p
}

func (p *Pool) SetProperties(
	ctx context.Context,
	requested Properties,
) (_ret Properties, _err error) {
	logger.Debugf(ctx, "SetProperties: %s", requested)
	defer func() { logger.Debugf(ctx, "/SetProperties: %s: %v", _ret, _err) }()

	requested = requested.WithDefaults()
	if requested.BufferSize == 0 {
		return Properties{}, fmt.Errorf("the buffer size is not set")
	}
	actual := requested
	if actual.BufferSize > p.MaxBufferSize && p.MaxBufferSize != 0 {
		actual.BufferSize = p.MaxBufferSize
	}
	p.Properties = actual
	return actual, nil
}

func (p *Pool) Get() *Buffer {
	buf := p.Pool.Get().(*Buffer)
	if uint(len(buf.Bytes)) != p.Properties.BufferSize {
		buf.Bytes = make([]byte, p.Properties.BufferSize)
	}
	return buf
}

func (p *Pool) Put(items ...*Buffer) {
	if !ReuseMemory {
		return
	}
	for _, item := range items {
		if uint(len(item.Bytes)) != p.Properties.BufferSize {
			continue
		}
		p.Pool.Put(item)
	}
}
