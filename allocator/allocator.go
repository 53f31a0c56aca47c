// allocator.go defines the contract of the output buffer allocator.

// Package allocator provides the buffers the transformed frames are written into.
package allocator

import (
	"context"
	"fmt"
)

// Properties describe the buffers a consumer requests or an allocator provides.
type Properties struct {
	BufferSize uint
	Align      uint
	Count      uint
}

func (p Properties) String() string {
	return fmt.Sprintf("%d×%dB (align: %d)", p.Count, p.BufferSize, p.Align)
}

// WithDefaults returns the properties with a zero alignment and a zero
// buffer count replaced by 1.
func (p Properties) WithDefaults() Properties {
	if p.Align == 0 {
		p.Align = 1
	}
	if p.Count == 0 {
		p.Count = 1
	}
	return p
}

// Allocator negotiates the buffer properties. The returned properties are
// what was actually provided, which may differ from the requested ones.
type Allocator interface {
	SetProperties(ctx context.Context, requested Properties) (Properties, error)
}
