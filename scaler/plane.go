// plane.go implements the per-plane resampling kernels.

package scaler

import (
	"github.com/xaionaro-go/avscale/types"
)

const (
	fracBits = 16
	fracOne  = 1 << fracBits
)

// axisMap maps every destination coordinate onto the source one(s).
// Offsets are in bytes, relative to the beginning of the plane (rows)
// or of the row (columns).
type axisMap struct {
	offset0 []int
	offset1 []int
	frac    []uint32
}

// plane scales a single packed or planar component of a frame.
// All the lookup tables are built once on configuration, so
// the scaling itself never allocates.
type plane struct {
	srcOffset int
	dstOffset int
	srcSize   int
	dstSize   int
	dstStride int
	channels  int
	identity  bool
	cols      axisMap
	rows      axisMap
}

func newPlane(
	src types.Resolution,
	dst types.Resolution,
	channels int,
	srcOffset int,
	dstOffset int,
	interpolation Interpolation,
) plane {
	srcStride := int(src.Width) * channels
	dstStride := int(dst.Width) * channels
	p := plane{
		srcOffset: srcOffset,
		dstOffset: dstOffset,
		srcSize:   srcStride * int(src.Height),
		dstSize:   dstStride * int(dst.Height),
		dstStride: dstStride,
		channels:  channels,
		identity:  src == dst,
	}
	switch interpolation {
	case InterpolationBilinear:
		p.cols = newBilinearAxis(int(src.Width), int(dst.Width), channels)
		p.rows = newBilinearAxis(int(src.Height), int(dst.Height), srcStride)
	default:
		p.cols = newNearestAxis(int(src.Width), int(dst.Width), channels)
		p.rows = newNearestAxis(int(src.Height), int(dst.Height), srcStride)
	}
	return p
}

// newNearestAxis samples the source at the centers of the destination
// pixels: src = (2*dst+1)*srcLen / (2*dstLen).
func newNearestAxis(srcLen, dstLen, unit int) axisMap {
	m := axisMap{offset0: make([]int, dstLen)}
	srcLen64, dstLen2 := uint64(srcLen), uint64(dstLen)*2
	for d := 0; d < dstLen; d++ {
		s := (2*uint64(d) + 1) * srcLen64 / dstLen2
		m.offset0[d] = int(s) * unit
	}
	return m
}

func newBilinearAxis(srcLen, dstLen, unit int) axisMap {
	m := axisMap{
		offset0: make([]int, dstLen),
		offset1: make([]int, dstLen),
		frac:    make([]uint32, dstLen),
	}
	for d := 0; d < dstLen; d++ {
		// the center of the destination pixel in source coordinates, 16.16
		pos := int64((2*uint64(d)+1)*uint64(srcLen)*fracOne/(uint64(dstLen)*2)) - fracOne/2
		if pos < 0 {
			pos = 0
		}
		s0 := int(pos >> fracBits)
		frac := uint32(pos & (fracOne - 1))
		if s0 >= srcLen-1 {
			s0 = srcLen - 1
			frac = 0
		}
		s1 := s0 + 1
		if s1 > srcLen-1 {
			s1 = srcLen - 1
		}
		m.offset0[d] = s0 * unit
		m.offset1[d] = s1 * unit
		m.frac[d] = frac
	}
	return m
}

func (p *plane) scale(dst, src []byte) {
	src = src[p.srcOffset : p.srcOffset+p.srcSize]
	dst = dst[p.dstOffset : p.dstOffset+p.dstSize]
	switch {
	case p.identity:
		copy(dst, src)
	case p.rows.frac != nil:
		p.scaleBilinear(dst, src)
	default:
		p.scaleNearest(dst, src)
	}
}

func (p *plane) scaleNearest(dst, src []byte) {
	channels := p.channels
	for y, rowOffset := range p.rows.offset0 {
		dstRow := dst[y*p.dstStride : (y+1)*p.dstStride]
		srcRow := src[rowOffset:]
		for x, colOffset := range p.cols.offset0 {
			copy(dstRow[x*channels:(x+1)*channels], srcRow[colOffset:colOffset+channels])
		}
	}
}

func (p *plane) scaleBilinear(dst, src []byte) {
	channels := p.channels
	for y := range p.rows.offset0 {
		dstRow := dst[y*p.dstStride : (y+1)*p.dstStride]
		row0 := src[p.rows.offset0[y]:]
		row1 := src[p.rows.offset1[y]:]
		yWeight := p.rows.frac[y]
		for x := range p.cols.offset0 {
			c0, c1 := p.cols.offset0[x], p.cols.offset1[x]
			xWeight := p.cols.frac[x]
			for c := 0; c < channels; c++ {
				top := lerp(row0[c0+c], row0[c1+c], xWeight)
				bottom := lerp(row1[c0+c], row1[c1+c], xWeight)
				dstRow[x*channels+c] = byte(lerp32(top, bottom, yWeight) >> fracBits)
			}
		}
	}
}

// lerp returns the interpolated value in 16.16 fixed point.
func lerp(a, b byte, weight uint32) uint32 {
	return uint32(a)*(fracOne-weight) + uint32(b)*weight
}

func lerp32(a, b uint32, weight uint32) uint32 {
	return uint32((uint64(a)*uint64(fracOne-weight) + uint64(b)*uint64(weight)) >> fracBits)
}
