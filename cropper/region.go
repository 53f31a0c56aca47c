package cropper

// region is a rectangle copied row by row from a source plane
// into a tightly packed destination plane.
type region struct {
	srcOffset int
	srcStride int
	dstOffset int
	rowBytes  int
	rows      int
}

func (r *region) copy(dst, src []byte) {
	s := r.srcOffset
	d := r.dstOffset
	for y := 0; y < r.rows; y++ {
		copy(dst[d:d+r.rowBytes], src[s:s+r.rowBytes])
		s += r.srcStride
		d += r.rowBytes
	}
}
