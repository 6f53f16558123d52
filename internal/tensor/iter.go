package tensor

// ForEachOffset calls fn for every element in row-major order with the element's
// logical position i and its offset into the buffer.
func (r *RawTensor) ForEachOffset(fn func(i, off int)) {
	n := r.NumElements()
	if n == 0 {
		return
	}

	if r.IsContiguous() {
		for i := 0; i < n; i++ {
			fn(i, r.offset+i)
		}
		return
	}

	ndim := len(r.shape)
	index := make([]int, ndim)
	off := r.offset
	for i := 0; i < n; i++ {
		fn(i, off)

		// Odometer increment from the last dimension.
		for d := ndim - 1; d >= 0; d-- {
			index[d]++
			off += r.stride[d]
			if index[d] < r.shape[d] {
				break
			}
			off -= index[d] * r.stride[d]
			index[d] = 0
		}
	}
}

// BroadcastStrides returns the strides of r for iterating over an output with
// the given batch shape: dimensions of size 1 and missing leading dimensions get
// stride 0. Only the leading rank-2 dimensions of r take part.
func (r *RawTensor) BroadcastStrides(batch Shape) []int {
	own := batchDims(r.shape)
	strides := make([]int, len(batch))
	shift := len(batch) - len(own)
	for i := range batch {
		j := i - shift
		if j < 0 || own[j] == 1 {
			continue
		}
		strides[i] = r.stride[j]
	}
	return strides
}
