package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	n := 1 // Scalar has 1 element
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that no dimension is negative. Zero-sized dimensions are allowed.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("%w: dimension %d is %d (must be >= 0)", ErrInvalidShape, i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape, in elements.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastBatchShape broadcasts the leading (batch) dimensions of two matmul
// operands. The trailing two dimensions of each shape belong to the matrices and
// are not part of the test. Batch dimensions are aligned from the right and a
// missing dimension counts as 1.
//
// Examples:
//
//	[2, 5, 8]    x [2, 8, 5]    -> [2]
//	[1, 2, 5, 8] x [1, 2, 8, 5] -> [1, 2]
//	[3, 1, 5, 8] x [4, 8, 5]    -> [3, 4]
//	[2, 5, 8]    x [3, 8, 5]    -> ErrShapeMismatch
func BroadcastBatchShape(a, b Shape) (Shape, error) {
	aBatch := batchDims(a)
	bBatch := batchDims(b)

	n := max(len(aBatch), len(bBatch))
	result := make(Shape, n)
	for i := 0; i < n; i++ {
		aDim := dimFromRight(aBatch, i)
		bDim := dimFromRight(bBatch, i)

		switch {
		case aDim == bDim:
			result[n-1-i] = aDim
		case aDim == 1:
			result[n-1-i] = bDim
		case bDim == 1:
			result[n-1-i] = aDim
		default:
			return nil, fmt.Errorf("%w: %v vs %v (batch dimension %d: %d vs %d)",
				ErrShapeMismatch, a, b, n-1-i, aDim, bDim)
		}
	}
	return result, nil
}

// MatMulOutputShape returns the shape of a @ b.
//
// Both operands need rank >= 2 and a[-1] == b[-2]; the result is the broadcast
// batch shape followed by [a[-2], b[-1]].
func MatMulOutputShape(a, b Shape) (Shape, error) {
	if len(a) < 2 || len(b) < 2 {
		return nil, fmt.Errorf("%w: operands must be at least 2D, got %dD and %dD",
			ErrMatMulShape, len(a), len(b))
	}
	if a[len(a)-1] != b[len(b)-2] {
		return nil, fmt.Errorf("%w: inner dimensions differ: %v @ %v (%d vs %d)",
			ErrMatMulShape, a, b, a[len(a)-1], b[len(b)-2])
	}

	batch, err := BroadcastBatchShape(a, b)
	if err != nil {
		return nil, err
	}

	out := make(Shape, 0, len(batch)+2)
	out = append(out, batch...)
	return append(out, a[len(a)-2], b[len(b)-1]), nil
}

// batchDims returns the leading rank-2 dimensions, or nil for rank < 2.
func batchDims(s Shape) Shape {
	if len(s) < 2 {
		return nil
	}
	return s[:len(s)-2]
}

// dimFromRight returns s[len(s)-1-i], or 1 when the dimension is missing.
func dimFromRight(s Shape, i int) int {
	idx := len(s) - 1 - i
	if idx < 0 {
		return 1
	}
	return s[idx]
}
