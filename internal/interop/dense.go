package interop

import (
	"fmt"

	"github.com/born-ml/strided/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// ToDense copies a 2-D tensor into a gonum matrix. Elements are widened to float64.
func ToDense(r *tensor.RawTensor) (*mat.Dense, error) {
	if len(r.Shape()) != 2 {
		return nil, fmt.Errorf("to dense: %w: need a 2D tensor, got shape %v", tensor.ErrInvalidShape, r.Shape())
	}
	rows, cols := r.Shape()[0], r.Shape()[1]
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("to dense: %w: gonum matrices cannot be empty, got shape %v", tensor.ErrInvalidShape, r.Shape())
	}
	return mat.NewDense(rows, cols, float64s(r)), nil
}

// ToDenseBatch splits a tensor of rank >= 2 into one gonum matrix per batch
// coordinate, in row-major batch order.
func ToDenseBatch(r *tensor.RawTensor) ([]*mat.Dense, error) {
	shape := r.Shape()
	if len(shape) < 2 {
		return nil, fmt.Errorf("to dense: %w: need at least 2D, got shape %v", tensor.ErrInvalidShape, shape)
	}
	rows, cols := shape[len(shape)-2], shape[len(shape)-1]
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("to dense: %w: gonum matrices cannot be empty, got shape %v", tensor.ErrInvalidShape, shape)
	}

	data := float64s(r)
	size := rows * cols
	batch := len(data) / size
	out := make([]*mat.Dense, batch)
	for i := range out {
		out[i] = mat.NewDense(rows, cols, data[i*size:(i+1)*size:(i+1)*size])
	}
	return out, nil
}

// FromDense copies a gonum matrix into a new tensor of the given dtype,
// narrowing each element with tensor.CastFloat.
func FromDense(m mat.Matrix, dtype tensor.DataType) (*tensor.RawTensor, error) {
	rows, cols := m.Dims()
	return FromDenseBatch([]mat.Matrix{m}, tensor.Shape{rows, cols}, dtype)
}

// FromDenseBatch stacks equally sized gonum matrices into a tensor of the given
// shape, whose trailing two dimensions must match the matrices.
func FromDenseBatch(ms []mat.Matrix, shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if len(shape) < 2 {
		return nil, fmt.Errorf("from dense: %w: need at least 2D, got shape %v", tensor.ErrInvalidShape, shape)
	}
	rows, cols := shape[len(shape)-2], shape[len(shape)-1]
	if want := shape.NumElements() / max(rows*cols, 1); len(ms) != want {
		return nil, fmt.Errorf("from dense: %w: shape %v holds %d matrices, got %d",
			tensor.ErrShapeMismatch, shape, want, len(ms))
	}
	for i, m := range ms {
		if r, c := m.Dims(); r != rows || c != cols {
			return nil, fmt.Errorf("from dense: %w: matrix %d is %dx%d, want %dx%d",
				tensor.ErrShapeMismatch, i, r, c, rows, cols)
		}
	}

	raw, err := tensor.NewRaw(shape, dtype)
	if err != nil {
		return nil, fmt.Errorf("from dense: %w", err)
	}

	switch dtype {
	case tensor.Uint8:
		storeDense(raw.AsUint8(), ms, rows, cols)
	case tensor.Int32:
		storeDense(raw.AsInt32(), ms, rows, cols)
	case tensor.Float32:
		storeDense(raw.AsFloat32(), ms, rows, cols)
	}
	return raw, nil
}

func storeDense[T tensor.Numeric](dst []T, ms []mat.Matrix, rows, cols int) {
	i := 0
	for _, m := range ms {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				dst[i] = tensor.CastFloat[T](m.At(r, c))
				i++
			}
		}
	}
}

// float64s widens r's elements to float64 in row-major order.
func float64s(r *tensor.RawTensor) []float64 {
	out := make([]float64, 0, r.NumElements())
	switch r.DType() {
	case tensor.Uint8:
		out = appendWidened(out, r, tensor.Elements[uint8](r))
	case tensor.Int32:
		out = appendWidened(out, r, tensor.Elements[int32](r))
	case tensor.Float32:
		out = appendWidened(out, r, tensor.Elements[float32](r))
	}
	return out
}

func appendWidened[T tensor.Numeric](out []float64, r *tensor.RawTensor, data []T) []float64 {
	r.ForEachOffset(func(_, off int) {
		out = append(out, float64(data[off]))
	})
	return out
}
