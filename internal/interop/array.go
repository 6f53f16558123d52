package interop

import (
	"fmt"
	"math/bits"
	"slices"
	"strings"

	"github.com/born-ml/strided/internal/tensor"
)

// Array describes a dense array by its raw bytes.
//
// Data starts at the first element. Strides are in bytes, one per dimension.
type Array struct {
	Data    []byte
	Shape   []int
	Strides []int
	DType   string

	// Borrowed is true when Data aliases the tensor's storage.
	Borrowed bool
}

// TypeStr returns the array-interface type string of the array's dtype
// ("|u1", "<i4", "<f4").
func (a *Array) TypeStr() (string, error) {
	dt, err := ParseDType(a.DType)
	if err != nil {
		return "", err
	}
	return typeStr(dt), nil
}

// ParseDType accepts a dtype name ("int32") or an array-interface type string ("<i4").
func ParseDType(name string) (tensor.DataType, error) {
	switch strings.TrimSpace(name) {
	case "|u1", "u1":
		return tensor.Uint8, nil
	case "<i4", "=i4", "i4":
		return tensor.Int32, nil
	case "<f4", "=f4", "f4":
		return tensor.Float32, nil
	}
	return tensor.ParseDataType(name)
}

func typeStr(dt tensor.DataType) string {
	switch dt {
	case tensor.Uint8:
		return "|u1"
	case tensor.Int32:
		return "<i4"
	default:
		return "<f4"
	}
}

// ToArray exports r. A contiguous tensor is exported without copying; a strided
// view is first copied into fresh row-major storage.
func ToArray(r *tensor.RawTensor) (*Array, error) {
	if !r.DType().Valid() {
		return nil, fmt.Errorf("export: %w: %s", tensor.ErrUnsupportedDType, r.DType())
	}

	src, borrowed := r, true
	if !r.IsContiguous() {
		dense, err := r.Contiguous()
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		src, borrowed = dense, false
	}

	shape := append([]int(nil), src.Shape()...)
	return &Array{
		Data:     src.Data(),
		Shape:    shape,
		Strides:  byteStrides(shape, src.DType().Size()),
		DType:    src.DType().String(),
		Borrowed: borrowed,
	}, nil
}

// FromArray imports a. Row-major arrays are adopted without copying (see
// tensor.NewRawFromBytes); any other stride pattern is copied.
func FromArray(a *Array) (*tensor.RawTensor, error) {
	dt, err := ParseDType(a.DType)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	shape := tensor.Shape(a.Shape)
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}

	byteSize, ok := tensor.ByteSizeOf(shape, dt)
	if !ok {
		return nil, fmt.Errorf("import: %w: shape %v of %s overflows the address space",
			tensor.ErrInvalidShape, shape, dt)
	}

	size := dt.Size()
	rowMajor := byteStrides(shape, size)

	if a.Strides == nil || slices.Equal(a.Strides, rowMajor) || byteSize == 0 {
		if len(a.Data) < byteSize {
			return nil, fmt.Errorf("import: %w: shape %v of %s needs %d bytes, got %d",
				tensor.ErrInvalidShape, shape, dt, byteSize, len(a.Data))
		}
		raw, err := tensor.NewRawFromBytes(a.Data[:byteSize], shape, dt)
		if err != nil {
			return nil, fmt.Errorf("import: %w", err)
		}
		return raw, nil
	}

	if err := checkStrides(a, shape, size); err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}

	raw, err := tensor.NewRaw(shape, dt)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	copyStrided(raw.Data(), a.Data, shape, a.Strides, size)
	return raw, nil
}

// checkStrides verifies that every element addressed by a lies inside a.Data.
func checkStrides(a *Array, shape tensor.Shape, size int) error {
	if len(a.Strides) != len(shape) {
		return fmt.Errorf("%w: %d strides for %dD shape", tensor.ErrInvalidShape, len(a.Strides), len(shape))
	}
	// Byte just past the last addressed element; every step is bounded by len(a.Data).
	end := uint64(size)
	limit := uint64(len(a.Data))
	for i, s := range a.Strides {
		if s < 0 || s%size != 0 {
			return fmt.Errorf("%w: stride %d of dimension %d is not a non-negative multiple of %d",
				tensor.ErrInvalidShape, s, i, size)
		}
		hi, span := bits.Mul64(uint64(shape[i]-1), uint64(s))
		if hi != 0 || span > limit {
			return fmt.Errorf("%w: stride %d of dimension %d (size %d) addresses beyond buffer of %d bytes",
				tensor.ErrInvalidShape, s, i, shape[i], len(a.Data))
		}
		end += span
	}
	if end > limit {
		return fmt.Errorf("%w: strides %v address byte %d beyond buffer of %d bytes",
			tensor.ErrInvalidShape, a.Strides, end, len(a.Data))
	}
	return nil
}

// copyStrided gathers elements addressed by byte strides into row-major dst.
func copyStrided(dst, src []byte, shape tensor.Shape, strides []int, size int) {
	index := make([]int, len(shape))
	off := 0
	for i := 0; i < shape.NumElements(); i++ {
		copy(dst[i*size:(i+1)*size], src[off:off+size])
		for d := len(shape) - 1; d >= 0; d-- {
			index[d]++
			off += strides[d]
			if index[d] < shape[d] {
				break
			}
			off -= index[d] * strides[d]
			index[d] = 0
		}
	}
}

func byteStrides(shape tensor.Shape, size int) []int {
	strides := shape.ComputeStrides()
	for i := range strides {
		strides[i] *= size
	}
	return strides
}
