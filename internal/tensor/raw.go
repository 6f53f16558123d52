package tensor

import (
	"fmt"
	"math"
	"math/bits"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/born-ml/strided/internal/envconfig"
)

// allocLimit caps the byte size of a single buffer; 0 disables the cap.
var allocLimit atomic.Int64

func init() {
	allocLimit.Store(envconfig.MaxAllocBytes())
}

// SetAllocLimit replaces the allocation cap and returns the previous value.
func SetAllocLimit(n int64) int64 {
	return allocLimit.Swap(n)
}

// tensorBuffer is a reference-counted storage block shared by an owner and its views.
// Its size is fixed at creation.
type tensorBuffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
}

// newTensorBuffer allocates a zeroed buffer with refCount = 1.
func newTensorBuffer(size int) (buf *tensorBuffer, err error) {
	if limit := allocLimit.Load(); limit > 0 && int64(size) > limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d bytes", ErrAllocation, size, limit)
	}

	defer func() {
		// make panics (recoverably) when the runtime refuses the length.
		if r := recover(); r != nil {
			buf, err = nil, fmt.Errorf("%w: %d bytes: %v", ErrAllocation, size, r)
		}
	}()

	buf = &tensorBuffer{data: make([]byte, size)}
	buf.refCount.Store(1)
	return buf, nil
}

// wrapTensorBuffer adopts an existing byte slice without copying.
func wrapTensorBuffer(data []byte) *tensorBuffer {
	buf := &tensorBuffer{data: data}
	buf.refCount.Store(1)
	return buf
}

// addRef increments the reference count (for views).
func (tb *tensorBuffer) addRef() {
	tb.refCount.Add(1)
}

// release decrements the reference count and drops the memory when it reaches 0.
func (tb *tensorBuffer) release() {
	if tb.refCount.Add(-1) == 0 {
		tb.mu.Lock()
		defer tb.mu.Unlock()
		tb.data = nil
	}
}

// RawTensor is the dtype-erased tensor: a buffer plus shape, strides, dtype and offset.
//
// Strides and offset are counted in elements. A RawTensor returned by NewRaw owns
// its buffer; Index, Narrow, Reshape and Clone return views that share it.
type RawTensor struct {
	buffer *tensorBuffer
	shape  Shape
	stride []int
	dtype  DataType
	offset int
	view   bool

	released atomic.Bool
}

// NewRaw allocates a zero-initialized tensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	if !dtype.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDType, int(dtype))
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	byteSize, ok := ByteSizeOf(shape, dtype)
	if !ok {
		return nil, fmt.Errorf("%w: shape %v of %s overflows the address space", ErrAllocation, shape, dtype)
	}

	buf, err := newTensorBuffer(byteSize)
	if err != nil {
		return nil, err
	}

	return &RawTensor{
		buffer: buf,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}, nil
}

// NewRawFromBytes creates an owning tensor over data laid out row-major.
// The slice is adopted without copying when it is suitably aligned for dtype,
// otherwise it is copied.
func NewRawFromBytes(data []byte, shape Shape, dtype DataType) (*RawTensor, error) {
	if !dtype.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDType, int(dtype))
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	byteSize, ok := ByteSizeOf(shape, dtype)
	if !ok || byteSize != len(data) {
		return nil, fmt.Errorf("%w: shape %v of %s needs %d bytes, got %d",
			ErrInvalidShape, shape, dtype, byteSize, len(data))
	}

	var buf *tensorBuffer
	if len(data) == 0 || uintptr(unsafe.Pointer(unsafe.SliceData(data)))%uintptr(dtype.Size()) == 0 {
		buf = wrapTensorBuffer(data)
	} else {
		var err error
		if buf, err = newTensorBuffer(len(data)); err != nil {
			return nil, err
		}
		copy(buf.data, data)
	}

	return &RawTensor{
		buffer: buf,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}, nil
}

// ByteSizeOf returns shape.NumElements() * dtype.Size(), reporting false on overflow.
func ByteSizeOf(shape Shape, dtype DataType) (int, bool) {
	n := uint64(1)
	for _, dim := range shape {
		hi, lo := bits.Mul64(n, uint64(dim))
		if hi != 0 {
			return 0, false
		}
		n = lo
	}
	hi, lo := bits.Mul64(n, uint64(dtype.Size()))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's strides in elements.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// ByteStrides returns the tensor's strides in bytes.
func (r *RawTensor) ByteStrides() []int {
	out := make([]int, len(r.stride))
	for i, s := range r.stride {
		out[i] = s * r.dtype.Size()
	}
	return out
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Offset returns the element offset of the first element inside the buffer.
func (r *RawTensor) Offset() int {
	return r.offset
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the number of bytes addressed by the tensor's elements.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// IsView reports whether the tensor shares storage it did not allocate.
func (r *RawTensor) IsView() bool {
	return r.view
}

// IsContiguous reports whether the elements are laid out row-major without gaps.
// Dimensions of size 1 do not constrain their stride.
func (r *RawTensor) IsContiguous() bool {
	expected := 1
	for i := len(r.shape) - 1; i >= 0; i-- {
		if r.shape[i] == 0 {
			return true
		}
		if r.shape[i] != 1 && r.stride[i] != expected {
			return false
		}
		expected *= r.shape[i]
	}
	return true
}

// Data returns the bytes of a contiguous tensor, starting at its first element.
// WARNING: Direct access to underlying memory shared with every view.
func (r *RawTensor) Data() []byte {
	if !r.IsContiguous() {
		panic("Data() requires a contiguous tensor")
	}
	size := r.dtype.Size()
	return r.buffer.data[r.offset*size : (r.offset+r.NumElements())*size]
}

// AsUint8 interprets a contiguous tensor's data as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (r *RawTensor) AsUint8() []uint8 {
	return asTyped[uint8](r)
}

// AsInt32 interprets a contiguous tensor's data as []int32.
// Panics if the tensor's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 {
	return asTyped[int32](r)
}

// AsFloat32 interprets a contiguous tensor's data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	return asTyped[float32](r)
}

func asTyped[T Numeric](r *RawTensor) []T {
	elems := Elements[T](r)
	if !r.IsContiguous() {
		panic("typed access requires a contiguous tensor")
	}
	return elems[r.offset : r.offset+r.NumElements()]
}

// Elements returns the whole underlying buffer as []T, ignoring shape and offset.
// Index it with Offset, Strides and ForEachOffset. Panics if T does not match the dtype.
func Elements[T Numeric](r *RawTensor) []T {
	if dt := DataTypeOf[T](); dt != r.dtype {
		panic(fmt.Sprintf("tensor dtype is %s, not %s", r.dtype, dt))
	}
	data := r.buffer.data
	if len(data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, length derived from the byte size
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(data))), len(data)/r.dtype.Size())
}

// ElementOffset returns the buffer offset of the element at indices.
func (r *RawTensor) ElementOffset(indices ...int) (int, error) {
	if len(indices) != len(r.shape) {
		return 0, fmt.Errorf("%w: expected %d indices, got %d", ErrIndex, len(r.shape), len(indices))
	}
	off := r.offset
	for i, idx := range indices {
		if idx < 0 || idx >= r.shape[i] {
			return 0, fmt.Errorf("%w: index %d for dimension %d (size %d)", ErrIndex, idx, i, r.shape[i])
		}
		off += idx * r.stride[i]
	}
	return off, nil
}

// Index returns the view r[i] along the leading dimension.
// Mutating the view mutates r.
func (r *RawTensor) Index(i int) (*RawTensor, error) {
	if len(r.shape) == 0 {
		return nil, fmt.Errorf("%w: cannot index a 0-d tensor", ErrIndex)
	}
	if i < 0 || i >= r.shape[0] {
		return nil, fmt.Errorf("%w: index %d for dimension 0 (size %d)", ErrIndex, i, r.shape[0])
	}
	return r.newView(r.shape[1:], r.stride[1:], r.offset+i*r.stride[0]), nil
}

// Narrow returns a view keeping elements [start, start+length) of dimension dim.
// The result is generally not contiguous.
func (r *RawTensor) Narrow(dim, start, length int) (*RawTensor, error) {
	if dim < 0 || dim >= len(r.shape) {
		return nil, fmt.Errorf("%w: dimension %d for %dD tensor", ErrIndex, dim, len(r.shape))
	}
	if start < 0 || length < 0 || start+length > r.shape[dim] {
		return nil, fmt.Errorf("%w: range [%d, %d) for dimension %d (size %d)",
			ErrIndex, start, start+length, dim, r.shape[dim])
	}
	shape := r.shape.Clone()
	shape[dim] = length
	return r.newView(shape, r.stride, r.offset+start*r.stride[dim]), nil
}

// Reshape returns a view with a new shape over the same elements.
// The tensor must be contiguous and the element count must not change.
func (r *RawTensor) Reshape(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != r.NumElements() {
		return nil, fmt.Errorf("%w: cannot reshape %v to %v (different number of elements)",
			ErrInvalidShape, r.shape, shape)
	}
	if !r.IsContiguous() {
		return nil, fmt.Errorf("%w: cannot reshape non-contiguous tensor %v", ErrInvalidShape, r.shape)
	}
	return r.newView(shape, shape.ComputeStrides(), r.offset), nil
}

// Clone returns a view of the whole tensor sharing its buffer.
func (r *RawTensor) Clone() *RawTensor {
	return r.newView(r.shape, r.stride, r.offset)
}

// Contiguous returns an owning row-major copy of the tensor's elements.
func (r *RawTensor) Contiguous() (*RawTensor, error) {
	out, err := NewRaw(r.shape, r.dtype)
	if err != nil {
		return nil, err
	}

	size := r.dtype.Size()
	src := r.buffer.data
	dst := out.buffer.data
	r.ForEachOffset(func(i, off int) {
		copy(dst[i*size:(i+1)*size], src[off*size:(off+1)*size])
	})
	return out, nil
}

func (r *RawTensor) newView(shape Shape, stride []int, offset int) *RawTensor {
	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  shape.Clone(),
		stride: append([]int(nil), stride...),
		dtype:  r.dtype,
		offset: offset,
		view:   true,
	}
}

// SharesBuffer reports whether r and other reference the same storage.
func (r *RawTensor) SharesBuffer(other *RawTensor) bool {
	return r.buffer == other.buffer
}

// Release drops this tensor's reference to the buffer. The memory is dropped
// once the owner and every view have released it.
//
// Releasing the same tensor again is a no-op, so it cannot drop a reference
// held by a view.
func (r *RawTensor) Release() {
	if r.released.CompareAndSwap(false, true) {
		r.buffer.release()
	}
}

// RefCount returns the number of live references to the buffer.
func (r *RawTensor) RefCount() int {
	return int(r.buffer.refCount.Load())
}

// IsUnique returns true if this tensor is the only reference to the buffer.
func (r *RawTensor) IsUnique() bool {
	return r.RefCount() == 1
}
