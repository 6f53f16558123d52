package interop

import (
	"testing"

	"github.com/born-ml/strided/internal/backend/cpu"
	"github.com/born-ml/strided/internal/parallel"
	"github.com/born-ml/strided/internal/tensor"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend() *cpu.CPUBackend {
	return cpu.NewWithConfig(parallel.Sequential())
}

func TestToArrayContiguousIsZeroCopy(t *testing.T) {
	raw, err := newBackend().Fill(tensor.Shape{2, 3}, tensor.Int32, 5)
	require.NoError(t, err)

	arr, err := ToArray(raw)
	require.NoError(t, err)

	assert.True(t, arr.Borrowed)
	assert.Equal(t, []int{2, 3}, arr.Shape)
	assert.Equal(t, []int{12, 4}, arr.Strides)
	assert.Equal(t, "int32", arr.DType)
	assert.Len(t, arr.Data, 24)

	ts, err := arr.TypeStr()
	require.NoError(t, err)
	assert.Equal(t, "<i4", ts)

	// Writing through the tensor is visible in the exported bytes.
	raw.AsInt32()[0] = 0x01020304
	assert.Equal(t, raw.Data()[:4], arr.Data[:4])
}

func TestToArrayOfIndexedView(t *testing.T) {
	raw, _ := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Uint8)
	copy(raw.AsUint8(), []uint8{1, 2, 3, 4})

	row, _ := raw.Index(1)
	arr, err := ToArray(row)
	require.NoError(t, err)

	assert.True(t, arr.Borrowed)
	assert.Equal(t, []byte{3, 4}, arr.Data)
	assert.Equal(t, []int{1}, arr.Strides)
}

func TestToArrayStridedViewCopies(t *testing.T) {
	raw, _ := tensor.NewRaw(tensor.Shape{3, 4}, tensor.Float32)
	for i := range raw.AsFloat32() {
		raw.AsFloat32()[i] = float32(i)
	}
	cols, _ := raw.Narrow(1, 1, 2)

	arr, err := ToArray(cols)
	require.NoError(t, err)
	assert.False(t, arr.Borrowed)
	assert.Equal(t, []int{8, 4}, arr.Strides)

	back, err := FromArray(arr)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 5, 6, 9, 10}, back.AsFloat32())
}

func TestArrayRoundTrip(t *testing.T) {
	backend := newBackend()

	for _, dtype := range []tensor.DataType{tensor.Uint8, tensor.Int32, tensor.Float32} {
		t.Run(dtype.String(), func(t *testing.T) {
			raw, err := backend.Fill(tensor.Shape{2, 3, 4}, dtype, 0)
			require.NoError(t, err)
			backend.AddScalarInPlace(raw, 3)
			first, _ := raw.Index(0)
			backend.MulScalarInPlace(first, 7)

			arr, err := ToArray(raw)
			require.NoError(t, err)
			back, err := FromArray(arr)
			require.NoError(t, err)

			assert.Equal(t, raw.Shape(), back.Shape())
			assert.Equal(t, raw.DType(), back.DType())
			if diff := cmp.Diff(raw.Data(), back.Data()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromArrayTypeStrings(t *testing.T) {
	arr := &Array{
		Data:  []byte{0, 0, 128, 63, 0, 0, 0, 64},
		Shape: []int{2},
		DType: "<f4",
	}
	raw, err := FromArray(arr)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, raw.AsFloat32())
}

func TestFromArrayStrided(t *testing.T) {
	// A 2x2 uint8 matrix stored column-major inside a 4-byte buffer.
	arr := &Array{
		Data:    []byte{1, 3, 2, 4},
		Shape:   []int{2, 2},
		Strides: []int{1, 2},
		DType:   "uint8",
	}
	raw, err := FromArray(arr)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 2, 3, 4}, raw.AsUint8())

	// Broadcast-style zero stride repeats a row.
	arr = &Array{
		Data:    []byte{9, 8},
		Shape:   []int{3, 2},
		Strides: []int{0, 1},
		DType:   "|u1",
	}
	raw, err = FromArray(arr)
	require.NoError(t, err)
	assert.Equal(t, []uint8{9, 8, 9, 8, 9, 8}, raw.AsUint8())
}

func TestFromArrayErrors(t *testing.T) {
	tests := []struct {
		name string
		arr  *Array
		want error
	}{
		{
			"unsupported dtype",
			&Array{Data: make([]byte, 16), Shape: []int{2}, DType: "float64"},
			tensor.ErrUnsupportedDType,
		},
		{
			"unsupported typestr",
			&Array{Data: make([]byte, 16), Shape: []int{2}, DType: "<f8"},
			tensor.ErrUnsupportedDType,
		},
		{
			"negative shape",
			&Array{Data: make([]byte, 4), Shape: []int{-1}, DType: "uint8"},
			tensor.ErrInvalidShape,
		},
		{
			"short buffer",
			&Array{Data: make([]byte, 7), Shape: []int{2}, DType: "int32"},
			tensor.ErrInvalidShape,
		},
		{
			"stride out of bounds",
			&Array{Data: make([]byte, 8), Shape: []int{2, 2}, Strides: []int{8, 4}, DType: "int32"},
			tensor.ErrInvalidShape,
		},
		{
			"element count overflows",
			&Array{Data: make([]byte, 16), Shape: []int{1 << 61, 3}, DType: "int32"},
			tensor.ErrInvalidShape,
		},
		{
			"stride span overflows",
			&Array{Data: make([]byte, 16), Shape: []int{3, 2}, Strides: []int{1 << 62, 4}, DType: "int32"},
			tensor.ErrInvalidShape,
		},
		{
			"stride sum exceeds buffer",
			&Array{Data: make([]byte, 16), Shape: []int{2, 2}, Strides: []int{12, 8}, DType: "int32"},
			tensor.ErrInvalidShape,
		},
		{
			"misaligned stride",
			&Array{Data: make([]byte, 16), Shape: []int{2}, Strides: []int{3}, DType: "int32"},
			tensor.ErrInvalidShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromArray(tt.arr)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseDType(t *testing.T) {
	for name, want := range map[string]tensor.DataType{
		"|u1": tensor.Uint8, "<i4": tensor.Int32, "<f4": tensor.Float32,
		"uint8": tensor.Uint8, "int32": tensor.Int32, "float32": tensor.Float32,
	} {
		got, err := ParseDType(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}
