package cpu

import (
	"fmt"

	"github.com/born-ml/strided/internal/tensor"
)

// Fill allocates a tensor and writes value, narrowed to dtype, into every element.
func (cpu *CPUBackend) Fill(shape tensor.Shape, dtype tensor.DataType, value float64) (*tensor.RawTensor, error) {
	raw, err := tensor.NewRaw(shape, dtype)
	if err != nil {
		return nil, fmt.Errorf("fill: %w", err)
	}
	if value == 0 {
		return raw, nil // Data is already zero-initialized
	}

	switch dtype {
	case tensor.Uint8:
		fillTyped(raw.AsUint8(), tensor.CastFloat[uint8](value))
	case tensor.Int32:
		fillTyped(raw.AsInt32(), tensor.CastFloat[int32](value))
	case tensor.Float32:
		fillTyped(raw.AsFloat32(), tensor.CastFloat[float32](value))
	}
	return raw, nil
}

// Ones allocates a tensor filled with 1.
func (cpu *CPUBackend) Ones(shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	return cpu.Fill(shape, dtype, 1)
}

// Zeros allocates a tensor filled with 0.
func (cpu *CPUBackend) Zeros(shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	return cpu.Fill(shape, dtype, 0)
}

func fillTyped[T tensor.Numeric](data []T, value T) {
	for i := range data {
		data[i] = value
	}
}
