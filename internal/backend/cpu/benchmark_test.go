package cpu

import (
	"testing"

	"github.com/born-ml/strided/internal/parallel"
	"github.com/born-ml/strided/internal/tensor"
)

func benchmarkMatMul(b *testing.B, backend *CPUBackend, dtype tensor.DataType, aShape, bShape tensor.Shape) {
	b.Helper()
	x, err := backend.Fill(aShape, dtype, 2)
	if err != nil {
		b.Fatal(err)
	}
	y, err := backend.Fill(bShape, dtype, 4)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := backend.MatMul(x, y); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMatMul_Small_Int32(b *testing.B) {
	benchmarkMatMul(b, newTestBackend(), tensor.Int32, tensor.Shape{1, 2, 5, 8}, tensor.Shape{1, 2, 8, 5})
}

func BenchmarkMatMul_Large_Int32(b *testing.B) {
	benchmarkMatMul(b, newTestBackend(), tensor.Int32, tensor.Shape{10, 20, 50, 80}, tensor.Shape{10, 20, 80, 50})
}

func BenchmarkMatMul_Large_Float32(b *testing.B) {
	benchmarkMatMul(b, newTestBackend(), tensor.Float32, tensor.Shape{10, 20, 50, 80}, tensor.Shape{10, 20, 80, 50})
}

func BenchmarkMatMul_Large_Float32_Parallel(b *testing.B) {
	benchmarkMatMul(b, NewWithConfig(parallel.WithWorkers(4)), tensor.Float32,
		tensor.Shape{10, 20, 50, 80}, tensor.Shape{10, 20, 80, 50})
}

func BenchmarkMulScalarInPlace_View(b *testing.B) {
	backend := newTestBackend()
	x, _ := backend.Ones(tensor.Shape{64, 256}, tensor.Float32)
	view, _ := x.Narrow(1, 0, 128)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		backend.MulScalarInPlace(view, 1.0001)
	}
}
