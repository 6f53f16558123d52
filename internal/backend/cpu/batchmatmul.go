package cpu

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/strided/internal/parallel"
	"github.com/born-ml/strided/internal/tensor"
)

// MatMul performs batched matrix multiplication.
//
// The last two dimensions are treated as matrix dimensions and every leading
// dimension as a batch dimension:
//
//	[M, K]       @ [K, N]       -> [M, N]
//	[B, M, K]    @ [B, K, N]    -> [B, M, N]
//	[B, H, M, K] @ [B, H, K, N] -> [B, H, M, N]
//	[1, M, K]    @ [B, K, N]    -> [B, M, N]   (size-1 batch reused)
//
// Operands may be strided views. The result is a new contiguous tensor that
// never aliases either input. Accumulation uses the dtype's native arithmetic,
// so integer products wrap at the element width.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if a.DType() != b.DType() {
		return nil, fmt.Errorf("matmul: %w: %s vs %s", tensor.ErrDTypeMismatch, a.DType(), b.DType())
	}

	outShape, err := tensor.MatMulOutputShape(a.Shape(), b.Shape())
	if err != nil {
		return nil, fmt.Errorf("matmul: %w", err)
	}

	result, err := tensor.NewRaw(outShape, a.DType())
	if err != nil {
		return nil, fmt.Errorf("matmul: failed to create result tensor: %w", err)
	}

	if cpu.parallel.Enabled {
		slog.Debug("matmul", "a", a.Shape(), "b", b.Shape(), "workers", cpu.parallel.NumWorkers)
	}

	// Dispatch to type-specific implementation
	switch a.DType() {
	case tensor.Uint8:
		batchMatmul[uint8](result, a, b, cpu.parallel)
	case tensor.Int32:
		batchMatmul[int32](result, a, b, cpu.parallel)
	case tensor.Float32:
		batchMatmul[float32](result, a, b, cpu.parallel)
	}

	return result, nil
}

// batchMatmul computes c = a @ b for every batch coordinate of c.
// c must be a fresh, zeroed, contiguous tensor of the broadcast output shape.
func batchMatmul[T tensor.Numeric](c, a, b *tensor.RawTensor, cfg parallel.Config) {
	cShape := c.Shape()
	ndim := len(cShape)
	batch := cShape[:ndim-2]
	m, n := cShape[ndim-2], cShape[ndim-1]
	k := a.Shape()[len(a.Shape())-1]

	aStrides, bStrides := a.Strides(), b.Strides()
	aRow, aCol := aStrides[len(aStrides)-2], aStrides[len(aStrides)-1]
	bRow, bCol := bStrides[len(bStrides)-2], bStrides[len(bStrides)-1]

	// Size-1 batch dimensions get stride 0, so their single slice is reused.
	aBatch := a.BroadcastStrides(batch)
	bBatch := b.BroadcastStrides(batch)

	aData := tensor.Elements[T](a)
	bData := tensor.Elements[T](b)
	cData := tensor.Elements[T](c)
	matrixSizeC := m * n

	// Each batch writes a disjoint slice of c.
	parallel.For(batch.NumElements(), func(bi int) {
		aOffset, bOffset := a.Offset(), b.Offset()
		rem := bi
		for d := len(batch) - 1; d >= 0; d-- {
			coord := rem % batch[d]
			rem /= batch[d]
			aOffset += coord * aBatch[d]
			bOffset += coord * bBatch[d]
		}

		matmulStrided(
			cData[bi*matrixSizeC:(bi+1)*matrixSizeC],
			aData, bData,
			aOffset, bOffset,
			m, k, n,
			aRow, aCol, bRow, bCol,
		)
	}, cfg)
}
