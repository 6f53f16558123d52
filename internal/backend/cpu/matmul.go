package cpu

import "github.com/born-ml/strided/internal/tensor"

// matmulStrided accumulates one [M, K] @ [K, N] product into the zeroed,
// row-major c.
//
// A[i, k] lives at a[aOffset+i*aRow+k*aCol] and B[k, j] at b[bOffset+k*bRow+j*bCol].
// The loop order is i-k-j so the inner loop streams a row of B; each C[i, j]
// still sums its terms for k = 0..K-1 in order, the same sequence as the naive
// i-j-k loop.
func matmulStrided[T tensor.Numeric](
	c, a, b []T,
	aOffset, bOffset int,
	m, k, n int,
	aRow, aCol, bRow, bCol int,
) {
	for i := 0; i < m; i++ {
		cRow := c[i*n : (i+1)*n]
		aBase := aOffset + i*aRow
		for kIdx := 0; kIdx < k; kIdx++ {
			av := a[aBase+kIdx*aCol]
			bBase := bOffset + kIdx*bRow
			if bCol == 1 {
				bRowData := b[bBase : bBase+n]
				for j, bv := range bRowData {
					cRow[j] += av * bv
				}
				continue
			}
			for j := range cRow {
				cRow[j] += av * b[bBase+j*bCol]
			}
		}
	}
}
