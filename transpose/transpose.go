// Package transpose contains matrix-transpose routines used to study
// cache-friendly access patterns. The blocked variant walks the matrices one
// tile at a time so that both the source row and the destination column stay
// resident while a tile is processed.
package transpose

// Basic is a simple row-major transpose, not optimized for the cache.
func Basic(src [][]float64) [][]float64 {
	dst := alloc(src)

	for i := range src {
		for j := range src[i] {
			dst[j][i] = src[i][j]
		}
	}

	return dst
}

// Blocked transposes one blockSize x blockSize tile at a time.
func Blocked(src [][]float64, blockSize int) [][]float64 {
	if blockSize <= 0 {
		panic("block size must be positive")
	}

	dst := alloc(src)
	n := len(src)
	m := 0
	if n > 0 {
		m = len(src[0])
	}

	for ii := 0; ii < n; ii += blockSize {
		for jj := 0; jj < m; jj += blockSize {
			for i := ii; i < min(ii+blockSize, n); i++ {
				for j := jj; j < min(jj+blockSize, m); j++ {
					dst[j][i] = src[i][j]
				}
			}
		}
	}

	return dst
}

// submitBlockSize is tuned for 32-set, 64-byte-block caches: an 8x8 tile of
// doubles spans exactly one block per row.
const submitBlockSize = 8

// Submit is the transpose submitted for grading against the reference
// cache.
func Submit(src [][]float64) [][]float64 {
	return Blocked(src, submitBlockSize)
}

// IsTranspose checks that b is the transpose of a.
func IsTranspose(a, b [][]float64) bool {
	for i := range a {
		for j := range a[i] {
			if len(b) <= j || len(b[j]) <= i || a[i][j] != b[j][i] {
				return false
			}
		}
	}

	return true
}

func alloc(src [][]float64) [][]float64 {
	n := len(src)
	if n == 0 {
		return nil
	}
	m := len(src[0])

	dst := make([][]float64, m)
	for i := range dst {
		dst[i] = make([]float64, n)
	}

	return dst
}
