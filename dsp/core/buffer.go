package core

// EnsureLen returns buf resliced to n, reusing its capacity when it fits.
// Contents past the old length are unspecified.
func EnsureLen[T any](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}
