package includes

// Start returns the position at which a forward scan over n elements begins
// for the start offset from. A negative offset counts back from the end.
// The result is clamped to [0, n].
func Start(n, from int) int {
	if n <= 0 {
		return 0
	}
	if from >= 0 {
		return min(from, n)
	}
	// n+from cannot overflow: n > 0 and from < 0.
	return max(n+from, 0)
}

// Index returns the index of the first element of s that is equal to v
// under same-value-zero equality, or -1 if there is none.
func Index[S ~[]E, E comparable](s S, v E) int {
	return IndexFrom(s, v, 0)
}

// IndexFrom is like Index but begins the scan at Start(len(s), from).
func IndexFrom[S ~[]E, E comparable](s S, v E, from int) int {
	for i := Start(len(s), from); i < len(s); i++ {
		if SameValueZero(s[i], v) {
			return i
		}
	}
	return -1
}

// Contains reports whether v is present in s. Unlike slices.Contains it
// finds NaN.
func Contains[S ~[]E, E comparable](s S, v E) bool {
	return IndexFrom(s, v, 0) >= 0
}

// ContainsFrom reports whether v is present in s at or after the start
// offset from. A negative offset counts back from the end of s.
func ContainsFrom[S ~[]E, E comparable](s S, v E, from int) bool {
	return IndexFrom(s, v, from) >= 0
}
