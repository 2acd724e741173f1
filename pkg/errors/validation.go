package errors

import "math"

// ValidateDimensions checks grid construction parameters.
// size and divisions must be positive and divisions must divide size exactly.
func ValidateDimensions(size, divisions int) error {
	if size <= 0 {
		return New(ErrCodeInvalidConfiguration, "size must be positive, got %d", size)
	}
	if divisions <= 0 {
		return New(ErrCodeInvalidConfiguration, "divisions must be positive, got %d", divisions)
	}
	if size%divisions != 0 {
		return New(ErrCodeInvalidConfiguration, "divisions %d does not divide size %d", divisions, size)
	}
	return nil
}

// ValidateProbability checks that p is a usable probability in [0, 1].
func ValidateProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return New(ErrCodeInvalidConfiguration, "on probability must be within [0, 1], got %v", p)
	}
	return nil
}

// ValidateBits checks that s holds exactly n characters, each '0' or '1'.
// name identifies the offending value in the returned error.
func ValidateBits(name string, s string, n int) error {
	if len(s) != n {
		return New(ErrCodeMalformedEncoding, "%s has length %d, want %d", name, len(s), n)
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return New(ErrCodeMalformedEncoding, "%s has invalid character %q at %d", name, s[i], i)
		}
	}
	return nil
}
