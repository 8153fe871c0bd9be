package compare

import "math"

// maxUlps is the tolerance used for float equality: two floats compare
// equal when they are at most this many representable values apart.
// Four ULPs accepts the rounding error of a handful of arithmetic
// operations without masking genuine differences.
const maxUlps = 4

// float64Bias maps the sign-magnitude bit pattern of a float64 onto a
// biased unsigned scale where adjacent floats differ by exactly one.
// Negative numbers occupy the lower half of the scale, positive numbers
// the upper half, and -0.0 and +0.0 land on the same point.
func float64Bias(bits uint64) uint64 {
	const signBit = uint64(1) << 63
	if bits&signBit != 0 {
		return ^bits + 1
	}
	return signBit | bits
}

func float32Bias(bits uint32) uint32 {
	const signBit = uint32(1) << 31
	if bits&signBit != 0 {
		return ^bits + 1
	}
	return signBit | bits
}

// float64Distance returns how many representable float64 values separate
// a and b. Callers must reject NaN before calling.
func float64Distance(a, b float64) uint64 {
	ba := float64Bias(math.Float64bits(a))
	bb := float64Bias(math.Float64bits(b))
	if ba > bb {
		return ba - bb
	}
	return bb - ba
}

func float32Distance(a, b float32) uint32 {
	ba := float32Bias(math.Float32bits(a))
	bb := float32Bias(math.Float32bits(b))
	if ba > bb {
		return ba - bb
	}
	return bb - ba
}

// equalFloat64 reports ULP-tolerant equality.
// NaN never compares equal, not even to itself.
func equalFloat64(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return float64Distance(a, b) <= maxUlps
}

func equalFloat32(a, b float32) bool {
	if isNaN32(a) || isNaN32(b) {
		return false
	}
	return float32Distance(a, b) <= maxUlps
}

func isNaN32(f float32) bool {
	return f != f
}

// compareFloat64 orders two float64 values three ways.
// Values within the ULP tolerance compare equal. NaN sorts before every
// number, and two NaNs compare unequal so that Eq always fails on NaN.
func compareFloat64(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 1
	case aNaN:
		return -1
	case bNaN:
		return 1
	}
	if float64Distance(a, b) <= maxUlps {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

func compareFloat32(a, b float32) int {
	aNaN, bNaN := isNaN32(a), isNaN32(b)
	switch {
	case aNaN && bNaN:
		return 1
	case aNaN:
		return -1
	case bNaN:
		return 1
	}
	if float32Distance(a, b) <= maxUlps {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}
