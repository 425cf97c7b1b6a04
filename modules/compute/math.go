package compute

import (
	gomath "math"
	"math/big"
)

const (
	// trialDivisionLimit bounds the numbers tested by plain trial division;
	// larger candidates use math/big, which is exact below 2^64.
	trialDivisionLimit = 1e12

	// maxExactFloat is 2^53. Every float64 at or above it is even.
	maxExactFloat = 1 << 53
)

// Fibonacci returns the first n Fibonacci numbers starting 0, 1, 1, 2, ...
func Fibonacci(n int) []int64 {
	if n <= 0 {
		return []int64{}
	}
	seq := make([]int64, n)
	if n > 1 {
		seq[1] = 1
	}
	for i := 2; i < n; i++ {
		seq[i] = seq[i-1] + seq[i-2]
	}
	return seq
}

// IsPrime reports whether n is an integer greater than 1 with no divisors
// other than 1 and itself.
func IsPrime(n float64) bool {
	if n != gomath.Trunc(n) || n <= 1 || gomath.IsInf(n, 0) {
		return false
	}
	if n >= maxExactFloat {
		return false
	}
	v := int64(n)
	if n > trialDivisionLimit {
		return big.NewInt(v).ProbablyPrime(0)
	}
	for i := int64(2); i*i <= v; i++ {
		if v%i == 0 {
			return false
		}
	}
	return true
}

// FilterPrimes returns the prime values in their original order.
func FilterPrimes(values []float64) []int64 {
	primes := make([]int64, 0, len(values))
	for _, v := range values {
		if IsPrime(v) {
			primes = append(primes, int64(v))
		}
	}
	return primes
}

// GCD returns the greatest common divisor of a and b using the Euclidean
// algorithm on floating remainders. GCD(a, 0) is |a|. Non-finite operands
// yield NaN.
func GCD(a, b float64) float64 {
	if !finite(a) || !finite(b) {
		return gomath.NaN()
	}
	for b != 0 {
		a, b = b, gomath.Mod(a, b)
	}
	return gomath.Abs(a)
}

// LCM returns the least common multiple of a and b, or 0 if either is 0.
func LCM(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	return gomath.Abs(a*b) / GCD(a, b)
}

// ReduceLCM folds LCM over values left to right. values must be non-empty.
func ReduceLCM(values []float64) float64 {
	return reduce(values, LCM)
}

// ReduceHCF folds GCD over values left to right. values must be non-empty.
func ReduceHCF(values []float64) float64 {
	return reduce(values, GCD)
}

// reduce applies fn pairwise starting from the first element, which is
// returned unchanged for single-element input.
func reduce(values []float64, fn func(a, b float64) float64) float64 {
	acc := values[0]
	for _, v := range values[1:] {
		acc = fn(acc, v)
	}
	return acc
}

func finite(f float64) bool {
	return !gomath.IsInf(f, 0) && !gomath.IsNaN(f)
}
