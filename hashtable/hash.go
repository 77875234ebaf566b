package hashtable

import (
	"hash/maphash"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// primes are the bucket counts a table steps through. Each is roughly twice
// the previous one.
var primes = [...]uint64{
	53, 97, 193, 389, 769,
	1543, 3079, 6151, 12289, 24593,
	49157, 98317, 196613, 393241, 786433,
	1572869, 3145739, 6291469, 12582917, 25165843,
	50331653, 100663319, 201326611, 402653189, 805306457,
	1610612741, 3221225473, 4294967291,
}

// nextPrime returns the smallest bucket count not below n, or the largest
// one when n exceeds every step.
func nextPrime(n int) int {
	if n <= 0 {
		return int(primes[0])
	}
	i, _ := slices.BinarySearch(primes[:], uint64(n))
	if i == len(primes) {
		i--
	}
	return int(primes[i]) //nolint:gosec // bounded by the table
}

// MaxBucketCount is the largest bucket count a table grows to.
func MaxBucketCount() int { return int(primes[len(primes)-1]) } //nolint:gosec // constant

// StringHasher hashes strings with xxhash. Unlike the default hasher it is
// stable across processes.
func StringHasher(s string) uint64 {
	return xxhash.Sum64String(s)
}

// BytesHasher hashes byte slices with xxhash.
func BytesHasher(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// ComparableHasher returns a hasher for comparable keys seeded with a fresh
// random seed.
func ComparableHasher[K comparable]() func(K) uint64 {
	seed := maphash.MakeSeed()
	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}

func equalComparable[K comparable](a, b K) bool { return a == b }
