// Package randutil derives reproducible random sources from a match seed.
package randutil

import rand "math/rand/v2"

const weyl = 0x9e3779b97f4a7c15

// New returns the source for stream 0 of seed. The dealer uses it.
func New(seed int64) *rand.Rand {
	return Stream(seed, 0)
}

// Stream returns an independent source for the given stream of seed, so
// every consumer of one match seed (dealer, builtin agents) draws its own
// sequence and replaying the seed replays all of them.
func Stream(seed int64, stream uint64) *rand.Rand {
	base := uint64(seed) + stream*weyl*2
	return rand.New(rand.NewPCG(splitmix(base), splitmix(base+weyl)))
}

// splitmix is the SplitMix64 finalizer.
func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
