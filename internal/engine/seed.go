package engine

import (
	"hash/fnv"
	"math/rand"
	"os"
	"time"
)

// NewSeed mixes the wall clock, a hash of the host name and the process id
// so that concurrent runs on different hosts draw different sequences.
func NewSeed() int64 {
	now := time.Now()
	x := now.Unix() ^ int64(now.Nanosecond())

	host, err := os.Hostname()
	if err == nil {
		h := fnv.New64a()
		_, _ = h.Write([]byte(host))
		x ^= int64(h.Sum64())
	}
	x ^= int64(os.Getpid()) << 32

	if x == 0 {
		x = 1
	}
	return x
}

// deriveSeed mixes a parent seed and a stream id into an independent seed
// using the SplitMix64 finalizer.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// streamRNG returns the generator for one (component, arrangement) stream.
func streamRNG(seed int64, component, arrangement int) *rand.Rand {
	s := deriveSeed(deriveSeed(seed, uint64(component)), uint64(arrangement))
	return rand.New(rand.NewSource(s))
}
