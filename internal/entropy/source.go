package entropy

import (
	"crypto/rand"
	"errors"
	"fmt"
	mrand "math/rand"
	"time"
)

// ErrEntropyFailure is returned when the platform randomness source
// cannot satisfy a read. Callers must treat it as fatal for the whole
// batch; low-entropy output is never substituted silently.
var ErrEntropyFailure = errors.New("entropy source unavailable")

// Source produces raw 32-byte private-key material. A Source belongs to
// exactly one worker and is never shared across goroutines.
type Source interface {
	NextKeyBytes() ([32]byte, error)
}

// Factory builds an independently seeded Source for the given worker
// index. Seeds must not collide even when workers start within the same
// clock tick.
type Factory func(worker int) Source

// Fast returns a PRNG-backed Source seeded from the monotonic clock
// mixed with the worker index. This is the accelerated generation path.
func Fast(worker int) Source {
	return &fastSource{
		rng: mrand.New(mrand.NewSource(seed(time.Now().UnixNano(), worker))),
	}
}

// Secure returns a Source backed by the platform CSPRNG.
func Secure(_ int) Source {
	return secureSource{}
}

type fastSource struct {
	rng *mrand.Rand
}

func (s *fastSource) NextKeyBytes() ([32]byte, error) {
	var b [32]byte
	for i := 0; i < len(b); i += 8 {
		v := s.rng.Uint64()
		b[i] = byte(v)
		b[i+1] = byte(v >> 8)
		b[i+2] = byte(v >> 16)
		b[i+3] = byte(v >> 24)
		b[i+4] = byte(v >> 32)
		b[i+5] = byte(v >> 40)
		b[i+6] = byte(v >> 48)
		b[i+7] = byte(v >> 56)
	}
	return b, nil
}

type secureSource struct{}

func (secureSource) NextKeyBytes() ([32]byte, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return [32]byte{}, fmt.Errorf("%w: %v", ErrEntropyFailure, err)
	}
	return b, nil
}

// seed mixes a clock sample with the worker index through a splitmix64
// finalizer. The raw tick alone is not enough: two workers spawned in
// the same tick would share a stream and emit colliding keys.
func seed(tick int64, worker int) int64 {
	z := uint64(tick) + uint64(worker+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}
