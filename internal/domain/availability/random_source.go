package availability

import (
	"crypto/rand"
	"math/big"
	"sync"
	"time"
)

// Intn draws a uniform integer in [0, n).
type Intn interface {
	Intn(n int) int
}

// RandomSource is the placeholder inventory: an unweighted random status per date.
// Repeated generations over the same dates are not expected to agree.
type RandomSource struct {
	mu  sync.Mutex
	rnd Intn
}

// NewRandomSource uses rnd when provided and crypto/rand otherwise.
func NewRandomSource(rnd Intn) *RandomSource {
	if rnd == nil {
		rnd = cryptoRand{}
	}
	return &RandomSource{rnd: rnd}
}

func (s *RandomSource) StatusOn(time.Time) Status {
	s.mu.Lock()
	idx := s.rnd.Intn(len(Statuses))
	s.mu.Unlock()
	if idx < 0 || idx >= len(Statuses) {
		return Unavailable
	}
	return Statuses[idx]
}

type cryptoRand struct{}

func (cryptoRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

var _ Source = (*RandomSource)(nil)
