package burst

import (
	"math/rand/v2"
	"time"
)

// Rand 引擎使用的随机源
type Rand interface {
	Float64() float64 // [0, 1)
	IntN(n int) int   // [0, n)
}

// NewRand 以种子创建确定性随机源
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func defaultRand() Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

func uniform(r Rand, lo, hi float64) float64 {
	return r.Float64()*(hi-lo) + lo
}
