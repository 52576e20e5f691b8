package deck

const (
	multiplier = 0x5DEECE66D
	addend     = 0xB
	mask       = (int64(1) << 48) - 1
)

// Random is a 48-bit linear congruential generator. Seeded identically it
// produces the same sequence as the generator the reference outputs were
// recorded with, so shuffles stay reproducible across implementations.
type Random struct {
	seed int64
}

// NewRandom creates a generator from seed.
func NewRandom(seed int64) *Random {
	return &Random{seed: (seed ^ multiplier) & mask}
}

func (r *Random) next(bits uint) int32 {
	r.seed = (r.seed*multiplier + addend) & mask
	return int32(r.seed >> (48 - bits))
}

// Intn returns a value in [0, bound). It panics if bound is not positive.
func (r *Random) Intn(bound int32) int32 {
	if bound <= 0 {
		panic("deck: bound must be positive")
	}

	if bound&(-bound) == bound {
		return int32((int64(bound) * int64(r.next(31))) >> 31)
	}

	for {
		bits := r.next(31)
		val := bits % bound
		if bits-val+(bound-1) >= 0 {
			return val
		}
	}
}
