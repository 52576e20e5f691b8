package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomMatchesReferenceSequence(t *testing.T) {
	r := NewRandom(42)
	assert.Equal(t, int32(-1170105035), r.next(32))

	r = NewRandom(42)
	got := make([]int32, 0, 5)
	for i := 0; i < 5; i++ {
		got = append(got, r.Intn(10))
	}
	assert.Equal(t, []int32{0, 3, 8, 4, 0}, got)
}

func TestIntnPanicsOnInvalidBound(t *testing.T) {
	assert.Panics(t, func() { NewRandom(1).Intn(0) })
}

func TestShuffleKnownOrders(t *testing.T) {
	tests := []struct {
		name string
		seed int64
		size int
		want []int
	}{
		{"ten cards", 42, 10, []int{4, 6, 2, 1, 7, 9, 8, 5, 3, 0}},
		{"five cards", 12345, 5, []int{3, 4, 0, 2, 1}},
		{"negative seed", -7, 8, []int{6, 1, 3, 5, 7, 4, 0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.size)
			for i := range items {
				items[i] = i
			}
			Shuffle(items, NewRandom(tt.seed))
			assert.Equal(t, tt.want, items)
		})
	}
}

func TestShuffleSingleAndEmpty(t *testing.T) {
	var empty []int
	Shuffle(empty, NewRandom(3))
	assert.Empty(t, empty)

	one := []int{9}
	Shuffle(one, NewRandom(3))
	assert.Equal(t, []int{9}, one)
}
