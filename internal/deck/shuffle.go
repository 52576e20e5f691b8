package deck

// Shuffle permutes items in place, walking from the end and swapping each
// slot with a random earlier one.
func Shuffle[T any](items []T, rnd *Random) {
	for i := len(items); i > 1; i-- {
		j := rnd.Intn(int32(i))
		items[i-1], items[j] = items[j], items[i-1]
	}
}
