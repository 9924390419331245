package driven

// Shuffler permutes n elements in place through swap.
// The signature matches rand.Shuffle so the standard source can be passed directly.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// ShuffleFunc adapts a function to the Shuffler interface.
type ShuffleFunc func(n int, swap func(i, j int))

// Shuffle calls f(n, swap).
func (f ShuffleFunc) Shuffle(n int, swap func(i, j int)) {
	f(n, swap)
}
