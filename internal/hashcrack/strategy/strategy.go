package strategy

// Strategy derives candidate passwords from a dictionary word.
type Strategy interface {
	// Candidates calls yield once per candidate until yield returns false.
	// The word is never modified.
	Candidates(word string, yield func(candidate string) bool)
	// Count returns how many candidates Candidates produces for word.
	Count(word string) int
	Name() string
}
