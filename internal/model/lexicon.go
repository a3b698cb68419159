package model

// Lexicon is the word list a game is played against
type Lexicon interface {
	// IsValidWord reports whether word is in the word list
	IsValidWord(word string) bool
	// Anagrams returns every word using exactly the given letters, '?' being
	// a blank that can stand for any letter
	Anagrams(letters string) []string
	// PatternMatch returns every word matching pattern, where '?' matches
	// one letter and '*' matches any run of letters
	PatternMatch(pattern string) ([]string, error)
}
