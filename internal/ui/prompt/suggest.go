package prompt

import (
	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the candidates returned by Suggest.
const maxSuggestions = 3

// Suggest returns up to three names that fuzzy-match input, best first.
// Each match carries the positions of the matched characters.
func Suggest(input string, names []string) fuzzy.Matches {
	if input == "" {
		return nil
	}

	matches := fuzzy.Find(input, names)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	return matches
}
