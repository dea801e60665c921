package compiler

// selectorToken is one class or ID token scanned out of a CSS selector
// argument.
type selectorToken struct {
	Name  string
	IsID  bool
	Index int // rune offset of the token's sigil within the selector text
}

// selectorDelimiters end a class/ID token.
func isSelectorDelimiter(r rune) bool {
	switch r {
	case '.', '#', ' ', '\t', '>', '+', '~', ':', '[', ']', '(', ')', ',':
		return true
	}
	return false
}

// scanSelectorTokens extracts the class and ID tokens from a selector in
// source order. Element names, combinators, pseudo-classes, and attribute
// parts are skipped; only tokens the CSS registry can answer for are
// returned.
func scanSelectorTokens(selector string) []selectorToken {
	var tokens []selectorToken

	runes := []rune(selector)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '#' {
			continue
		}

		start := i + 1
		end := start
		for end < len(runes) && !isSelectorDelimiter(runes[end]) {
			end++
		}
		if end > start {
			tokens = append(tokens, selectorToken{
				Name:  string(runes[start:end]),
				IsID:  r == '#',
				Index: i,
			})
		}
		i = end - 1
	}

	return tokens
}
