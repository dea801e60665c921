package registry

// ParseCSS extracts the class and ID tokens declared by a stylesheet, in
// encounter order. It is a selector-level scan, not a full CSS parser:
// declaration blocks and comments are skipped, and every `.class` and
// `#id` token appearing in selector position is collected once.
func ParseCSS(src string) CSSEntry {
	entry := CSSEntry{}
	classSeen := make(map[string]bool)
	idSeen := make(map[string]bool)

	depth := 0
	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		// Skip comments.
		if r == '/' && i+1 < len(runes) && runes[i+1] == '*' {
			end := -1
			for j := i + 2; j+1 < len(runes); j++ {
				if runes[j] == '*' && runes[j+1] == '/' {
					end = j
					break
				}
			}
			if end < 0 {
				break
			}
			i = end + 1
			continue
		}

		switch r {
		case '{':
			depth++
			continue
		case '}':
			if depth > 0 {
				depth--
			}
			continue
		}

		// Tokens inside declaration blocks are property values
		// (e.g. hex colors after '#'), not selectors.
		if depth > 0 {
			continue
		}

		if r != '.' && r != '#' {
			continue
		}

		start := i + 1
		end := start
		for end < len(runes) && isCSSNameRune(runes[end]) {
			end++
		}
		if end > start {
			name := string(runes[start:end])
			if r == '.' {
				if !classSeen[name] {
					classSeen[name] = true
					entry.Classes = append(entry.Classes, name)
				}
			} else {
				if !idSeen[name] {
					idSeen[name] = true
					entry.IDs = append(entry.IDs, name)
				}
			}
		}
		i = end - 1
	}

	return entry
}

func isCSSNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	case r > 0x7f:
		return true
	}
	return false
}
