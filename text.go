package docsearch

import "strings"

// normalizeText replaces every OR marker word in the residual free text with
// the index's native OR operator. The tokenizer already collapsed whitespace
// to single spaces.
func (p *Parser) normalizeText(text string) string {
	if text == "" {
		return ""
	}

	words := strings.Split(text, " ")
	for i, word := range words {
		if word == p.orMarker {
			words[i] = p.orToken
		}
	}
	return strings.Join(words, " ")
}
