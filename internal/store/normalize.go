package store

import "strings"

// TitleCase normalizes a categorical label to canonical title case, so
// "SHIPPED", "shipped" and "Shipped" group as one value. Words are split on
// spaces only; punctuation inside a word is left alone.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
