package zutil

import "strings"

// MakeTextList joins items into a human-readable English list with an
// Oxford comma.
func MakeTextList(items []string) string {
	if len(items) < 1 {
		return ""
	}
	if len(items) == 1 {
		return items[0]
	}
	if len(items) == 2 {
		return items[0] + " or " + items[1]
	}

	cp := make([]string, len(items))
	copy(cp, items)
	cp[len(cp)-1] = "or " + cp[len(cp)-1]
	return strings.Join(cp, ", ")
}

// ArticleFor returns "a" or "an" based on whether s would be pronounced
// starting with a vowel sound, optionally capitalized.
func ArticleFor(s string, capital bool) string {
	article := "a"
	if len(s) > 0 && strings.ContainsRune("aeiouAEIOU", rune(s[0])) {
		article = "an"
	}
	if capital {
		return strings.ToUpper(article[:1]) + article[1:]
	}
	return article
}
