package sentiment

import (
	"regexp"
	"strings"
)

var cleanPattern = regexp.MustCompile(`(@[A-Za-z0-9]+)|([^0-9A-Za-z \t])|(\w+://\S+)`)

// CleanText strips mentions, links and punctuation and collapses whitespace.
func CleanText(text string) string {
	return strings.Join(strings.Fields(cleanPattern.ReplaceAllString(text, " ")), " ")
}
