package scoring

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vfg2006/creator-campaign-api/internal/keyword"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// wordCleaner remove tudo que não é letra, número ou espaço.
func wordCleaner() transform.Transformer {
	return runes.Remove(runes.Predicate(func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsSpace(r)
	}))
}

// uniqueWordCount conta palavras distintas depois de remover URLs e pontuação.
func uniqueWordCount(text string) int {
	if text == "" {
		return 0
	}

	// mesma normalização das palavras-chave: NFKC + case folding
	normalized := keyword.Normalize(text)
	normalized = urlPattern.ReplaceAllString(normalized, "")

	cleaned, _, err := transform.String(wordCleaner(), normalized)
	if err != nil {
		return 0
	}

	seen := make(map[string]struct{})
	for _, word := range strings.Fields(cleaned) {
		seen[word] = struct{}{}
	}

	return len(seen)
}

func textLength(text string) int {
	return utf8.RuneCountInString(text)
}
