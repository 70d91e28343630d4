// Package keyword compila as palavras-chave de uma campanha em regras de
// correspondência sobre o texto dos posts.
package keyword

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

const sigils = "$@#"

// Fronteiras Unicode: letras, dígitos e underscore são caracteres de palavra.
const (
	leftGuard  = `(?:^|[^\p{L}\p{N}_])`
	rightGuard = `(?:$|[^\p{L}\p{N}_])`
)

type RuleKind string

const (
	RuleSigil RuleKind = "sigil"
	RuleWord  RuleKind = "word"
)

type Rule struct {
	Keyword string
	Kind    RuleKind
	pattern *regexp.Regexp
}

// Matcher é imutável depois de compilado e pode ser compartilhado entre goroutines.
type Matcher struct {
	rules []Rule
}

// Normalize aplica NFKC e case folding.
func Normalize(text string) string {
	return cases.Fold().String(norm.NFKC.String(text))
}

func Compile(keywords []string) *Matcher {
	m := &Matcher{}
	seen := make(map[string]struct{}, len(keywords))

	for _, raw := range keywords {
		kw := Normalize(strings.TrimSpace(raw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}

		m.rules = append(m.rules, compileRule(kw))
	}

	return m
}

func compileRule(kw string) Rule {
	kind := RuleWord
	if strings.ContainsRune(sigils, rune(kw[0])) {
		kind = RuleSigil
	}

	parts := strings.Fields(kw)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}

	expr := `(?i)` + leftGuard + strings.Join(parts, `\s+`) + rightGuard

	return Rule{
		Keyword: kw,
		Kind:    kind,
		pattern: regexp.MustCompile(expr),
	}
}

// Matches retorna true se qualquer regra casar com o texto.
func (m *Matcher) Matches(text string) bool {
	if m == nil || len(m.rules) == 0 || text == "" {
		return false
	}

	normalized := Normalize(text)
	for _, rule := range m.rules {
		if rule.pattern.MatchString(normalized) {
			return true
		}
	}

	return false
}

func (m *Matcher) Rules() []Rule {
	return m.rules
}

func (m *Matcher) Empty() bool {
	return m == nil || len(m.rules) == 0
}
