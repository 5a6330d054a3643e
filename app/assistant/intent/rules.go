package intent

import (
	"strings"
	"unicode"

	"ShopMate/app/assistant/session"
)

// keywordRule maps substrings to a candidate intent. Table order is the
// tie-break: the first language whose table matches wins, and within a
// language the first matching entry wins.
type keywordRule struct {
	intent   string
	keywords []string
}

var keywordTables = []struct {
	lang  session.Lang
	rules []keywordRule
}{
	{
		lang: session.LangUK,
		rules: []keywordRule{
			{IntentCompare, []string{"порівняй", "порівняти", "порівняння", "проти"}},
			{IntentRecommend, []string{"порекомендуй", "порадь", "порекомендувати", "запропонуй"}},
			{IntentBudget, []string{"бюджет", "дешев", "недорог"}},
			{IntentQuestion, []string{"чому", "навіщо", "що таке", "яка різниця"}},
			{IntentSearch, []string{"знайди", "покажи", "шукаю"}},
		},
	},
	{
		lang: session.LangEN,
		rules: []keywordRule{
			{IntentCompare, []string{"compare", "difference", "versus", " vs "}},
			{IntentRecommend, []string{"recommend", "suggest", "advise"}},
			{IntentBudget, []string{"budget", "cheap", "affordable"}},
			{IntentQuestion, []string{"why ", "what is", "which is", "how do"}},
			{IntentSearch, []string{"find", "show me", "looking for", "search"}},
		},
	},
}

// DetectByRules runs the per-language keyword pass. The empty string means
// no table matched.
func DetectByRules(message string) string {
	lowered := strings.ToLower(strings.TrimSpace(message))
	if lowered == "" {
		return ""
	}
	for _, table := range keywordTables {
		for _, rule := range table.rules {
			for _, kw := range rule.keywords {
				if strings.Contains(lowered, kw) {
					return rule.intent
				}
			}
		}
	}
	return ""
}

var stopWords = map[session.Lang][]string{
	session.LangEN: {
		"find", "show", "search", "recommend", "suggest", "advise",
		"me", "please", "i", "want", "need", "to", "buy",
		"a", "an", "the", "for", "some", "good", "best",
	},
	session.LangUK: {
		"знайди", "покажи", "порадь", "порекомендуй", "порекомендувати", "запропонуй",
		"хочу", "купити", "мені", "будь", "ласка",
		"для", "на", "з", "якийсь", "добрий", "найкращий",
	},
}

// NormalizeSearchTerm strips command verbs, connectors and generic nouns
// via whole-word, case-insensitive removal. When stripping empties the
// term, the original is kept.
func NormalizeSearchTerm(term string, lang session.Lang) string {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return trimmed
	}

	drop := make(map[string]struct{})
	for _, w := range stopWords[lang] {
		drop[w] = struct{}{}
	}

	kept := make([]string, 0)
	for _, tok := range tokenize(trimmed) {
		if _, ok := drop[strings.ToLower(tok)]; ok {
			continue
		}
		kept = append(kept, tok)
	}

	stripped := strings.TrimSpace(strings.Join(kept, " "))
	if stripped == "" {
		return trimmed
	}
	return stripped
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
