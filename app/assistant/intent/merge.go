package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// The hybrid rule/provider merge is an ordered list of override rules, not
// nested conditionals, so the precedence stays auditable and each rule can
// be tested in isolation.

type mergeState struct {
	message    string
	lowered    string
	ruleIntent string
	entities   *Entities
}

type overrideRule struct {
	name  string
	apply func(*mergeState)
}

var overrideRules = []overrideRule{
	{"rule result beats generic search", applyRuleIntent},
	{"two ids plus connector force compare", applyCompareForce},
	{"budget phrase pins max price", applyBudgetPhrase},
	{"clarification requires a question", applyClarificationInvariant},
	{"strip stop words from search term", applySearchTermNormalize},
}

// ApplyOverrides runs the deterministic merge passes, in order, over the
// entities produced by the provider or the fallback.
func ApplyOverrides(message, ruleIntent string, entities *Entities) {
	st := &mergeState{
		message:    message,
		lowered:    strings.ToLower(message),
		ruleIntent: ruleIntent,
		entities:   entities,
	}
	for _, rule := range overrideRules {
		rule.apply(st)
	}
}

func applyRuleIntent(st *mergeState) {
	switch st.ruleIntent {
	case IntentCompare, IntentRecommend, IntentBudget, IntentQuestion:
	default:
		return
	}
	if st.entities.Intent == "" || st.entities.Intent == IntentSearch {
		st.entities.Intent = st.ruleIntent
	}
}

var compareConnectors = map[string]struct{}{
	"compare": {}, "vs": {}, "versus": {}, "and": {},
	"порівняй": {}, "порівняти": {}, "та": {}, "і": {},
}

func applyCompareForce(st *mergeState) {
	ids := numericTokens(st.message)
	if len(ids) < 2 {
		return
	}

	connected := false
	for _, tok := range tokenize(st.lowered) {
		if _, ok := compareConnectors[tok]; ok {
			connected = true
			break
		}
	}
	if !connected {
		return
	}

	// all ids are kept for lookup; the composer picks the first two
	st.entities.Intent = IntentCompare
	st.entities.ProductIds = ids
}

func numericTokens(message string) []int64 {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0, 2)
	for _, tok := range tokenize(message) {
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		ids = append(ids, n)
	}
	return ids
}

var budgetPhraseRe = regexp.MustCompile(`(?i)(?:under|below|до)\s+(\d+)`)

func applyBudgetPhrase(st *mergeState) {
	m := budgetPhraseRe.FindStringSubmatch(st.message)
	if m == nil {
		return
	}
	max, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return
	}

	// the phrase-derived bound wins over any provider-derived price
	st.entities.MaxPrice = max
	if st.entities.Intent == "" || st.entities.Intent == IntentSearch {
		st.entities.Intent = IntentBudget
	}
}

func applyClarificationInvariant(st *mergeState) {
	if st.entities.NeedsClarification && strings.TrimSpace(st.entities.ClarificationQuestion) == "" {
		st.entities.NeedsClarification = false
	}
	if !st.entities.NeedsClarification {
		st.entities.ClarificationQuestion = ""
	}
}

func applySearchTermNormalize(st *mergeState) {
	term := st.entities.SearchTerm
	if term == "" {
		return
	}
	// drop an embedded budget phrase before stop-word stripping so that
	// "laptop under 500" normalizes to "laptop"
	cleaned := budgetPhraseRe.ReplaceAllString(term, " ")
	normalized := NormalizeSearchTerm(cleaned, DetectLanguage(st.message))
	if strings.TrimSpace(normalized) == "" {
		return
	}
	st.entities.SearchTerm = normalized
}
