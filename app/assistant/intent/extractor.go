package intent

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"ShopMate/app/assistant/session"
)

// Provider is the external entity-extraction backend. Implementations may
// fail or time out; the extractor absorbs that.
type Provider interface {
	ExtractEntities(ctx context.Context, req ProviderRequest) (*Entities, error)
}

// ProviderRequest carries the turn plus the context the provider prompt
// needs: a short dialogue summary and the known category names.
type ProviderRequest struct {
	Message    string
	Language   session.Lang
	Summary    []session.Message
	Categories []string
}

// Extractor produces one Entities record per turn. The provider path and the
// deterministic fallback converge on the same override pipeline, so the
// merge rules apply identically either way.
type Extractor struct {
	provider Provider
}

func NewExtractor(provider Provider) *Extractor {
	return &Extractor{provider: provider}
}

// Extract never returns an error: provider failure degrades to the keyword
// fallback and the turn proceeds.
func (e *Extractor) Extract(ctx context.Context, req ProviderRequest) *Entities {
	lang := DetectLanguage(req.Message)
	req.Language = lang

	entities := e.fromProvider(ctx, req)
	if entities == nil {
		entities = fallbackExtract(req.Message, lang)
	}
	entities.Language = lang

	ApplyOverrides(req.Message, DetectByRules(req.Message), entities)
	return entities
}

func (e *Extractor) fromProvider(ctx context.Context, req ProviderRequest) *Entities {
	if e.provider == nil {
		return nil
	}
	entities, err := e.provider.ExtractEntities(ctx, req)
	if err != nil {
		logx.WithContext(ctx).Errorf("entity provider failed, using fallback: %v", err)
		return nil
	}
	return entities
}

var currencyAmountRe = regexp.MustCompile(`(?i)(\d+)\s*(?:usd|dollars?|грн|uah)`)

// fallbackExtract is the degraded path: keyword intent plus a currency scan
// for budget. It always yields a usable record.
func fallbackExtract(message string, lang session.Lang) *Entities {
	entities := &Entities{Intent: IntentSearch}

	if ruled := DetectByRules(message); ruled != "" {
		entities.Intent = ruled
	}

	if m := currencyAmountRe.FindStringSubmatch(message); m != nil {
		if amount, err := strconv.ParseFloat(m[1], 64); err == nil {
			entities.Budget = amount
		}
	}

	if entities.Intent == IntentSearch {
		entities.SearchTerm = NormalizeSearchTerm(message, lang)
	}

	if strings.TrimSpace(message) == "" {
		entities.NeedsClarification = true
		entities.ClarificationQuestion = clarificationPrompt(lang)
	}

	return entities
}

func clarificationPrompt(lang session.Lang) string {
	if lang == session.LangUK {
		return "Що саме ви шукаєте?"
	}
	return "What exactly are you looking for?"
}
