package orchestrator

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"ShopMate/app/assistant/comparison"
	"ShopMate/app/assistant/intent"
	"ShopMate/app/assistant/rank"
	"ShopMate/app/assistant/reply"
	"ShopMate/app/assistant/session"
	"ShopMate/app/dal/behavior"
	"ShopMate/app/dal/catalog"
)

// turnState tracks where a turn is in its lifecycle. State is per-turn only;
// the next message for the same session starts over at stateReceived.
type turnState string

const (
	stateReceived       turnState = "received"
	stateLanguageTagged turnState = "language_tagged"
	stateExtracting     turnState = "extracting"
	stateClarifying     turnState = "clarifying"
	stateResolving      turnState = "resolving"
	stateShortfall      turnState = "comparison_shortfall"
	stateComposing      turnState = "composing"
	stateReplied        turnState = "replied"
)

type (
	// CatalogGateway resolves a structured filter to an ordered product list.
	CatalogGateway interface {
		Search(ctx context.Context, filter catalog.Filter) ([]*catalog.Product, error)
	}

	// BehaviorSource is best-effort; a nil or empty aggregate disables
	// personalization for the turn.
	BehaviorSource interface {
		FetchAggregate(ctx context.Context, userId int64) *behavior.Aggregate
	}

	// EntityExtractor produces the turn's entities, never failing.
	EntityExtractor interface {
		Extract(ctx context.Context, req intent.ProviderRequest) *intent.Entities
	}

	// ReplyComposer phrases the final text and the quick replies.
	ReplyComposer interface {
		Compose(ctx context.Context, in reply.Input) (string, []string)
	}

	// ProductIdFilter answers whether a product id may exist in the catalog.
	// False positives are acceptable, false negatives are not.
	ProductIdFilter interface {
		MayExist(ctx context.Context, id int64) bool
	}

	// TurnRecorder receives the analytics event for a completed turn.
	// Implementations must not block the turn.
	TurnRecorder interface {
		RecordTurn(ctx context.Context, evt TurnEvent)
	}
)

// TurnEvent is the analytics record emitted once per completed turn.
type TurnEvent struct {
	SessionId  string    `json:"sessionId"`
	UserId     int64     `json:"userId,omitempty"`
	Intent     string    `json:"intent"`
	Language   string    `json:"language"`
	State      string    `json:"state"`
	ProductCnt int       `json:"productCount"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Result is the outcome of one turn.
type Result struct {
	SessionId          string
	Reply              string
	Products           []*catalog.Product
	ComparisonTable    *comparison.Table
	QuickReplies       []string
	Entities           *intent.Entities
	NeedsClarification bool
}

// Orchestrator sequences a turn: language tagging, extraction, preference
// merge, catalog resolution, optional ranking and comparison, composition.
type Orchestrator struct {
	store      *session.Store
	extractor  EntityExtractor
	catalog    CatalogGateway
	behavior   BehaviorSource
	composer   ReplyComposer
	idFilter   ProductIdFilter
	recorder   TurnRecorder
	categories []string
}

type Option func(*Orchestrator)

func WithBehaviorSource(src BehaviorSource) Option {
	return func(o *Orchestrator) { o.behavior = src }
}

func WithProductIdFilter(f ProductIdFilter) Option {
	return func(o *Orchestrator) { o.idFilter = f }
}

func WithTurnRecorder(r TurnRecorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

func WithCategories(names []string) Option {
	return func(o *Orchestrator) { o.categories = names }
}

func New(store *session.Store, extractor EntityExtractor, gateway CatalogGateway, composer ReplyComposer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:     store,
		extractor: extractor,
		catalog:   gateway,
		composer:  composer,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// HandleTurn runs one message through the pipeline. userId is 0 for
// anonymous sessions. It never returns an error: every failure class inside
// the turn degrades to a usable reply.
func (o *Orchestrator) HandleTurn(ctx context.Context, sessionId string, userId int64, message string) *Result {
	log := logx.WithContext(ctx)
	state := stateReceived
	step := func(next turnState) {
		state = next
		log.Debugf("turn %s: %s", sessionId, state)
	}

	o.store.AppendMessage(sessionId, session.RoleUser, message)

	lang := intent.DetectLanguage(message)
	o.store.SetLanguage(sessionId, lang)
	step(stateLanguageTagged)

	step(stateExtracting)
	entities := o.extractor.Extract(ctx, intent.ProviderRequest{
		Message:    message,
		Language:   lang,
		Summary:    o.store.RecentMessages(sessionId, 6),
		Categories: o.categories,
	})

	if entities.NeedsClarification {
		step(stateClarifying)
		o.store.AppendMessage(sessionId, session.RoleAssistant, entities.ClarificationQuestion)
		o.record(ctx, sessionId, userId, entities, state, 0)
		return &Result{
			SessionId:          sessionId,
			Reply:              entities.ClarificationQuestion,
			Products:           []*catalog.Product{},
			QuickReplies:       []string{},
			Entities:           entities,
			NeedsClarification: true,
		}
	}

	step(stateResolving)
	o.mergePreferences(sessionId, entities)
	snap := o.store.GetOrCreate(sessionId)

	products := o.resolve(ctx, entities, snap)

	var table *comparison.Table
	if entities.Intent == intent.IntentCompare {
		if len(products) < comparison.MinProducts {
			step(stateShortfall)
			text := reply.ShortfallText(lang, len(products))
			o.store.AppendMessage(sessionId, session.RoleAssistant, text)
			o.record(ctx, sessionId, userId, entities, state, len(products))
			return &Result{
				SessionId:    sessionId,
				Reply:        text,
				Products:     products,
				QuickReplies: []string{},
				Entities:     entities,
			}
		}
		table = comparison.Compose(products, entities.ProductType)
	}

	var agg *behavior.Aggregate
	if userId > 0 && o.behavior != nil {
		agg = o.behavior.FetchAggregate(ctx, userId)
	}
	if rankable(entities.Intent) && agg != nil && !agg.Empty() {
		products = rank.Personalize(products, agg)
	}

	step(stateComposing)
	text, quick := o.composer.Compose(ctx, reply.Input{
		Message:    message,
		Entities:   entities,
		Context:    snap,
		Products:   products,
		Behavior:   agg,
		Categories: o.categories,
	})

	o.store.AppendMessage(sessionId, session.RoleAssistant, text)
	for _, p := range products {
		o.store.AddSurfacedProduct(sessionId, p.Id)
	}

	step(stateReplied)
	o.record(ctx, sessionId, userId, entities, state, len(products))
	log.Infof("turn replied: session=%s intent=%s products=%d", sessionId, entities.Intent, len(products))

	return &Result{
		SessionId:       sessionId,
		Reply:           text,
		Products:        products,
		ComparisonTable: table,
		QuickReplies:    quick,
		Entities:        entities,
	}
}

func rankable(in string) bool {
	return in == intent.IntentSearch || in == intent.IntentRecommend
}

func (o *Orchestrator) mergePreferences(sessionId string, entities *intent.Entities) {
	partial := session.Preferences{
		Budget: entities.Budget,
		Brand:  entities.Brand,
	}
	switch {
	case entities.Category != "":
		partial.Category = entities.Category
	case entities.MainCategory != "":
		partial.Category = entities.MainCategory
	}
	if len(entities.Specifications) > 0 {
		partial.Specifications = entities.Specifications
	}
	o.store.MergePreferences(sessionId, partial)
}

// resolve builds the filter and queries the catalog. A failed query is
// absorbed; the turn proceeds with an empty list.
func (o *Orchestrator) resolve(ctx context.Context, entities *intent.Entities, snap session.Context) []*catalog.Product {
	filter := catalog.Filter{
		ProductIds:   o.plausibleIds(ctx, entities.ProductIds),
		SearchTerm:   entities.SearchTerm,
		Category:     entities.Category,
		MainCategory: entities.MainCategory,
		ProductType:  entities.ProductType,
		MinPrice:     entities.MinPrice,
		MaxPrice:     entities.MaxPrice,
		MinRating:    entities.Rating,
		Limit:        catalog.DefaultSearchLimit,
	}
	if filter.MaxPrice == 0 && snap.Preferences.Budget > 0 {
		filter.MaxPrice = snap.Preferences.Budget
	}

	products, err := o.catalog.Search(ctx, filter)
	if err != nil {
		logx.WithContext(ctx).Errorf("catalog search failed: %v", err)
		return []*catalog.Product{}
	}
	if products == nil {
		products = []*catalog.Product{}
	}
	return products
}

// plausibleIds drops requested ids the bloom filter rules out, saving the
// exact lookup for ids that cannot possibly resolve.
func (o *Orchestrator) plausibleIds(ctx context.Context, ids []int64) []int64 {
	if o.idFilter == nil || len(ids) == 0 {
		return ids
	}
	kept := make([]int64, 0, len(ids))
	for _, id := range ids {
		if o.idFilter.MayExist(ctx, id) {
			kept = append(kept, id)
		}
	}
	return kept
}

func (o *Orchestrator) record(ctx context.Context, sessionId string, userId int64, entities *intent.Entities, state turnState, productCnt int) {
	if o.recorder == nil {
		return
	}
	o.recorder.RecordTurn(ctx, TurnEvent{
		SessionId:  sessionId,
		UserId:     userId,
		Intent:     entities.Intent,
		Language:   string(entities.Language),
		State:      string(state),
		ProductCnt: productCnt,
		OccurredAt: time.Now(),
	})
}
