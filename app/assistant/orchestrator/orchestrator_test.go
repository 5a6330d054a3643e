package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ShopMate/app/assistant/comparison"
	"ShopMate/app/assistant/intent"
	"ShopMate/app/assistant/reply"
	"ShopMate/app/assistant/session"
	"ShopMate/app/dal/behavior"
	"ShopMate/app/dal/catalog"
)

type fakeExtractor struct {
	entities *intent.Entities
}

func (f *fakeExtractor) Extract(ctx context.Context, req intent.ProviderRequest) *intent.Entities {
	out := *f.entities
	out.Language = intent.DetectLanguage(req.Message)
	return &out
}

type fakeCatalog struct {
	products []*catalog.Product
	filters  []catalog.Filter
}

func (f *fakeCatalog) Search(ctx context.Context, filter catalog.Filter) ([]*catalog.Product, error) {
	f.filters = append(f.filters, filter)
	return f.products, nil
}

type fakeBehavior struct {
	agg *behavior.Aggregate
}

func (f *fakeBehavior) FetchAggregate(ctx context.Context, userId int64) *behavior.Aggregate {
	return f.agg
}

type fakeComposer struct {
	text  string
	quick []string
	last  reply.Input
}

func (f *fakeComposer) Compose(ctx context.Context, in reply.Input) (string, []string) {
	f.last = in
	return f.text, f.quick
}

type recordedEvents struct {
	events []TurnEvent
}

func (r *recordedEvents) RecordTurn(ctx context.Context, evt TurnEvent) {
	r.events = append(r.events, evt)
}

type denyAllFilter struct{}

func (denyAllFilter) MayExist(ctx context.Context, id int64) bool { return false }

func newTestOrchestrator(entities *intent.Entities, gateway *fakeCatalog, opts ...Option) (*Orchestrator, *session.Store, *fakeComposer) {
	store := session.NewStore()
	composer := &fakeComposer{text: "here you go", quick: []string{"Show similar products"}}
	orc := New(store, &fakeExtractor{entities: entities}, gateway, composer, opts...)
	return orc, store, composer
}

func TestClarificationShortCircuitsCatalog(t *testing.T) {
	gateway := &fakeCatalog{}
	orc, store, _ := newTestOrchestrator(&intent.Entities{
		Intent:                intent.IntentSearch,
		NeedsClarification:    true,
		ClarificationQuestion: "Which brand do you prefer?",
	}, gateway)

	res := orc.HandleTurn(context.Background(), "sess-1", 0, "something vague")

	assert.True(t, res.NeedsClarification)
	assert.Equal(t, "Which brand do you prefer?", res.Reply)
	assert.Empty(t, res.Products)
	assert.Empty(t, gateway.filters, "catalog must not be queried on clarification")

	snap := store.GetOrCreate("sess-1")
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, session.RoleUser, snap.Messages[0].Role)
	assert.Equal(t, session.RoleAssistant, snap.Messages[1].Role)
	assert.Equal(t, "Which brand do you prefer?", snap.Messages[1].Content)
}

func TestComparisonShortfall(t *testing.T) {
	gateway := &fakeCatalog{products: []*catalog.Product{{Id: 999, Name: "Only one"}}}
	events := &recordedEvents{}
	orc, _, _ := newTestOrchestrator(&intent.Entities{
		Intent:     intent.IntentCompare,
		ProductIds: []int64{999, 888},
	}, gateway, WithTurnRecorder(events))

	res := orc.HandleTurn(context.Background(), "sess-1", 0, "compare 999 and 888")

	assert.False(t, res.NeedsClarification)
	assert.Nil(t, res.ComparisonTable)
	assert.NotEmpty(t, res.Reply)
	require.Len(t, res.Products, 1)
	assert.Equal(t, int64(999), res.Products[0].Id)

	require.Len(t, events.events, 1)
	assert.Equal(t, "comparison_shortfall", events.events[0].State)
}

func TestCompareHappyPath(t *testing.T) {
	gateway := &fakeCatalog{products: []*catalog.Product{
		{Id: 101, Name: "iPhone 15"},
		{Id: 205, Name: "Galaxy S24"},
	}}
	orc, store, _ := newTestOrchestrator(&intent.Entities{
		Intent:     intent.IntentCompare,
		ProductIds: []int64{101, 205},
	}, gateway)

	res := orc.HandleTurn(context.Background(), "sess-1", 0, "compare 101 and 205")

	require.NotNil(t, res.ComparisonTable)
	assert.Len(t, res.ComparisonTable.Products, comparison.MinProducts)

	snap := store.GetOrCreate("sess-1")
	assert.Contains(t, snap.SurfacedProducts, int64(101))
	assert.Contains(t, snap.SurfacedProducts, int64(205))
}

func TestSearchTurnMergesPreferencesIntoFilter(t *testing.T) {
	gateway := &fakeCatalog{products: []*catalog.Product{{Id: 1, Name: "ThinkPad"}}}
	orc, store, _ := newTestOrchestrator(&intent.Entities{
		Intent:     intent.IntentSearch,
		SearchTerm: "laptop",
		Budget:     800,
		Category:   "Laptops",
	}, gateway)

	res := orc.HandleTurn(context.Background(), "sess-1", 0, "find a laptop, I have 800 USD")

	require.Len(t, gateway.filters, 1)
	filter := gateway.filters[0]
	assert.Equal(t, "laptop", filter.SearchTerm)
	assert.Equal(t, float64(800), filter.MaxPrice, "budget preference becomes the price cap")
	assert.Equal(t, catalog.DefaultSearchLimit, filter.Limit)

	snap := store.GetOrCreate("sess-1")
	assert.Equal(t, float64(800), snap.Preferences.Budget)
	assert.Equal(t, "Laptops", snap.Preferences.Category)
	assert.Equal(t, "here you go", res.Reply)
}

func TestExplicitMaxPriceBeatsBudgetPreference(t *testing.T) {
	gateway := &fakeCatalog{}
	orc, _, _ := newTestOrchestrator(&intent.Entities{
		Intent:   intent.IntentSearch,
		MaxPrice: 300,
		Budget:   800,
	}, gateway)

	orc.HandleTurn(context.Background(), "sess-1", 0, "under 300")

	require.Len(t, gateway.filters, 1)
	assert.Equal(t, float64(300), gateway.filters[0].MaxPrice)
}

func TestPersonalizationAppliesForKnownUser(t *testing.T) {
	gateway := &fakeCatalog{products: []*catalog.Product{
		{Id: 1, Name: "plain", Rating: 3},
		{Id: 2, Name: "clicked", Rating: 3},
	}}
	src := &fakeBehavior{agg: &behavior.Aggregate{ClickedProducts: []int64{2}}}
	orc, _, _ := newTestOrchestrator(&intent.Entities{
		Intent:     intent.IntentSearch,
		SearchTerm: "anything",
	}, gateway, WithBehaviorSource(src))

	res := orc.HandleTurn(context.Background(), "sess-1", 42, "anything")

	require.Len(t, res.Products, 2)
	assert.Equal(t, int64(2), res.Products[0].Id)
}

func TestAnonymousTurnSkipsPersonalization(t *testing.T) {
	gateway := &fakeCatalog{products: []*catalog.Product{
		{Id: 1, Name: "plain", Rating: 3},
		{Id: 2, Name: "clicked", Rating: 3},
	}}
	src := &fakeBehavior{agg: &behavior.Aggregate{ClickedProducts: []int64{2}}}
	orc, _, _ := newTestOrchestrator(&intent.Entities{
		Intent:     intent.IntentSearch,
		SearchTerm: "anything",
	}, gateway, WithBehaviorSource(src))

	res := orc.HandleTurn(context.Background(), "sess-1", 0, "anything")

	require.Len(t, res.Products, 2)
	assert.Equal(t, int64(1), res.Products[0].Id)
}

func TestIdFilterPrunesImplausibleIds(t *testing.T) {
	gateway := &fakeCatalog{}
	orc, _, _ := newTestOrchestrator(&intent.Entities{
		Intent:     intent.IntentCompare,
		ProductIds: []int64{999, 888},
	}, gateway, WithProductIdFilter(denyAllFilter{}))

	orc.HandleTurn(context.Background(), "sess-1", 0, "compare 999 and 888")

	require.Len(t, gateway.filters, 1)
	assert.Empty(t, gateway.filters[0].ProductIds)
}

func TestLanguageIsPersistedOnContext(t *testing.T) {
	gateway := &fakeCatalog{}
	orc, store, _ := newTestOrchestrator(&intent.Entities{Intent: intent.IntentSearch}, gateway)

	orc.HandleTurn(context.Background(), "sess-1", 0, "знайди ноутбук")
	assert.Equal(t, session.LangUK, store.GetOrCreate("sess-1").Language)

	orc.HandleTurn(context.Background(), "sess-1", 0, "find a laptop")
	assert.Equal(t, session.LangEN, store.GetOrCreate("sess-1").Language)
}

func TestReplyAppendedAndEventRecorded(t *testing.T) {
	gateway := &fakeCatalog{products: []*catalog.Product{{Id: 5, Name: "Mouse"}}}
	events := &recordedEvents{}
	orc, store, _ := newTestOrchestrator(&intent.Entities{
		Intent:     intent.IntentSearch,
		SearchTerm: "mouse",
	}, gateway, WithTurnRecorder(events))

	orc.HandleTurn(context.Background(), "sess-1", 7, "find a mouse")

	snap := store.GetOrCreate("sess-1")
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, "here you go", snap.Messages[1].Content)
	assert.Contains(t, snap.SurfacedProducts, int64(5))

	require.Len(t, events.events, 1)
	evt := events.events[0]
	assert.Equal(t, "replied", evt.State)
	assert.Equal(t, int64(7), evt.UserId)
	assert.Equal(t, 1, evt.ProductCnt)
}
