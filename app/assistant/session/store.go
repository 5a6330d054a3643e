package session

import (
	"hash/fnv"
	"sync"
	"time"
)

const (
	// Message log cap per context; oldest entries drop first.
	maxMessages = 20

	shardCount = 32
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

type Lang string

const (
	LangEN Lang = "en"
	LangUK Lang = "uk"
)

type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Preferences accumulate across turns. Merges are shallow: a field is
// overwritten only when the incoming partial sets it.
type Preferences struct {
	Budget         float64        `json:"budget,omitempty"`
	Category       string         `json:"category,omitempty"`
	Brand          string         `json:"brand,omitempty"`
	Specifications map[string]any `json:"specifications,omitempty"`
}

// Context is the per-session dialogue state. There is exactly one per
// session id at any time; it lives for process uptime only.
type Context struct {
	SessionId        string
	Messages         []Message
	Preferences      Preferences
	SurfacedProducts map[int64]struct{}
	Language         Lang
}

// Store is a process-wide keyed store of dialogue contexts. Mutations on
// the same session id are serialized; different ids land on independent
// shards and do not block each other.
type Store struct {
	shards [shardCount]shard
}

type shard struct {
	mu       sync.Mutex
	contexts map[string]*Context
}

func NewStore() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i].contexts = make(map[string]*Context)
	}
	return s
}

func (s *Store) shardFor(sessionId string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionId))
	return &s.shards[h.Sum32()%shardCount]
}

func emptyContext(sessionId string) *Context {
	return &Context{
		SessionId:        sessionId,
		Messages:         make([]Message, 0),
		SurfacedProducts: make(map[int64]struct{}),
		Language:         LangEN,
	}
}

// GetOrCreate returns a snapshot of the context, creating an empty one when
// absent. It never fails.
func (s *Store) GetOrCreate(sessionId string) Context {
	sh := s.shardFor(sessionId)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	return snapshot(sh.locked(sessionId))
}

func (sh *shard) locked(sessionId string) *Context {
	ctx, ok := sh.contexts[sessionId]
	if !ok {
		ctx = emptyContext(sessionId)
		sh.contexts[sessionId] = ctx
	}
	return ctx
}

// AppendMessage appends with a server-assigned timestamp and truncates the
// log to the most recent entries, preserving order.
func (s *Store) AppendMessage(sessionId string, role Role, content string) {
	sh := s.shardFor(sessionId)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	ctx := sh.locked(sessionId)
	ctx.Messages = append(ctx.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	if len(ctx.Messages) > maxMessages {
		ctx.Messages = append(ctx.Messages[:0:0], ctx.Messages[len(ctx.Messages)-maxMessages:]...)
	}
}

// MergePreferences shallow-merges the partial: set fields win, unset fields
// keep their previous value. Specification keys merge individually.
func (s *Store) MergePreferences(sessionId string, partial Preferences) {
	sh := s.shardFor(sessionId)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	ctx := sh.locked(sessionId)
	if partial.Budget > 0 {
		ctx.Preferences.Budget = partial.Budget
	}
	if partial.Category != "" {
		ctx.Preferences.Category = partial.Category
	}
	if partial.Brand != "" {
		ctx.Preferences.Brand = partial.Brand
	}
	if len(partial.Specifications) > 0 {
		if ctx.Preferences.Specifications == nil {
			ctx.Preferences.Specifications = make(map[string]any, len(partial.Specifications))
		}
		for k, v := range partial.Specifications {
			ctx.Preferences.Specifications[k] = v
		}
	}
}

func (s *Store) SetLanguage(sessionId string, lang Lang) {
	sh := s.shardFor(sessionId)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.locked(sessionId).Language = lang
}

// AddSurfacedProduct records a product id shown to the user. Idempotent.
func (s *Store) AddSurfacedProduct(sessionId string, productId int64) {
	sh := s.shardFor(sessionId)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.locked(sessionId).SurfacedProducts[productId] = struct{}{}
}

// Clear removes the context entirely. The next access starts from an empty
// context.
func (s *Store) Clear(sessionId string) {
	sh := s.shardFor(sessionId)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	delete(sh.contexts, sessionId)
}

// RecentMessages returns the last n messages in order without mutating the
// context.
func (s *Store) RecentMessages(sessionId string, n int) []Message {
	sh := s.shardFor(sessionId)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	msgs := sh.locked(sessionId).Messages
	if n > len(msgs) {
		n = len(msgs)
	}
	out := make([]Message, n)
	copy(out, msgs[len(msgs)-n:])
	return out
}

func snapshot(ctx *Context) Context {
	out := Context{
		SessionId:   ctx.SessionId,
		Preferences: ctx.Preferences,
		Language:    ctx.Language,
	}
	out.Messages = make([]Message, len(ctx.Messages))
	copy(out.Messages, ctx.Messages)
	out.SurfacedProducts = make(map[int64]struct{}, len(ctx.SurfacedProducts))
	for id := range ctx.SurfacedProducts {
		out.SurfacedProducts[id] = struct{}{}
	}
	if ctx.Preferences.Specifications != nil {
		out.Preferences.Specifications = make(map[string]any, len(ctx.Preferences.Specifications))
		for k, v := range ctx.Preferences.Specifications {
			out.Preferences.Specifications[k] = v
		}
	}
	return out
}
