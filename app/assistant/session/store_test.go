package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	s := NewStore()

	first := s.GetOrCreate("sess-1")
	second := s.GetOrCreate("sess-1")

	assert.Equal(t, first.SessionId, second.SessionId)
	assert.Empty(t, second.Messages)
	assert.Empty(t, second.SurfacedProducts)
	assert.Equal(t, LangEN, second.Language)
	assert.Zero(t, second.Preferences.Budget)
}

func TestAppendMessageCapsAtTwenty(t *testing.T) {
	s := NewStore()

	for i := 0; i < 30; i++ {
		s.AppendMessage("sess-1", RoleUser, fmt.Sprintf("msg-%d", i))
	}

	snap := s.GetOrCreate("sess-1")
	require.Len(t, snap.Messages, 20)
	assert.Equal(t, "msg-10", snap.Messages[0].Content)
	assert.Equal(t, "msg-29", snap.Messages[19].Content)
	for _, m := range snap.Messages {
		assert.False(t, m.Timestamp.IsZero())
	}
}

func TestMergePreferencesKeepsUnsetFields(t *testing.T) {
	s := NewStore()

	s.MergePreferences("sess-1", Preferences{Budget: 500, Category: "Laptops"})
	s.MergePreferences("sess-1", Preferences{Category: "Phones"})

	snap := s.GetOrCreate("sess-1")
	assert.Equal(t, float64(500), snap.Preferences.Budget)
	assert.Equal(t, "Phones", snap.Preferences.Category)
}

func TestMergePreferencesSpecificationsMergePerKey(t *testing.T) {
	s := NewStore()

	s.MergePreferences("sess-1", Preferences{Specifications: map[string]any{"ram": "16GB", "color": "black"}})
	s.MergePreferences("sess-1", Preferences{Specifications: map[string]any{"ram": "32GB"}})

	snap := s.GetOrCreate("sess-1")
	assert.Equal(t, "32GB", snap.Preferences.Specifications["ram"])
	assert.Equal(t, "black", snap.Preferences.Specifications["color"])
}

func TestAddSurfacedProductIsIdempotent(t *testing.T) {
	s := NewStore()

	s.AddSurfacedProduct("sess-1", 42)
	s.AddSurfacedProduct("sess-1", 42)
	s.AddSurfacedProduct("sess-1", 7)

	snap := s.GetOrCreate("sess-1")
	assert.Len(t, snap.SurfacedProducts, 2)
	assert.Contains(t, snap.SurfacedProducts, int64(42))
	assert.Contains(t, snap.SurfacedProducts, int64(7))
}

func TestClearRemovesContext(t *testing.T) {
	s := NewStore()

	s.AppendMessage("sess-1", RoleUser, "hello")
	s.MergePreferences("sess-1", Preferences{Budget: 100})
	s.Clear("sess-1")

	snap := s.GetOrCreate("sess-1")
	assert.Empty(t, snap.Messages)
	assert.Zero(t, snap.Preferences.Budget)
}

func TestRecentMessagesReturnsTailInOrder(t *testing.T) {
	s := NewStore()

	for i := 0; i < 5; i++ {
		s.AppendMessage("sess-1", RoleUser, fmt.Sprintf("msg-%d", i))
	}

	tail := s.RecentMessages("sess-1", 3)
	require.Len(t, tail, 3)
	assert.Equal(t, "msg-2", tail[0].Content)
	assert.Equal(t, "msg-4", tail[2].Content)

	all := s.RecentMessages("sess-1", 50)
	assert.Len(t, all, 5)
}

func TestSnapshotIsDetachedFromStore(t *testing.T) {
	s := NewStore()

	s.AppendMessage("sess-1", RoleUser, "hello")
	snap := s.GetOrCreate("sess-1")
	snap.Messages[0].Content = "mutated"
	snap.SurfacedProducts[99] = struct{}{}

	fresh := s.GetOrCreate("sess-1")
	assert.Equal(t, "hello", fresh.Messages[0].Content)
	assert.NotContains(t, fresh.SurfacedProducts, int64(99))
}

func TestConcurrentMutationsOnSameSession(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.AppendMessage("sess-1", RoleUser, fmt.Sprintf("msg-%d", n))
			s.MergePreferences("sess-1", Preferences{Budget: float64(n + 1)})
			s.AddSurfacedProduct("sess-1", int64(n))
		}(i)
	}
	wg.Wait()

	snap := s.GetOrCreate("sess-1")
	assert.Len(t, snap.Messages, 20)
	assert.Len(t, snap.SurfacedProducts, 50)
	assert.Greater(t, snap.Preferences.Budget, float64(0))
}

func TestDifferentSessionsAreIndependent(t *testing.T) {
	s := NewStore()

	s.AppendMessage("sess-a", RoleUser, "a")
	s.AppendMessage("sess-b", RoleUser, "b")
	s.Clear("sess-a")

	assert.Empty(t, s.GetOrCreate("sess-a").Messages)
	assert.Len(t, s.GetOrCreate("sess-b").Messages, 1)
}
