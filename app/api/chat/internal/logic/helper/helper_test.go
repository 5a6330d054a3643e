package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ShopMate/app/assistant/comparison"
	"ShopMate/app/assistant/intent"
	"ShopMate/app/assistant/orchestrator"
	"ShopMate/app/assistant/session"
	"ShopMate/app/dal/catalog"
)

func TestToChatMessageResponse(t *testing.T) {
	res := &orchestrator.Result{
		SessionId: "sess-1",
		Reply:     "two phones compared",
		Products: []*catalog.Product{
			{Id: 1, Name: "iPhone 15", Price: 999, Rating: 4.8},
		},
		ComparisonTable: &comparison.Table{Products: []comparison.Entry{
			{Id: 1, Name: "iPhone 15", Price: 999},
			{Id: 2, Name: "Galaxy S24", Price: 899},
		}},
		QuickReplies: []string{"Compare these products"},
		Entities: &intent.Entities{
			Intent:   intent.IntentCompare,
			Language: session.LangEN,
		},
	}

	resp := ToChatMessageResponse("compare 1 and 2", res)

	assert.Equal(t, "sess-1", resp.SessionId)
	assert.Equal(t, "two phones compared", resp.Reply)
	assert.Equal(t, resp.Reply, resp.Message)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "iPhone 15", resp.Products[0].Name)
	require.NotNil(t, resp.ComparisonTable)
	assert.Len(t, resp.ComparisonTable.Products, 2)
	assert.Equal(t, "compare", resp.Entities["intent"])
	assert.Equal(t, "en", resp.Entities["language"])
	assert.False(t, resp.NeedsClarification)
}

func TestToChatMessageResponseEmptyTurn(t *testing.T) {
	res := &orchestrator.Result{
		SessionId:          "sess-1",
		Reply:              "which brand?",
		Entities:           &intent.Entities{Intent: intent.IntentSearch},
		NeedsClarification: true,
	}

	resp := ToChatMessageResponse("hm", res)

	assert.True(t, resp.NeedsClarification)
	assert.NotNil(t, resp.Products)
	assert.Empty(t, resp.Products)
	assert.NotNil(t, resp.QuickReplies)
	assert.Empty(t, resp.QuickReplies)
	assert.Nil(t, resp.ComparisonTable)
}

func TestToHistoryResponse(t *testing.T) {
	now := time.Now()
	snap := session.Context{
		SessionId: "sess-1",
		Messages: []session.Message{
			{Role: session.RoleUser, Content: "hi", Timestamp: now},
			{Role: session.RoleAssistant, Content: "hello", Timestamp: now},
		},
		Preferences: session.Preferences{Budget: 500, Category: "Phones"},
		Language:    session.LangUK,
	}

	resp := ToHistoryResponse(snap)

	assert.Equal(t, "sess-1", resp.SessionId)
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, "user", resp.Messages[0].Role)
	assert.Equal(t, now.Format(time.RFC3339), resp.Messages[0].Timestamp)
	assert.Equal(t, float64(500), resp.Preferences["budget"])
	assert.Equal(t, "Phones", resp.Preferences["category"])
	assert.NotContains(t, resp.Preferences, "brand")
	assert.Equal(t, "uk", resp.Language)
}
