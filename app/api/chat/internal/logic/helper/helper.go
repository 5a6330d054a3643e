package helper

import (
	"encoding/json"
	"time"

	"ShopMate/app/api/chat/internal/types"
	"ShopMate/app/assistant/comparison"
	"ShopMate/app/assistant/intent"
	"ShopMate/app/assistant/orchestrator"
	"ShopMate/app/assistant/session"
	"ShopMate/app/dal/catalog"
)

func ToChatMessageResponse(message string, res *orchestrator.Result) *types.ChatMessageResponse {
	return &types.ChatMessageResponse{
		SessionId:          res.SessionId,
		Message:            res.Reply,
		Reply:              res.Reply,
		Products:           toProducts(res.Products),
		ComparisonTable:    toComparisonTable(res.ComparisonTable),
		QuickReplies:       emptyIfNil(res.QuickReplies),
		Entities:           toEntityMap(res.Entities),
		NeedsClarification: res.NeedsClarification,
	}
}

func toProducts(products []*catalog.Product) []types.Product {
	out := make([]types.Product, 0, len(products))
	for _, p := range products {
		out = append(out, types.Product{
			Id:            p.Id,
			Name:          p.Name,
			Category:      p.Category,
			MainCategory:  p.MainCategory,
			Price:         p.Price,
			DiscountPrice: p.DiscountPrice,
			Rating:        p.Rating,
			RatingCount:   p.RatingCount,
			Image:         p.Image,
			IsNew:         p.IsNew,
			OnSale:        p.OnSale,
		})
	}
	return out
}

func toComparisonTable(table *comparison.Table) *types.ComparisonTable {
	if table == nil {
		return nil
	}
	out := &types.ComparisonTable{Products: make([]types.ComparisonEntry, 0, len(table.Products))}
	for _, e := range table.Products {
		out.Products = append(out.Products, types.ComparisonEntry{
			Id:            e.Id,
			Name:          e.Name,
			Price:         e.Price,
			DiscountPrice: e.DiscountPrice,
			Rating:        e.Rating,
			Category:      e.Category,
			Image:         e.Image,
			Features: types.ComparisonFeatures{
				RatingCount: e.Features.RatingCount,
				IsNew:       e.Features.IsNew,
				OnSale:      e.Features.OnSale,
			},
		})
	}
	return out
}

// toEntityMap echoes the extracted entities as loose JSON so the client sees
// exactly the fields that were set.
func toEntityMap(entities *intent.Entities) map[string]any {
	if entities == nil {
		return map[string]any{}
	}
	body, err := json.Marshal(entities)
	if err != nil {
		return map[string]any{}
	}
	out := make(map[string]any)
	if err := json.Unmarshal(body, &out); err != nil {
		return map[string]any{}
	}
	return out
}

func ToHistoryResponse(snap session.Context) *types.ChatHistoryResponse {
	msgs := make([]types.ChatMessage, 0, len(snap.Messages))
	for _, m := range snap.Messages {
		msgs = append(msgs, types.ChatMessage{
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp.Format(time.RFC3339),
		})
	}

	prefs := make(map[string]any)
	if snap.Preferences.Budget > 0 {
		prefs["budget"] = snap.Preferences.Budget
	}
	if snap.Preferences.Category != "" {
		prefs["category"] = snap.Preferences.Category
	}
	if snap.Preferences.Brand != "" {
		prefs["brand"] = snap.Preferences.Brand
	}
	if len(snap.Preferences.Specifications) > 0 {
		prefs["specifications"] = snap.Preferences.Specifications
	}

	return &types.ChatHistoryResponse{
		SessionId:   snap.SessionId,
		Messages:    msgs,
		Preferences: prefs,
		Language:    string(snap.Language),
	}
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
