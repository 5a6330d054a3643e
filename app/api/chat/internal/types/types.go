// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

type ChatMessageRequest struct {
	Message   string `json:"message"`
	SessionId string `json:"sessionId,optional"`
}

type ChatMessageResponse struct {
	SessionId          string           `json:"sessionId"`
	Message            string           `json:"message"`
	Reply              string           `json:"reply"`
	Products           []Product        `json:"products"`
	ComparisonTable    *ComparisonTable `json:"comparisonTable,omitempty"`
	QuickReplies       []string         `json:"quickReplies"`
	Entities           map[string]any   `json:"entities"`
	NeedsClarification bool             `json:"needsClarification,omitempty"`
}

type Product struct {
	Id            int64   `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	MainCategory  string  `json:"mainCategory"`
	Price         float64 `json:"price"`
	DiscountPrice float64 `json:"discountPrice"`
	Rating        float64 `json:"rating"`
	RatingCount   int64   `json:"ratingCount"`
	Image         string  `json:"image"`
	IsNew         bool    `json:"isNew"`
	OnSale        bool    `json:"onSale"`
}

type ComparisonTable struct {
	Products []ComparisonEntry `json:"products"`
}

type ComparisonEntry struct {
	Id            int64              `json:"id"`
	Name          string             `json:"name"`
	Price         float64            `json:"price"`
	DiscountPrice float64            `json:"discountPrice,omitempty"`
	Rating        float64            `json:"rating"`
	Category      string             `json:"category"`
	Image         string             `json:"image,omitempty"`
	Features      ComparisonFeatures `json:"features"`
}

type ComparisonFeatures struct {
	RatingCount int64 `json:"ratingCount"`
	IsNew       bool  `json:"isNew"`
	OnSale      bool  `json:"onSale"`
}

type ChatHistoryRequest struct {
	SessionId string `path:"sessionId"`
}

type ChatHistoryResponse struct {
	SessionId   string         `json:"sessionId"`
	Messages    []ChatMessage  `json:"messages"`
	Preferences map[string]any `json:"preferences"`
	Language    string         `json:"language"`
}

type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type ClearSessionRequest struct {
	SessionId string `path:"sessionId"`
}

type ClearSessionResponse struct {
	Message   string `json:"message"`
	SessionId string `json:"sessionId"`
}
