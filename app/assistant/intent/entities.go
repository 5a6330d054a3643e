package intent

import "ShopMate/app/assistant/session"

const (
	IntentSearch    = "search"
	IntentCompare   = "compare"
	IntentRecommend = "recommend"
	IntentQuestion  = "question"
	IntentRefine    = "refine"
	IntentBudget    = "budget"
	IntentScenario  = "scenario"
)

// Entities is the normalized record produced for every turn, whether the
// external provider answered or the deterministic fallback ran.
type Entities struct {
	Intent                string         `json:"intent"`
	Category              string         `json:"category,omitempty"`
	MainCategory          string         `json:"mainCategory,omitempty"`
	Brand                 string         `json:"brand,omitempty"`
	ProductType           string         `json:"productType,omitempty"`
	Budget                float64        `json:"budget,omitempty"`
	MinPrice              float64        `json:"minPrice,omitempty"`
	MaxPrice              float64        `json:"maxPrice,omitempty"`
	Rating                float64        `json:"rating,omitempty"`
	SearchTerm            string         `json:"searchTerm,omitempty"`
	ProductIds            []int64        `json:"productIds,omitempty"`
	UseCase               string         `json:"useCase,omitempty"`
	Specifications        map[string]any `json:"specifications,omitempty"`
	Language              session.Lang   `json:"language,omitempty"`
	NeedsClarification    bool           `json:"needsClarification,omitempty"`
	ClarificationQuestion string         `json:"clarificationQuestion,omitempty"`
}
