package comparison

import (
	"strings"

	"ShopMate/app/dal/catalog"
)

// MinProducts is the floor below which a compare turn becomes a shortfall
// outcome instead of a comparison payload.
const MinProducts = 2

// Entry is the fixed-shape side of a comparison table.
type Entry struct {
	Id            int64    `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	DiscountPrice float64  `json:"discountPrice,omitempty"`
	Rating        float64  `json:"rating"`
	Category      string   `json:"category"`
	Image         string   `json:"image,omitempty"`
	Features      Features `json:"features"`
}

type Features struct {
	RatingCount int64 `json:"ratingCount"`
	IsNew       bool  `json:"isNew"`
	OnSale      bool  `json:"onSale"`
}

// Table is the comparison payload attached to a compare turn.
type Table struct {
	Products []Entry `json:"products"`
}

// tokens that mark a product name as matching a requested product type
var typeTokens = map[string][]string{
	"phone":      {"phone", "smartphone", "iphone", "galaxy", "pixel", "телефон", "смартфон"},
	"laptop":     {"laptop", "notebook", "macbook", "ultrabook", "ноутбук"},
	"tablet":     {"tablet", "ipad", "планшет"},
	"headphones": {"headphones", "earbuds", "airpods", "навушники"},
	"tv":         {"tv", "television", "телевізор"},
	"watch":      {"watch", "smartwatch", "годинник"},
}

// Compose picks exactly two products and builds the table. Products whose
// name matches the requested product type are preferred; when fewer than two
// match, the remaining slots fill from resolution order. Callers must have
// checked MinProducts already; Compose returns nil otherwise.
func Compose(products []*catalog.Product, productType string) *Table {
	if len(products) < MinProducts {
		return nil
	}

	picked := pick(products, productType)
	table := &Table{Products: make([]Entry, 0, len(picked))}
	for _, p := range picked {
		table.Products = append(table.Products, toEntry(p))
	}
	return table
}

func pick(products []*catalog.Product, productType string) []*catalog.Product {
	tokens := typeTokens[strings.ToLower(strings.TrimSpace(productType))]

	picked := make([]*catalog.Product, 0, MinProducts)
	if len(tokens) > 0 {
		for _, p := range products {
			if len(picked) == MinProducts {
				return picked
			}
			if nameMatches(p.Name, tokens) {
				picked = append(picked, p)
			}
		}
	}
	for _, p := range products {
		if len(picked) == MinProducts {
			break
		}
		if contains(picked, p) {
			continue
		}
		picked = append(picked, p)
	}
	return picked
}

func nameMatches(name string, tokens []string) bool {
	lowered := strings.ToLower(name)
	for _, tok := range tokens {
		if strings.Contains(lowered, tok) {
			return true
		}
	}
	return false
}

func contains(list []*catalog.Product, p *catalog.Product) bool {
	for _, got := range list {
		if got.Id == p.Id {
			return true
		}
	}
	return false
}

func toEntry(p *catalog.Product) Entry {
	category := p.Category
	if p.MainCategory != "" {
		category = p.MainCategory + " / " + p.Category
	}
	return Entry{
		Id:            p.Id,
		Name:          p.Name,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		Rating:        p.Rating,
		Category:      category,
		Image:         p.Image,
		Features: Features{
			RatingCount: p.RatingCount,
			IsNew:       p.IsNew,
			OnSale:      p.OnSale,
		},
	}
}
