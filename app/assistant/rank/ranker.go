package rank

import (
	"sort"
	"strings"

	"ShopMate/app/dal/behavior"
	"ShopMate/app/dal/catalog"
)

// Signal weights. Category affinity dominates, then direct interactions,
// then a small quality boost from the rating.
const (
	favoriteCategoryWeight = 10
	clickedWeight          = 8
	viewedWeight           = 5
	purchasedWeight        = 3
	ratingWeight           = 2
)

// Personalize reorders products by behavioral affinity. The sort is stable,
// so catalog order breaks score ties. The input slice is reordered in place
// and returned.
func Personalize(products []*catalog.Product, agg *behavior.Aggregate) []*catalog.Product {
	if len(products) == 0 || agg == nil || agg.Empty() {
		return products
	}

	viewed := toSet(agg.ViewedProducts)
	clicked := toSet(agg.ClickedProducts)
	purchased := toSet(agg.PurchasedProducts)
	favorites := make(map[string]struct{}, len(agg.FavoriteCategories))
	for _, c := range agg.FavoriteCategories {
		favorites[strings.ToLower(c)] = struct{}{}
	}

	scores := make(map[int64]float64, len(products))
	for _, p := range products {
		scores[p.Id] = score(p, viewed, clicked, purchased, favorites)
	}

	sort.SliceStable(products, func(i, j int) bool {
		return scores[products[i].Id] > scores[products[j].Id]
	})
	return products
}

func score(p *catalog.Product, viewed, clicked, purchased map[int64]struct{}, favorites map[string]struct{}) float64 {
	var s float64
	if _, ok := favorites[strings.ToLower(p.Category)]; ok {
		s += favoriteCategoryWeight
	}
	if _, ok := clicked[p.Id]; ok {
		s += clickedWeight
	}
	if _, ok := viewed[p.Id]; ok {
		s += viewedWeight
	}
	if _, ok := purchased[p.Id]; ok {
		s += purchasedWeight
	}
	s += ratingWeight * p.Rating
	return s
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
