package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ShopMate/app/dal/behavior"
	"ShopMate/app/dal/catalog"
)

func products(specs ...catalog.Product) []*catalog.Product {
	out := make([]*catalog.Product, 0, len(specs))
	for i := range specs {
		p := specs[i]
		out = append(out, &p)
	}
	return out
}

func TestStableSortPreservesInputOrderOnTies(t *testing.T) {
	// A and B tie on score, C wins; expected order C, A, B
	list := products(
		catalog.Product{Id: 1, Name: "A", Rating: 2.5},
		catalog.Product{Id: 2, Name: "B", Rating: 2.5},
		catalog.Product{Id: 3, Name: "C", Rating: 4.5},
	)
	agg := &behavior.Aggregate{ViewedProducts: []int64{999}}

	got := Personalize(list, agg)

	require.Len(t, got, 3)
	assert.Equal(t, "C", got[0].Name)
	assert.Equal(t, "A", got[1].Name)
	assert.Equal(t, "B", got[2].Name)
}

func TestBehaviorSignalsOutweighRating(t *testing.T) {
	list := products(
		catalog.Product{Id: 1, Name: "high-rated", Rating: 5},
		catalog.Product{Id: 2, Name: "favorite-category", Category: "Phones", Rating: 1},
	)
	agg := &behavior.Aggregate{FavoriteCategories: []string{"phones"}}

	got := Personalize(list, agg)

	// 10 + 2*1 = 12 beats 2*5 = 10
	assert.Equal(t, "favorite-category", got[0].Name)
}

func TestAllSignalsAccumulate(t *testing.T) {
	list := products(
		catalog.Product{Id: 1, Name: "plain", Rating: 4},
		catalog.Product{Id: 2, Name: "engaged", Category: "Laptops", Rating: 4},
	)
	agg := &behavior.Aggregate{
		ViewedProducts:     []int64{2},
		ClickedProducts:    []int64{2},
		PurchasedProducts:  []int64{2},
		FavoriteCategories: []string{"Laptops"},
	}

	got := Personalize(list, agg)

	assert.Equal(t, "engaged", got[0].Name)
}

func TestMembershipAndLengthUnchanged(t *testing.T) {
	list := products(
		catalog.Product{Id: 1, Rating: 1},
		catalog.Product{Id: 2, Rating: 2},
		catalog.Product{Id: 3, Rating: 3},
	)
	agg := &behavior.Aggregate{ClickedProducts: []int64{1}}

	got := Personalize(list, agg)

	require.Len(t, got, 3)
	seen := map[int64]bool{}
	for _, p := range got {
		seen[p.Id] = true
	}
	assert.Len(t, seen, 3)
}

func TestEmptyAggregateLeavesOrderUntouched(t *testing.T) {
	list := products(
		catalog.Product{Id: 1, Rating: 1},
		catalog.Product{Id: 2, Rating: 5},
	)

	got := Personalize(list, &behavior.Aggregate{})
	assert.Equal(t, int64(1), got[0].Id)

	got = Personalize(list, nil)
	assert.Equal(t, int64(1), got[0].Id)
}
