package catalog

// Product is the read-only view of a catalog item consumed by the dialogue
// pipeline. Identity is the catalog id; the pipeline never mutates one.
type Product struct {
	Id            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Category      string  `db:"category" json:"category"`
	MainCategory  string  `db:"main_category" json:"mainCategory"`
	ProductType   string  `db:"product_type" json:"productType,omitempty"`
	Price         float64 `db:"price" json:"price"`
	DiscountPrice float64 `db:"discount_price" json:"discountPrice"`
	Rating        float64 `db:"rating" json:"rating"`
	RatingCount   int64   `db:"rating_count" json:"ratingCount"`
	Image         string  `db:"image" json:"image"`
	IsNew         bool    `db:"is_new" json:"isNew"`
	OnSale        bool    `db:"on_sale" json:"onSale"`
	Discounted    bool    `db:"discounted" json:"discounted"`
}

// Category is one row of the catalog's category tree.
type Category struct {
	Id           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	MainCategory string `db:"main_category" json:"mainCategory"`
}

// Filter describes one catalog search. An explicit id list short-circuits
// the text/category filters.
type Filter struct {
	ProductIds   []int64
	SearchTerm   string
	Category     string
	MainCategory string
	ProductType  string
	MinPrice     float64
	MaxPrice     float64
	MinRating    float64
	Limit        int64
}

const DefaultSearchLimit int64 = 10
