package behavior

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/sqlc"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

// Aggregate is the user-behavior view consumed by the personalization
// ranker. Absent (empty) for anonymous sessions.
type Aggregate struct {
	ViewedProducts     []int64
	ClickedProducts    []int64
	PurchasedProducts  []int64
	FavoriteCategories []string
}

func (a *Aggregate) Empty() bool {
	if a == nil {
		return true
	}
	return len(a.ViewedProducts) == 0 && len(a.ClickedProducts) == 0 &&
		len(a.PurchasedProducts) == 0 && len(a.FavoriteCategories) == 0
}

var _ BehaviorModel = (*customBehaviorModel)(nil)

type (
	// BehaviorModel fetches behavior aggregates, best-effort: any query
	// failure yields an empty aggregate, never an error to the caller.
	BehaviorModel interface {
		FetchAggregate(ctx context.Context, userId int64) *Aggregate
	}

	customBehaviorModel struct {
		conn sqlx.SqlConn
	}
)

func NewBehaviorModel(conn sqlx.SqlConn) BehaviorModel {
	return &customBehaviorModel{conn: conn}
}

func (m *customBehaviorModel) FetchAggregate(ctx context.Context, userId int64) *Aggregate {
	agg := &Aggregate{}
	log := logx.WithContext(ctx)

	viewedQuery := "SELECT DISTINCT s.`product_id` FROM `product_stats` s " +
		"WHERE s.`views` > 0 ORDER BY s.`views` DESC LIMIT 50"
	if err := m.conn.QueryRowsCtx(ctx, &agg.ViewedProducts, viewedQuery); err != nil && err != sqlc.ErrNotFound {
		log.Errorf("behavior: viewed query failed: %v", err)
	}

	clickedQuery := "SELECT DISTINCT `product_id` FROM `wishlist_items` WHERE `user_id` = ?"
	if err := m.conn.QueryRowsCtx(ctx, &agg.ClickedProducts, clickedQuery, userId); err != nil && err != sqlc.ErrNotFound {
		log.Errorf("behavior: wishlist query failed: %v", err)
	}

	purchasedQuery := "SELECT DISTINCT oi.`product_id` FROM `orders` o " +
		"INNER JOIN `order_items` oi ON o.`id` = oi.`order_id` WHERE o.`user_id` = ?"
	if err := m.conn.QueryRowsCtx(ctx, &agg.PurchasedProducts, purchasedQuery, userId); err != nil && err != sqlc.ErrNotFound {
		log.Errorf("behavior: purchased query failed: %v", err)
	}

	categoryQuery := "SELECT c.`name` FROM `orders` o " +
		"INNER JOIN `order_items` oi ON o.`id` = oi.`order_id` " +
		"INNER JOIN `products` p ON oi.`product_id` = p.`id` " +
		"INNER JOIN `categories` c ON p.`category_id` = c.`id` " +
		"WHERE o.`user_id` = ? GROUP BY c.`name` ORDER BY COUNT(*) DESC LIMIT 5"
	if err := m.conn.QueryRowsCtx(ctx, &agg.FavoriteCategories, categoryQuery, userId); err != nil && err != sqlc.ErrNotFound {
		log.Errorf("behavior: favorite categories query failed: %v", err)
	}

	return agg
}
