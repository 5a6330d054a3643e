package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlc"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ ProductsModel = (*customProductsModel)(nil)

const productRows = "p.`id`, p.`name`, c.`name` AS `category`, c.`main_category`, p.`product_type`, " +
	"p.`price`, p.`discount_price`, s.`rating`, s.`rating_count`, " +
	"IFNULL(i.`url`, '') AS `image`, s.`is_new`, s.`on_sale`, s.`discounted`"

const productJoins = "FROM `products` p " +
	"INNER JOIN `categories` c ON p.`category_id` = c.`id` " +
	"INNER JOIN `product_stats` s ON p.`id` = s.`product_id` " +
	"LEFT JOIN `product_images` i ON p.`id` = i.`product_id` AND i.`is_primary` = 1"

type (
	// ProductsModel resolves catalog filters to ordered product lists.
	ProductsModel interface {
		Search(ctx context.Context, filter Filter) ([]*Product, error)
		FindByIds(ctx context.Context, ids []int64) ([]*Product, error)
		FindAllProductId(ctx context.Context) ([]int64, error)
	}

	customProductsModel struct {
		sqlc.CachedConn
	}
)

// NewProductsModel returns a model for the catalog product tables.
func NewProductsModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) ProductsModel {
	return &customProductsModel{
		CachedConn: sqlc.NewConn(conn, c, opts...),
	}
}

// Search builds the filtered query. Results come back rating-descending with
// catalog popularity as the tie-break, capped at filter.Limit.
func (m *customProductsModel) Search(ctx context.Context, filter Filter) ([]*Product, error) {
	if len(filter.ProductIds) > 0 {
		return m.FindByIds(ctx, filter.ProductIds)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("SELECT %s %s WHERE 1=1", productRows, productJoins))
	var args []any

	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		sb.WriteString(" AND (p.`name` LIKE ? OR p.`description` LIKE ? OR p.`tags` LIKE ?)")
		like := "%" + term + "%"
		args = append(args, like, like, like)
	}
	if filter.Category != "" {
		sb.WriteString(" AND c.`name` LIKE ?")
		args = append(args, "%"+filter.Category+"%")
	}
	if filter.MainCategory != "" {
		sb.WriteString(" AND c.`main_category` LIKE ?")
		args = append(args, "%"+strings.ToUpper(filter.MainCategory)+"%")
	}
	if filter.ProductType != "" {
		sb.WriteString(" AND p.`product_type` = ?")
		args = append(args, filter.ProductType)
	}
	if filter.MinPrice > 0 {
		sb.WriteString(" AND p.`discount_price` >= ?")
		args = append(args, filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		sb.WriteString(" AND p.`discount_price` <= ?")
		args = append(args, filter.MaxPrice)
	}
	if filter.MinRating > 0 {
		sb.WriteString(" AND s.`rating` >= ?")
		args = append(args, filter.MinRating)
	}

	sb.WriteString(" ORDER BY s.`rating` DESC, s.`views` DESC LIMIT ?")
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	args = append(args, limit)

	var resp []*Product
	err := m.QueryRowsNoCacheCtx(ctx, &resp, sb.String(), args...)
	switch err {
	case nil:
		return resp, nil
	case sqlc.ErrNotFound:
		return nil, nil
	default:
		return nil, err
	}
}

// FindByIds returns only the ids that exist; a shorter result than the
// requested id count is a partial resolution, not an error.
func (m *customProductsModel) FindByIds(ctx context.Context, ids []int64) ([]*Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf("SELECT %s %s WHERE p.`id` IN (%s) ORDER BY s.`rating` DESC, s.`views` DESC",
		productRows, productJoins, placeholders)

	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	var resp []*Product
	err := m.QueryRowsNoCacheCtx(ctx, &resp, query, args...)
	switch err {
	case nil:
		return resp, nil
	case sqlc.ErrNotFound:
		return nil, nil
	default:
		return nil, err
	}
}

func (m *customProductsModel) FindAllProductId(ctx context.Context) ([]int64, error) {
	query := "SELECT `id` FROM `products`"
	var ids []int64
	if err := m.QueryRowsNoCacheCtx(ctx, &ids, query); err != nil {
		return nil, err
	}
	return ids, nil
}
