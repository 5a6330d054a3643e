package catalog

import (
	"context"

	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlc"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ CategoriesModel = (*customCategoriesModel)(nil)

type (
	CategoriesModel interface {
		ListAll(ctx context.Context) ([]*Category, error)
	}

	customCategoriesModel struct {
		sqlc.CachedConn
	}
)

// NewCategoriesModel returns a model for the category table.
func NewCategoriesModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) CategoriesModel {
	return &customCategoriesModel{
		CachedConn: sqlc.NewConn(conn, c, opts...),
	}
}

func (m *customCategoriesModel) ListAll(ctx context.Context) ([]*Category, error) {
	query := "SELECT `id`, `name`, `main_category` FROM `categories` ORDER BY `main_category`, `name`"
	var resp []*Category
	err := m.QueryRowsNoCacheCtx(ctx, &resp, query)
	switch err {
	case nil:
		return resp, nil
	case sqlc.ErrNotFound:
		return nil, nil
	default:
		return nil, err
	}
}
