package util

import (
	"context"
	"net/http"

	"ShopMate/app/common/consts/biz"
)

// UserIdFromCtx returns the verified user id injected by the auth
// middleware, or 0 when the request is anonymous.
func UserIdFromCtx(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}

	switch val := ctx.Value(biz.USER_KEY).(type) {
	case int64:
		return val
	}

	return 0
}

func InjectUserId2Ctx(r *http.Request, userId int64) {
	ctx := context.WithValue(r.Context(), biz.USER_KEY, userId)
	*r = *r.WithContext(ctx)
}
