package middleware

import (
	"errors"
	"net/http"
	"strings"

	"ShopMate/app/common/consts/biz"
	"ShopMate/app/common/util"

	"github.com/golang-jwt/jwt/v4"
	"github.com/zeromicro/go-zero/core/logx"
)

// OptionalAuthMiddleware derives a verified numeric user id from a bearer
// token when one is present. Requests without a token, or with a token that
// fails verification, proceed as guest: no error, no user id in context.
type OptionalAuthMiddleware struct {
	secret string
}

type jwtClaims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewOptionalAuthMiddleware(secret string) *OptionalAuthMiddleware {
	return &OptionalAuthMiddleware{secret: secret}
}

func (m *OptionalAuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			if cookie, err := r.Cookie(biz.ACCESSTOKEN); err == nil {
				token = cookie.Value
			}
		}
		if token == "" {
			next(w, r)
			return
		}

		claims, err := m.parseToken(token)
		if err != nil {
			// broken token is ignored, not rejected
			logx.WithContext(r.Context()).Infof("optional auth: ignoring token: %v", err)
			next(w, r)
			return
		}

		util.InjectUserId2Ctx(r, claims.UserID)
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func (m *OptionalAuthMiddleware) parseToken(tokenStr string) (*jwtClaims, error) {
	if m.secret == "" {
		return nil, errors.New("token secret is empty")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
