package biz

type CtxKey string

const (
	USER_KEY CtxKey = "user_id"

	ACCESSTOKEN = "access_token"

	// Prefix of server-generated session ids.
	SESSION_ID_PREFIX = "sess-"

	PRODUCT_CHECK_BLOOM     = "product_check_bloom"
	PRODUCT_CHECK_BLOOM_BIT = 1 << 20
)
