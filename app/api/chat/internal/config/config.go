package config

import (
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/rest"
)

type Config struct {
	rest.RestConf

	MysqlConf sqlx.SqlConf
	CacheConf cache.CacheConf
	RedisConf redis.RedisConf

	KafkaConf KafkaConf

	ChatModel ModelConf

	Auth AuthConf

	LogConf logx.LogConf
}

type KafkaConf struct {
	Broker        []string
	Group         string
	ChatTurnTopic string
}

type ModelConf struct {
	BaseUrl string
	APIKey  string
	Model   string
}

type AuthConf struct {
	AccessSecret string
}
