// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package svc

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/bloom"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/rest"

	"ShopMate/app/api/chat/internal/config"
	"ShopMate/app/api/chat/internal/mq"
	"ShopMate/app/assistant/intent"
	"ShopMate/app/assistant/nlu"
	"ShopMate/app/assistant/orchestrator"
	"ShopMate/app/assistant/reply"
	"ShopMate/app/assistant/session"
	"ShopMate/app/common/consts/biz"
	"ShopMate/app/common/middleware"
	"ShopMate/app/dal/behavior"
	"ShopMate/app/dal/catalog"
)

type ServiceContext struct {
	Config config.Config

	OptionalAuthMiddleware rest.Middleware

	ProductsModel   catalog.ProductsModel
	CategoriesModel catalog.CategoriesModel
	BehaviorModel   behavior.BehaviorModel
	Bloom           *bloom.Filter

	KafkaWriter *kafka.Writer

	Sessions     *session.Store
	Orchestrator *orchestrator.Orchestrator
}

func NewServiceContext(c config.Config) *ServiceContext {
	logx.MustSetup(c.LogConf)

	conn := sqlx.MustNewConn(c.MysqlConf)
	products := catalog.NewProductsModel(conn, c.CacheConf)
	categories := catalog.NewCategoriesModel(conn, c.CacheConf)
	behaviors := behavior.NewBehaviorModel(conn)

	bf := bloom.New(redis.MustNewRedis(c.RedisConf), biz.PRODUCT_CHECK_BLOOM, biz.PRODUCT_CHECK_BLOOM_BIT)
	if err := bloomPreheat(bf, products); err != nil {
		logx.Errorw("bloom preheat failed", logx.Field("err", err))
	}

	var kw *kafka.Writer
	if len(c.KafkaConf.Broker) > 0 && c.KafkaConf.ChatTurnTopic != "" {
		kw = &kafka.Writer{
			Addr:                   kafka.TCP(c.KafkaConf.Broker...),
			Topic:                  c.KafkaConf.ChatTurnTopic,
			RequiredAcks:           kafka.RequireOne,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           5 * time.Millisecond,
		}
	}

	var provider intent.Provider
	var generator reply.Generator
	cm, err := ark.NewChatModel(context.Background(), &ark.ChatModelConfig{
		BaseURL: c.ChatModel.BaseUrl,
		APIKey:  c.ChatModel.APIKey,
		Model:   c.ChatModel.Model,
	})
	if err != nil {
		logx.Errorw("init ark chat model failed", logx.Field("err", err))
	} else {
		p := nlu.NewProvider(cm)
		provider = p
		generator = p
		logx.Infow("ark chat model initialized")
	}

	sessions := session.NewStore()

	orc := orchestrator.New(
		sessions,
		intent.NewExtractor(provider),
		products,
		reply.NewComposer(generator),
		orchestrator.WithBehaviorSource(behaviors),
		orchestrator.WithProductIdFilter(&bloomIdFilter{bf: bf}),
		orchestrator.WithTurnRecorder(mq.NewTurnProducer(kw)),
		orchestrator.WithCategories(categoryNames(categories)),
	)

	return &ServiceContext{
		Config:                 c,
		OptionalAuthMiddleware: middleware.NewOptionalAuthMiddleware(c.Auth.AccessSecret).Handle,
		ProductsModel:          products,
		CategoriesModel:        categories,
		BehaviorModel:          behaviors,
		Bloom:                  bf,
		KafkaWriter:            kw,
		Sessions:               sessions,
		Orchestrator:           orc,
	}
}

func bloomPreheat(bf *bloom.Filter, products catalog.ProductsModel) error {
	ids, err := products.FindAllProductId(context.TODO())
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := bf.Add([]byte(strconv.FormatInt(id, 10))); err != nil {
			return err
		}
	}
	return nil
}

func categoryNames(model catalog.CategoriesModel) []string {
	rows, err := model.ListAll(context.TODO())
	if err != nil {
		logx.Errorw("list categories failed", logx.Field("err", err))
		return nil
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
	}
	return names
}

// bloomIdFilter adapts the redis bloom filter to the id-plausibility check.
// A filter error fails open so a degraded redis never hides real products.
type bloomIdFilter struct {
	bf *bloom.Filter
}

func (f *bloomIdFilter) MayExist(ctx context.Context, id int64) bool {
	ok, err := f.bf.ExistsCtx(ctx, []byte(strconv.FormatInt(id, 10)))
	if err != nil {
		logx.WithContext(ctx).Errorf("bloom lookup failed: %v", err)
		return true
	}
	return ok
}
