package mq

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/logx"

	"ShopMate/app/assistant/orchestrator"
)

// TurnProducer publishes one analytics event per completed chat turn.
// Publishing is fire-and-forget: a broker failure is logged and the turn is
// never delayed or failed by it.
type TurnProducer struct {
	writer *kafka.Writer
}

func NewTurnProducer(writer *kafka.Writer) *TurnProducer {
	return &TurnProducer{writer: writer}
}

func (p *TurnProducer) RecordTurn(ctx context.Context, evt orchestrator.TurnEvent) {
	if p == nil || p.writer == nil {
		return
	}

	body, err := json.Marshal(evt)
	if err != nil {
		logx.WithContext(ctx).Errorf("marshal chat turn event: %v", err)
		return
	}

	go func() {
		if err := p.writer.WriteMessages(context.Background(), kafka.Message{
			Key:   []byte(evt.SessionId),
			Value: body,
		}); err != nil {
			logx.Errorf("publish chat turn event: %v", err)
		}
	}()
}
