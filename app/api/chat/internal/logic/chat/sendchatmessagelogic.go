// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package chat

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"

	"ShopMate/app/api/chat/internal/logic/helper"
	"ShopMate/app/api/chat/internal/svc"
	"ShopMate/app/api/chat/internal/types"
	"ShopMate/app/common/consts/errno"
	"ShopMate/app/common/snowflake"
	"ShopMate/app/common/util"
)

const (
	maxMessageLen   = 1000
	maxSessionIdLen = 100
)

type SendChatMessageLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSendChatMessageLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SendChatMessageLogic {
	return &SendChatMessageLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SendChatMessageLogic) SendChatMessage(req *types.ChatMessageRequest) (*types.ChatMessageResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" || len(req.Message) > maxMessageLen {
		return nil, errors.New(int(errno.InvalidParam), "message must be 1 to 1000 characters")
	}
	if len(req.SessionId) > maxSessionIdLen {
		return nil, errors.New(int(errno.InvalidParam), "sessionId must be 1 to 100 characters")
	}

	sessionId := req.SessionId
	if sessionId == "" {
		sessionId = snowflake.SessionID()
	}

	userId := util.UserIdFromCtx(l.ctx)

	res := l.svcCtx.Orchestrator.HandleTurn(l.ctx, sessionId, userId, message)
	return helper.ToChatMessageResponse(message, res), nil
}
