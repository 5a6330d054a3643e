// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package chat

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"

	"ShopMate/app/api/chat/internal/logic/helper"
	"ShopMate/app/api/chat/internal/svc"
	"ShopMate/app/api/chat/internal/types"
	"ShopMate/app/common/consts/errno"
)

type ChatHistoryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewChatHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ChatHistoryLogic {
	return &ChatHistoryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ChatHistoryLogic) ChatHistory(req *types.ChatHistoryRequest) (*types.ChatHistoryResponse, error) {
	if req.SessionId == "" || len(req.SessionId) > maxSessionIdLen {
		return nil, errors.New(int(errno.InvalidParam), "sessionId must be 1 to 100 characters")
	}

	snap := l.svcCtx.Sessions.GetOrCreate(req.SessionId)
	return helper.ToHistoryResponse(snap), nil
}
