// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package chat

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"

	"ShopMate/app/api/chat/internal/svc"
	"ShopMate/app/api/chat/internal/types"
	"ShopMate/app/common/consts/errno"
)

type ClearSessionLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewClearSessionLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ClearSessionLogic {
	return &ClearSessionLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ClearSessionLogic) ClearSession(req *types.ClearSessionRequest) (*types.ClearSessionResponse, error) {
	if req.SessionId == "" || len(req.SessionId) > maxSessionIdLen {
		return nil, errors.New(int(errno.InvalidParam), "sessionId must be 1 to 100 characters")
	}

	l.svcCtx.Sessions.Clear(req.SessionId)
	l.Logger.Infof("session cleared: %s", req.SessionId)

	return &types.ClearSessionResponse{
		Message:   "session cleared",
		SessionId: req.SessionId,
	}, nil
}
