// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	chat "ShopMate/app/api/chat/internal/handler/chat"
	"ShopMate/app/api/chat/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{serverCtx.OptionalAuthMiddleware},
			[]rest.Route{
				{
					Method:  http.MethodPost,
					Path:    "/chat/message",
					Handler: chat.SendChatMessageHandler(serverCtx),
				},
				{
					Method:  http.MethodGet,
					Path:    "/chat/history/:sessionId",
					Handler: chat.ChatHistoryHandler(serverCtx),
				},
				{
					Method:  http.MethodDelete,
					Path:    "/chat/session/:sessionId",
					Handler: chat.ClearSessionHandler(serverCtx),
				},
			}...,
		),
	)
}
