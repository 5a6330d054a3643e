// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"
	xerrors "github.com/zeromicro/x/errors"

	"ShopMate/app/api/chat/internal/config"
	"ShopMate/app/api/chat/internal/handler"
	"ShopMate/app/api/chat/internal/svc"
	"ShopMate/app/common/response"
)

var configFile = flag.String("f", "etc/chat-api.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)

	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	httpx.SetErrorHandlerCtx(errorHandler)

	ctx := svc.NewServiceContext(c)
	handler.RegisterHandlers(server, ctx)

	fmt.Printf("Starting server at %s:%d...\n", c.Host, c.Port)
	server.Start()
}

// errorHandler shapes the only two error classes that cross the HTTP
// boundary: request-shape failures become 400 bodies with field detail,
// coded internal failures become a generic 500. Upstream detail stays in
// the server log only. Errors without a code are binding failures from
// httpx.Parse and count as validation.
func errorHandler(ctx context.Context, err error) (int, any) {
	var codeMsg *xerrors.CodeMsg
	if errors.As(err, &codeMsg) && codeMsg.Code >= 50000 {
		logx.WithContext(ctx).Errorf("request failed: %v", err)
		return http.StatusInternalServerError, response.NewInternalError("internal server error")
	}

	details := err.Error()
	if codeMsg != nil {
		details = codeMsg.Msg
	}
	return http.StatusBadRequest, response.NewValidationError(details)
}
