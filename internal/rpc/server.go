package rpc

import (
	"log/slog"

	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/newsdesk/internal/newsportal"
)

const NamespaceNews = "news"

func New(logger *slog.Logger, newsManager *newsportal.Manager) *zenrpc.Server {
	rpcService := NewNewsService(newsManager)
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true})
	rpcServer.Register(NamespaceNews, rpcService)
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, "newsdesk", nil))

	return rpcServer
}
