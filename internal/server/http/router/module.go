package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/furnirent/internal/config"
	"github.com/polkiloo/furnirent/internal/server/http/handlers"
)

type routerParams struct {
	fx.In

	Facade handlers.RentalFacade
	Logger *slog.Logger
	Config *config.Config
}

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(func(p routerParams) *gin.Engine {
	return Setup(p.Facade, p.Logger, p.Config.GatewayCallbackSecret)
})
