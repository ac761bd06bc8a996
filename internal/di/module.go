package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/furnirent/internal/adapter/gateway"
	"github.com/polkiloo/furnirent/internal/app"
	"github.com/polkiloo/furnirent/internal/config"
	"github.com/polkiloo/furnirent/internal/logger"
	"github.com/polkiloo/furnirent/internal/pkg/auth"
	"github.com/polkiloo/furnirent/internal/server/http/handlers"
	"github.com/polkiloo/furnirent/internal/server/http/router"
	"github.com/polkiloo/furnirent/internal/storage/postgres"
	"github.com/polkiloo/furnirent/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		gateway.Module,
		usecase.Module,
		fx.Provide(func(client gateway.Client) app.ChargeProvider { return client }),
		fx.Provide(func(f *app.RentalFacade) handlers.RentalFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
