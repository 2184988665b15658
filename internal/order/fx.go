package order

import (
	"github.com/classon/server/internal/order/repository"
	"github.com/classon/server/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
