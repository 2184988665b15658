package customer

import (
	"github.com/classon/server/internal/customer/repository"
	"github.com/classon/server/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
