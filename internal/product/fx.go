package product

import (
	"github.com/classon/server/internal/product/repository"
	"github.com/classon/server/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
