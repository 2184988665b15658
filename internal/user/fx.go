package user

import (
	"github.com/classon/server/internal/user/repository"
	"github.com/classon/server/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
