package instructor

import (
	"github.com/classon/server/internal/instructor/repository"
	"github.com/classon/server/internal/instructor/service"
	"go.uber.org/fx"
)

var Module = fx.Module("instructor.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
