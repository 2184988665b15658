package ebook

import (
	"github.com/classon/server/internal/ebook/repository"
	"github.com/classon/server/internal/ebook/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ebook.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
