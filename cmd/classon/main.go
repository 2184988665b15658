package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/classon/server/internal/config"
	"github.com/classon/server/internal/customer"
	"github.com/classon/server/internal/ebook"
	"github.com/classon/server/internal/instructor"
	"github.com/classon/server/internal/kakao"
	"github.com/classon/server/internal/logger"
	"github.com/classon/server/internal/migration"
	"github.com/classon/server/internal/observability"
	"github.com/classon/server/internal/order"
	"github.com/classon/server/internal/product"
	"github.com/classon/server/internal/server"
	"github.com/classon/server/internal/token"
	"github.com/classon/server/internal/user"
	"github.com/classon/server/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		token.Module,

		// Domains
		instructor.Module,
		user.Module,
		customer.Module,
		product.Module,
		order.Module,
		ebook.Module,
		kakao.Module,

		// HTTP surface
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
