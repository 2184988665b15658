package token

import (
	"github.com/classon/server/internal/config"
	"go.uber.org/fx"
)

func NewFromConfig(cfg config.Config) (*Issuer, error) {
	return NewIssuer(cfg.AuthJWTSecret, cfg.AccessTokenTTL)
}

var Module = fx.Module("token",
	fx.Provide(NewFromConfig),
)
