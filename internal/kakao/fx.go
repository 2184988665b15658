package kakao

import "go.uber.org/fx"

var Module = fx.Module("kakao.service",
	fx.Provide(New),
)
