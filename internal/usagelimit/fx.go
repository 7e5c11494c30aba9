package usagelimit

import "go.uber.org/fx"

var Module = fx.Module("usagelimit",
	fx.Provide(New),
)
