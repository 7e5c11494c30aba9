package fill

import "go.uber.org/fx"

var Module = fx.Module("fill",
	fx.Provide(New),
)
