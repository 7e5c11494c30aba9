package extract

import "go.uber.org/fx"

var Module = fx.Module("providers.extract",
	fx.Provide(func() Provider {
		return &NoOpProvider{}
	}),
)
