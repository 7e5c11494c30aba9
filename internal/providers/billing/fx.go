package billing

import "go.uber.org/fx"

var Module = fx.Module("providers.billing",
	fx.Provide(func() Provider {
		return &NoOpProvider{}
	}),
)
