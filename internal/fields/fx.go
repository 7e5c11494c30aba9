package fields

import "go.uber.org/fx"

var Module = fx.Module("fields",
	fx.Provide(NewTableHolder),
)
