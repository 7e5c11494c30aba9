package mapping

import (
	"github.com/formfillhq/formfill/internal/mapping/repository"
	"github.com/formfillhq/formfill/internal/mapping/service"
	"go.uber.org/fx"
)

var Module = fx.Module("mapping.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
