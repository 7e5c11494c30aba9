package profile

import (
	"github.com/formfillhq/formfill/internal/profile/repository"
	"github.com/formfillhq/formfill/internal/profile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("profile.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
