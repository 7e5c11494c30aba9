package user

import (
	"github.com/formfillhq/formfill/internal/user/repository"
	"github.com/formfillhq/formfill/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
