package auth

import (
	"github.com/formfillhq/formfill/internal/auth/repository"
	"github.com/formfillhq/formfill/internal/auth/service"
	"github.com/formfillhq/formfill/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(
		repository.Provide,
		service.New,
		session.NewManager,
	),
)
