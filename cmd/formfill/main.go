package main

import (
	"github.com/formfillhq/formfill/internal/clock"
	"github.com/formfillhq/formfill/internal/config"
	"github.com/formfillhq/formfill/internal/migration"
	"github.com/formfillhq/formfill/internal/observability"
	"github.com/formfillhq/formfill/internal/server"
	"github.com/formfillhq/formfill/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		clock.Module,
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}
