package migration

import (
	authdomain "github.com/formfillhq/formfill/internal/auth/domain"
	mappingdomain "github.com/formfillhq/formfill/internal/mapping/domain"
	profiledomain "github.com/formfillhq/formfill/internal/profile/domain"
	userdomain "github.com/formfillhq/formfill/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Run migrates the five entity tables. AutoMigrate keeps the schema
// meaning identical on both backends, foreign keys included.
func Run(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&userdomain.User{},
		&authdomain.Session{},
		&authdomain.MagicToken{},
		&profiledomain.Profile{},
		&mappingdomain.PDFMapping{},
	)
}

// Module runs the schema migration on startup.
var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, log *zap.Logger) error {
		if err := Run(conn); err != nil {
			return err
		}
		log.Info("schema migration complete")
		return nil
	}),
)
