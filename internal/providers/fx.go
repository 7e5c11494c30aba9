package providers

import (
	"github.com/formfillhq/formfill/internal/providers/billing"
	"github.com/formfillhq/formfill/internal/providers/email"
	"github.com/formfillhq/formfill/internal/providers/extract"
	"github.com/formfillhq/formfill/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Options(
	email.Module,
	pdf.Module,
	billing.Module,
	extract.Module,
)
