package validator

import (
	"github.com/ocpkit/auto-catalog/internal/discovery"
	"go.uber.org/fx"
)

// Module provides the validator module dependencies
var Module = fx.Module("validator",
	fx.Provide(
		fx.Annotate(
			NewStructureValidator,
			fx.As(new(discovery.Validator)),
		),
	),
)
