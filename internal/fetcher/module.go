package fetcher

import (
	"github.com/ocpkit/auto-catalog/internal/discovery"
	"go.uber.org/fx"
)

// Module provides the fetcher module dependencies
var Module = fx.Module("fetcher",
	fx.Provide(
		fx.Annotate(
			NewHTTPFetcher,
			fx.As(new(discovery.Fetcher)),
		),
	),
)
