package discovery

import "go.uber.org/fx"

// Module provides the discovery engine dependencies
var Module = fx.Module("discovery",
	fx.Provide(
		NewEngine,
	),
)
