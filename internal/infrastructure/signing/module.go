package signing

import "go.uber.org/fx"

var Module = fx.Module("signing",
	fx.Provide(NewAutentiqueClient),
)
