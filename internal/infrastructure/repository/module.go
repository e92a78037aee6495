package repository

import "go.uber.org/fx"

var Module = fx.Module("repository",
	fx.Provide(NewProcessoRepository),
	fx.Provide(NewArquivoRepository),
	fx.Provide(NewAssinaturaRepository),
)
