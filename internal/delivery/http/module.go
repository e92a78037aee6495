package http

import (
	"go.uber.org/fx"

	"github.com/deViniciusPedroza/automacao-contratos/internal/delivery/http/handler"
	"github.com/deViniciusPedroza/automacao-contratos/internal/delivery/http/router"
)

var Module = fx.Module("http",
	fx.Provide(
		handler.NewProcessoHandler,
		handler.NewArquivoHandler,
		handler.NewAgrupamentoHandler,
		handler.NewAssinaturaHandler,
		handler.NewWebhookHandler,
		handler.NewSincronizacaoHandler,
		handler.NewHealthHandler,
		router.NewRouter,
	),
)
