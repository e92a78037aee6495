package usecase

import (
	"go.uber.org/fx"

	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/redis"
)

var Module = fx.Module("usecase",
	fx.Provide(
		func(c *redis.RedisClient) MergeLocker { return c },
		NewProcessoUsecase,
		NewArquivoUsecase,
		NewVerificacaoUsecase,
		NewAgrupamentoUsecase,
		NewAssinaturaUsecase,
		NewWebhookUsecase,
		NewSincronizacaoUsecase,
	),
)
