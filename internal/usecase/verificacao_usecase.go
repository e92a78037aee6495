package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/repository"
)

type VerificacaoUsecase interface {
	// VerificarArquivos checks the full document set of a processo against
	// the fixed checklist. Pure read: no state changes.
	VerificarArquivos(ctx context.Context, processoID uint) (*entity.ResultadoVerificacao, error)
}

type verificacaoUsecase struct {
	arquivoRepo repository.ArquivoRepository
	logger      *zap.Logger
}

func NewVerificacaoUsecase(arquivoRepo repository.ArquivoRepository, logger *zap.Logger) VerificacaoUsecase {
	return &verificacaoUsecase{
		arquivoRepo: arquivoRepo,
		logger:      logger,
	}
}

func (u *verificacaoUsecase) VerificarArquivos(ctx context.Context, processoID uint) (*entity.ResultadoVerificacao, error) {
	arquivos, err := u.arquivoRepo.ListByProcesso(ctx, processoID)
	if err != nil {
		return nil, err
	}
	if len(arquivos) == 0 {
		return nil, ErrNenhumArquivo
	}

	encontrados := make([]string, 0, len(arquivos))
	for _, arq := range arquivos {
		encontrados = append(encontrados, arq.PublicID)
	}

	numero := extrairNumeroContrato(arquivos)
	if numero == "" {
		// A missing contract is a valid negative result here, not an error:
		// the caller needs the full listing to decide what to chase.
		return &entity.ResultadoVerificacao{
			Ok:                  false,
			Motivo:              "Arquivo de contrato não encontrado.",
			ArquivosEncontrados: encontrados,
		}, nil
	}

	presentes := make(map[string]bool, len(arquivos))
	for _, arq := range arquivos {
		presentes[semExtensao(arq.PublicID)] = true
	}

	obrigatorios := make(map[string]bool, 7)
	ok := true
	for _, pubID := range publicIDsObrigatorios(numero) {
		obrigatorios[pubID] = presentes[pubID]
		if !presentes[pubID] {
			ok = false
		}
	}

	u.logger.Info("Checklist verified",
		zap.Uint("processo_id", processoID),
		zap.String("numero_contrato", numero),
		zap.Bool("ok", ok),
	)

	return &entity.ResultadoVerificacao{
		Ok:                   ok,
		NumeroContrato:       numero,
		ArquivosObrigatorios: obrigatorios,
		ArquivosEncontrados:  encontrados,
	}, nil
}
