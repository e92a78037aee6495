package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/repository"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/pdf"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/storage"
)

const (
	mergeLockPrefix = "agrupamento:lock:"
	mergeLockTTL    = 5 * time.Minute
)

// MergeLocker serializes merge-and-cleanup runs per contract number.
type MergeLocker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

type AgrupamentoUsecase interface {
	// MesclarDocumentos concatenates the seven required documents in the
	// fixed business order into one FINAL artifact, stores it, and removes
	// the INDIVIDUAL sources best-effort.
	MesclarDocumentos(ctx context.Context, processoID uint) (*entity.ResultadoAgrupamento, error)
}

type agrupamentoUsecase struct {
	arquivoRepo repository.ArquivoRepository
	blobStore   storage.BlobStore
	merger      pdf.Merger
	locker      MergeLocker
	logger      *zap.Logger
}

func NewAgrupamentoUsecase(
	arquivoRepo repository.ArquivoRepository,
	blobStore storage.BlobStore,
	merger pdf.Merger,
	locker MergeLocker,
	logger *zap.Logger,
) AgrupamentoUsecase {
	return &agrupamentoUsecase{
		arquivoRepo: arquivoRepo,
		blobStore:   blobStore,
		merger:      merger,
		locker:      locker,
		logger:      logger,
	}
}

func (u *agrupamentoUsecase) MesclarDocumentos(ctx context.Context, processoID uint) (*entity.ResultadoAgrupamento, error) {
	arquivos, err := u.arquivoRepo.ListByProcesso(ctx, processoID)
	if err != nil {
		return nil, err
	}
	if len(arquivos) == 0 {
		return nil, ErrNenhumArquivo
	}

	numero := extrairNumeroContrato(arquivos)
	if numero == "" {
		return nil, ErrContratoNaoEncontrado
	}

	lockKey := mergeLockPrefix + numero
	acquired, err := u.locker.AcquireLock(ctx, lockKey, mergeLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire merge lock for %s: %w", numero, err)
	}
	if !acquired {
		return nil, ErrMesclagemEmAndamento
	}
	defer func() {
		if err := u.locker.ReleaseLock(context.WithoutCancel(ctx), lockKey); err != nil {
			u.logger.Warn("Failed to release merge lock",
				zap.String("key", lockKey),
				zap.Error(err),
			)
		}
	}()

	// Resolve every required document before touching the network: missing
	// any one aborts the merge naming it.
	porID := make(map[string]*entity.Arquivo, len(arquivos))
	for i := range arquivos {
		porID[semExtensao(arquivos[i].PublicID)] = &arquivos[i]
	}

	ordem := ordemAgrupamento(numero)
	fontes := make([]*entity.Arquivo, 0, len(ordem))
	for _, pubID := range ordem {
		arq, ok := porID[pubID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrArquivoObrigatorioAusente, pubID)
		}
		fontes = append(fontes, arq)
	}

	conteudos := make([][]byte, 0, len(fontes))
	for i, arq := range fontes {
		content, err := u.blobStore.Download(ctx, arq.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", ordem[i], err)
		}
		conteudos = append(conteudos, content)
	}

	mesclado, err := u.merger.Merge(ctx, conteudos)
	if err != nil {
		return nil, fmt.Errorf("failed to merge documents for contract %s: %w", numero, err)
	}

	nomeFinal := fmt.Sprintf("Contrato de Transporte - %s - agrupado", numero)
	uploaded, err := u.blobStore.Upload(ctx, mesclado, baseNamespace+"/agrupamento", nomeFinal)
	if err != nil {
		return nil, fmt.Errorf("failed to upload merged artifact for contract %s: %w", numero, err)
	}

	final := &entity.Arquivo{
		ProcessoID: processoID,
		Etapa:      "agrupamento",
		PublicID:   uploaded.PublicID,
		URL:        uploaded.URL,
		Tipo:       entity.TipoFinal,
	}
	if err := u.arquivoRepo.Create(ctx, final); err != nil {
		return nil, err
	}

	u.logger.Info("Merged package stored",
		zap.Uint("processo_id", processoID),
		zap.String("numero_contrato", numero),
		zap.String("public_id", uploaded.PublicID),
	)

	return &entity.ResultadoAgrupamento{
		NumeroContrato:    numero,
		PublicID:          uploaded.PublicID,
		URL:               uploaded.URL,
		ArquivosMesclados: ordem,
		Limpeza:           u.removerIndividuais(ctx, arquivos),
	}, nil
}

// removerIndividuais deletes the INDIVIDUAL sources after the FINAL package
// is stored. Best effort: a failed deletion keeps the local row and is
// reported inline instead of aborting the batch.
func (u *agrupamentoUsecase) removerIndividuais(ctx context.Context, arquivos []entity.Arquivo) []entity.RemocaoArquivo {
	limpeza := make([]entity.RemocaoArquivo, 0, len(arquivos))
	for _, arq := range arquivos {
		if arq.Tipo != entity.TipoIndividual {
			continue
		}
		if err := u.blobStore.Delete(ctx, arq.PublicID); err != nil {
			u.logger.Warn("Failed to delete individual file",
				zap.String("public_id", arq.PublicID),
				zap.Error(err),
			)
			limpeza = append(limpeza, entity.RemocaoArquivo{
				PublicID:  arq.PublicID,
				Resultado: fmt.Sprintf("erro: %v", err),
			})
			continue
		}
		if err := u.arquivoRepo.DeleteByID(ctx, arq.ID); err != nil {
			limpeza = append(limpeza, entity.RemocaoArquivo{
				PublicID:  arq.PublicID,
				Resultado: fmt.Sprintf("removido remotamente, erro local: %v", err),
			})
			continue
		}
		limpeza = append(limpeza, entity.RemocaoArquivo{
			PublicID:  arq.PublicID,
			Resultado: "removido",
		})
	}
	return limpeza
}
