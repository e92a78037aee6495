package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/repository"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/storage"
)

// pdfMagic is the file-signature prefix every PDF starts with.
var pdfMagic = []byte("%PDF-")

// etapasValidas is the closed set of upload folders under the namespace.
var etapasValidas = map[string]bool{
	"raster":       true,
	"rntrc":        true,
	"contratos":    true,
	"comprovantes": true,
	"cte":          true,
	"agrupamento":  true,
	"outros":       true,
}

type ArquivoUsecase interface {
	// EnviarPDF stores one PDF under baseNamespace/etapa. Content without
	// the PDF file signature is rejected. A non-empty nome overrides the
	// generated filename; a non-empty numeroContrato links the upload to
	// that processo and records an Arquivo row.
	EnviarPDF(ctx context.Context, conteudo []byte, etapa, nome, numeroContrato string) (*storage.UploadResult, error)
	ListarPasta(ctx context.Context, etapa string) ([]storage.RemoteFile, error)
	RemoverArquivo(ctx context.Context, publicID string) error
}

type arquivoUsecase struct {
	processoRepo repository.ProcessoRepository
	arquivoRepo  repository.ArquivoRepository
	blobStore    storage.BlobStore
	logger       *zap.Logger
}

func NewArquivoUsecase(
	processoRepo repository.ProcessoRepository,
	arquivoRepo repository.ArquivoRepository,
	blobStore storage.BlobStore,
	logger *zap.Logger,
) ArquivoUsecase {
	return &arquivoUsecase{
		processoRepo: processoRepo,
		arquivoRepo:  arquivoRepo,
		blobStore:    blobStore,
		logger:       logger,
	}
}

func (u *arquivoUsecase) EnviarPDF(ctx context.Context, conteudo []byte, etapa, nome, numeroContrato string) (*storage.UploadResult, error) {
	if len(conteudo) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrEntradaInvalida)
	}
	// Content sniffing rather than trusting the declared content type.
	if !bytes.HasPrefix(conteudo, pdfMagic) {
		return nil, fmt.Errorf("%w: only PDF files are accepted", ErrEntradaInvalida)
	}
	if !etapasValidas[etapa] {
		return nil, fmt.Errorf("%w: %s", ErrEtapaInvalida, etapa)
	}

	var processo *entity.Processo
	if numeroContrato != "" {
		var err error
		processo, err = u.processoRepo.FindByNumeroContrato(ctx, numeroContrato)
		if err != nil {
			return nil, err
		}
		if processo == nil {
			return nil, fmt.Errorf("%w: numero_contrato %s", ErrProcessoNaoEncontrado, numeroContrato)
		}
	}

	result, err := u.blobStore.Upload(ctx, conteudo, baseNamespace+"/"+etapa, strings.TrimSuffix(nome, ".pdf"))
	if err != nil {
		return nil, err
	}
	u.logger.Info("PDF uploaded",
		zap.String("etapa", etapa),
		zap.String("public_id", result.PublicID),
	)

	if processo != nil {
		arquivo := &entity.Arquivo{
			ProcessoID: processo.ID,
			Etapa:      etapa,
			PublicID:   result.PublicID,
			URL:        result.URL,
			Tipo:       entity.TipoIndividual,
		}
		if err := u.arquivoRepo.Create(ctx, arquivo); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (u *arquivoUsecase) ListarPasta(ctx context.Context, etapa string) ([]storage.RemoteFile, error) {
	if !etapasValidas[etapa] {
		return nil, fmt.Errorf("%w: %s", ErrEtapaInvalida, etapa)
	}
	return u.blobStore.List(ctx, baseNamespace+"/"+etapa)
}

func (u *arquivoUsecase) RemoverArquivo(ctx context.Context, publicID string) error {
	if !strings.HasPrefix(publicID, baseNamespace+"/") {
		return fmt.Errorf("%w: public_id outside namespace", ErrEtapaInvalida)
	}
	if err := u.blobStore.Delete(ctx, publicID); err != nil {
		return err
	}
	// The local row, when present, goes with it.
	if err := u.arquivoRepo.DeleteByPublicID(ctx, publicID); err != nil {
		u.logger.Warn("Failed to delete local arquivo record",
			zap.String("public_id", publicID),
			zap.Error(err),
		)
	}
	u.logger.Info("Arquivo removed", zap.String("public_id", publicID))
	return nil
}
