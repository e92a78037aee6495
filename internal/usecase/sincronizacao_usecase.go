package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/repository"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/signing"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/storage"
)

// folderPageSize matches the provider's documentsByFolder page limit.
const folderPageSize = 60

type SincronizacaoUsecase interface {
	// Sincronizar removes local rows whose remote counterpart is gone:
	// signature documents no longer in the provider folder and arquivos no
	// longer present in the blob store.
	Sincronizar(ctx context.Context) (*entity.ResultadoSincronizacao, error)
}

type sincronizacaoUsecase struct {
	assinaturaRepo repository.AssinaturaRepository
	arquivoRepo    repository.ArquivoRepository
	signingClient  signing.Client
	blobStore      storage.BlobStore
	logger         *zap.Logger
}

func NewSincronizacaoUsecase(
	assinaturaRepo repository.AssinaturaRepository,
	arquivoRepo repository.ArquivoRepository,
	signingClient signing.Client,
	blobStore storage.BlobStore,
	logger *zap.Logger,
) SincronizacaoUsecase {
	return &sincronizacaoUsecase{
		assinaturaRepo: assinaturaRepo,
		arquivoRepo:    arquivoRepo,
		signingClient:  signingClient,
		blobStore:      blobStore,
		logger:         logger,
	}
}

func (u *sincronizacaoUsecase) Sincronizar(ctx context.Context) (*entity.ResultadoSincronizacao, error) {
	resultado := &entity.ResultadoSincronizacao{
		RemovidosAutentique: []uint{},
		RemovidosCloudinary: []uint{},
	}

	remotos, err := u.listarDocumentosRemotos(ctx)
	if err != nil {
		return nil, err
	}

	documentos, err := u.assinaturaRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, documento := range documentos {
		if remotos[documento.DocumentoIDAutentique] {
			continue
		}
		if err := u.assinaturaRepo.DeleteByID(ctx, documento.ID); err != nil {
			return nil, err
		}
		u.logger.Info("Removed signature record absent at provider",
			zap.Uint("id", documento.ID),
			zap.String("document_id", documento.DocumentoIDAutentique),
		)
		resultado.RemovidosAutentique = append(resultado.RemovidosAutentique, documento.ID)
	}

	arquivos, err := u.arquivoRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, arquivo := range arquivos {
		existe, err := u.blobStore.Exists(ctx, arquivo.PublicID)
		if err != nil {
			// An indeterminate check keeps the row; the next sweep
			// retries it.
			u.logger.Warn("Existence check failed, keeping record",
				zap.String("public_id", arquivo.PublicID),
				zap.Error(err),
			)
			continue
		}
		if existe {
			continue
		}
		if err := u.arquivoRepo.DeleteByID(ctx, arquivo.ID); err != nil {
			return nil, err
		}
		u.logger.Info("Removed arquivo absent in blob store",
			zap.Uint("id", arquivo.ID),
			zap.String("public_id", arquivo.PublicID),
		)
		resultado.RemovidosCloudinary = append(resultado.RemovidosCloudinary, arquivo.ID)
	}

	u.logger.Info("Synchronization finished",
		zap.Int("removidos_autentique", len(resultado.RemovidosAutentique)),
		zap.Int("removidos_cloudinary", len(resultado.RemovidosCloudinary)),
	)
	return resultado, nil
}

func (u *sincronizacaoUsecase) listarDocumentosRemotos(ctx context.Context) (map[string]bool, error) {
	remotos := make(map[string]bool)
	for page := 1; ; page++ {
		docs, err := u.signingClient.ListDocumentsByFolder(ctx, folderPageSize, page)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			remotos[doc.ID] = true
		}
		if len(docs) < folderPageSize {
			return remotos, nil
		}
	}
}
