package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/deViniciusPedroza/automacao-contratos/internal/config"
	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/repository"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/signing"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/storage"
)

type AssinaturaUsecase interface {
	// CriarDocumento submits the contract PDF to the signing provider,
	// collects one shareable link per real signer, persists the signature
	// request, and advances the processo to awaiting-contract-signature.
	CriarDocumento(ctx context.Context, input *entity.DocumentoAssinaturaInput) (*entity.ResultadoDocumentoAssinatura, error)
}

type assinaturaUsecase struct {
	config         *config.Config
	processoRepo   repository.ProcessoRepository
	assinaturaRepo repository.AssinaturaRepository
	signingClient  signing.Client
	blobStore      storage.BlobStore
	logger         *zap.Logger
}

func NewAssinaturaUsecase(
	cfg *config.Config,
	processoRepo repository.ProcessoRepository,
	assinaturaRepo repository.AssinaturaRepository,
	signingClient signing.Client,
	blobStore storage.BlobStore,
	logger *zap.Logger,
) AssinaturaUsecase {
	return &assinaturaUsecase{
		config:         cfg,
		processoRepo:   processoRepo,
		assinaturaRepo: assinaturaRepo,
		signingClient:  signingClient,
		blobStore:      blobStore,
		logger:         logger,
	}
}

func (u *assinaturaUsecase) CriarDocumento(ctx context.Context, input *entity.DocumentoAssinaturaInput) (*entity.ResultadoDocumentoAssinatura, error) {
	if input.NomeDocumento == "" {
		return nil, fmt.Errorf("%w: nome_documento is required", ErrEntradaInvalida)
	}
	if input.ArquivoURL == "" {
		return nil, fmt.Errorf("%w: arquivo_url is required", ErrEntradaInvalida)
	}
	if len(input.Signers) == 0 {
		return nil, fmt.Errorf("%w: at least one signer is required", ErrEntradaInvalida)
	}
	for i, signer := range input.Signers {
		if signer.Name == "" {
			return nil, fmt.Errorf("%w: signer %d missing name", ErrEntradaInvalida, i+1)
		}
		if signer.Email == "" {
			return nil, fmt.Errorf("%w: signer %d missing email", ErrEntradaInvalida, i+1)
		}
		if len(signer.Positions) == 0 {
			return nil, fmt.Errorf("%w: signer %d missing positions", ErrEntradaInvalida, i+1)
		}
	}

	// Resolve the processo before anything is sent: a missing processo must
	// leave nothing persisted at the provider side either.
	numero := numeroContratoDoNome(input.NomeDocumento)
	if numero == "" {
		return nil, fmt.Errorf("%w: nome_documento %q carries no contract number", ErrEntradaInvalida, input.NomeDocumento)
	}
	processo, err := u.processoRepo.FindByNumeroContrato(ctx, numero)
	if err != nil {
		return nil, err
	}
	if processo == nil {
		return nil, fmt.Errorf("%w: numero_contrato %s", ErrProcessoNaoEncontrado, numero)
	}

	ccEmail := input.CCEmail
	if ccEmail == "" {
		ccEmail = u.config.Autentique.CCEmail
	}

	// Stage the PDF locally for the multipart upload. The staging dir is
	// removed whatever happens below.
	content, err := u.blobStore.Download(ctx, input.ArquivoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download contract from blob store: %w", err)
	}
	stagingDir, err := os.MkdirTemp("", "assinatura-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging dir: %w", err)
	}
	defer os.RemoveAll(stagingDir)

	stagedFile := filepath.Join(stagingDir, uuid.NewString()+".pdf")
	if err := os.WriteFile(stagedFile, content, 0o600); err != nil {
		return nil, fmt.Errorf("failed to stage contract: %w", err)
	}

	documento, err := u.signingClient.CreateDocument(ctx, input.NomeDocumento, input.Signers, ccEmail, stagedFile)
	if err != nil {
		return nil, err
	}

	u.logger.Info("Document created at signing provider",
		zap.String("document_id", documento.ID),
		zap.String("nome", documento.Name),
		zap.Int("signatures", len(documento.Signatures)),
	)

	// One shareable link per real signer. The account owner and CC entries
	// come back with an empty name and get no link. A failed link request
	// degrades to a nil link rather than failing the submission.
	outputs := make([]entity.SignatarioOutput, 0, len(documento.Signatures))
	for _, sig := range documento.Signatures {
		if sig.Name == "" {
			continue
		}
		out := entity.SignatarioOutput{
			PublicID: sig.PublicID,
			Name:     sig.Name,
			Email:    sig.Email,
		}
		link, err := u.signingClient.CreateSignatureLink(ctx, sig.PublicID)
		if err != nil {
			u.logger.Warn("Failed to create signature link",
				zap.String("public_id", sig.PublicID),
				zap.String("email", sig.Email),
				zap.Error(err),
			)
		} else {
			out.LinkAssinatura = &link
		}
		outputs = append(outputs, out)
	}

	registro := &entity.DocumentoAssinatura{
		ProcessoID:            processo.ID,
		DocumentoIDAutentique: documento.ID,
		NomeDocumento:         documento.Name,
		Status:                entity.StatusDocumentoAguardandoAssinatura,
	}
	for _, out := range outputs {
		registro.Assinaturas = append(registro.Assinaturas, entity.AssinaturaSignatario{
			Nome:             out.Name,
			Email:            out.Email,
			LinkAssinatura:   out.LinkAssinatura,
			StatusAssinatura: entity.StatusSignatarioAguardando,
		})
	}
	if err := u.assinaturaRepo.CreateWithSignatarios(ctx, registro); err != nil {
		return nil, err
	}

	if err := u.processoRepo.UpdateStatus(ctx, processo.ID, entity.StatusAguardandoAssinaturaContrato); err != nil {
		return nil, err
	}

	u.logger.Info("Signature request persisted",
		zap.Uint("processo_id", processo.ID),
		zap.String("numero_contrato", numero),
		zap.String("document_id", documento.ID),
		zap.Int("signers", len(outputs)),
	)

	return &entity.ResultadoDocumentoAssinatura{
		DocumentID:     documento.ID,
		Nome:           documento.Name,
		NumeroContrato: numero,
		ProcessoID:     processo.ID,
		Signers:        outputs,
	}, nil
}
