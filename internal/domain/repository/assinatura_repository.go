package repository

import (
	"context"
	"time"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
)

// AssinaturaRepository persists signature requests and their signers.
// FindByDocumentoAutentique loads the signers alongside the document and
// returns (nil, nil) when the provider id is unknown.
type AssinaturaRepository interface {
	CreateWithSignatarios(ctx context.Context, documento *entity.DocumentoAssinatura) error
	FindByDocumentoAutentique(ctx context.Context, documentoID string) (*entity.DocumentoAssinatura, error)
	// RegistrarAssinatura applies one signature callback atomically: marks
	// the signatario signed (no-op when already final), and when every
	// signer of the documento is final and the documento is still open,
	// closes the documento and moves its processo to statusProcesso — all
	// in a single transaction, so a failure leaves no partial write.
	// Returns whether this call closed the documento.
	RegistrarAssinatura(ctx context.Context, documentoID, signatarioID uint, assinadoEm time.Time, statusProcesso entity.StatusProcesso) (bool, error)
	ListAll(ctx context.Context) ([]entity.DocumentoAssinatura, error)
	DeleteByID(ctx context.Context, id uint) error
}
