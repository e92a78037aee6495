package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/deViniciusPedroza/automacao-contratos/internal/config"
	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/repository"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/signing"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/storage"
)

type WebhookUsecase interface {
	// ProcessarEvento applies one already-authenticated provider callback.
	// Unknown documents, unmatched signers and duplicate deliveries are
	// logged and absorbed; the provider is never asked to retry.
	ProcessarEvento(ctx context.Context, payload map[string]interface{}) error
}

type webhookUsecase struct {
	config         *config.Config
	assinaturaRepo repository.AssinaturaRepository
	arquivoRepo    repository.ArquivoRepository
	signingClient  signing.Client
	blobStore      storage.BlobStore
	logger         *zap.Logger
}

func NewWebhookUsecase(
	cfg *config.Config,
	assinaturaRepo repository.AssinaturaRepository,
	arquivoRepo repository.ArquivoRepository,
	signingClient signing.Client,
	blobStore storage.BlobStore,
	logger *zap.Logger,
) WebhookUsecase {
	return &webhookUsecase{
		config:         cfg,
		assinaturaRepo: assinaturaRepo,
		arquivoRepo:    arquivoRepo,
		signingClient:  signingClient,
		blobStore:      blobStore,
		logger:         logger,
	}
}

func (u *webhookUsecase) ProcessarEvento(ctx context.Context, payload map[string]interface{}) error {
	root := eventRoot(payload)

	documentoID := extrairDocumentoID(root)
	if documentoID == "" {
		u.logger.Warn("Webhook payload carries no document id")
		return nil
	}

	documento, err := u.assinaturaRepo.FindByDocumentoAutentique(ctx, documentoID)
	if err != nil {
		return err
	}
	if documento == nil {
		u.logger.Warn("Webhook for unknown document", zap.String("document_id", documentoID))
		return nil
	}

	email := extrairEmailSignatario(root)
	if email == "" {
		u.logger.Info("Webhook carries no signer email, nothing to apply",
			zap.String("document_id", documentoID),
		)
		return nil
	}

	var signatario *entity.AssinaturaSignatario
	for i := range documento.Assinaturas {
		if strings.EqualFold(documento.Assinaturas[i].Email, email) {
			signatario = &documento.Assinaturas[i]
			break
		}
	}
	if signatario == nil {
		u.logger.Warn("Webhook signer not registered on document",
			zap.String("document_id", documentoID),
			zap.String("email", email),
		)
		return nil
	}

	if signatario.StatusAssinatura == entity.StatusSignatarioAssinado {
		u.logger.Info("Signer already recorded as signed",
			zap.String("document_id", documentoID),
			zap.String("email", email),
		)
	}

	// One transaction per event: signer mark, document close and processo
	// advance land together or not at all. The completion check also runs
	// for a redelivered callback, so a delivery that failed after the
	// signer write can be repaired by the provider's retry.
	concluido, err := u.assinaturaRepo.RegistrarAssinatura(ctx, documento.ID, signatario.ID, time.Now(), entity.StatusAguardandoCTE)
	if err != nil {
		return err
	}
	if signatario.StatusAssinatura != entity.StatusSignatarioAssinado {
		u.logger.Info("Signer marked as signed",
			zap.String("document_id", documentoID),
			zap.String("email", email),
		)
	}
	if !concluido {
		return nil
	}
	u.logger.Info("All signers signed, document complete",
		zap.String("document_id", documentoID),
		zap.Uint("processo_id", documento.ProcessoID),
	)

	// Archiving the signed original is best effort: the state transition
	// above already happened and a provider hiccup must not undo it.
	if err := u.arquivarAssinado(ctx, documento); err != nil {
		u.logger.Error("Failed to archive signed document",
			zap.String("document_id", documentoID),
			zap.Error(err),
		)
	}
	return nil
}

// arquivarAssinado polls the provider until the signed artifact shows up,
// then copies it into the blob store and records it as an Arquivo.
func (u *webhookUsecase) arquivarAssinado(ctx context.Context, documento *entity.DocumentoAssinatura) error {
	attempts := u.config.Autentique.SignedPollAttempts
	interval := u.config.Autentique.SignedPollInterval

	var signedURL string
	for attempt := 1; attempt <= attempts; attempt++ {
		detail, err := u.signingClient.GetDocument(ctx, documento.DocumentoIDAutentique)
		if err != nil {
			u.logger.Warn("Failed to fetch document detail",
				zap.String("document_id", documento.DocumentoIDAutentique),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		} else if detail.Files.Signed != "" {
			signedURL = detail.Files.Signed
			break
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	if signedURL == "" {
		u.logger.Warn("Signed file not available after polling",
			zap.String("document_id", documento.DocumentoIDAutentique),
			zap.Int("attempts", attempts),
		)
		return nil
	}

	content, err := u.signingClient.DownloadFile(ctx, signedURL)
	if err != nil {
		return err
	}
	result, err := u.blobStore.Upload(ctx, content, baseNamespace+"/contratos", documento.NomeDocumento+" - assinado")
	if err != nil {
		return err
	}
	arquivo := &entity.Arquivo{
		ProcessoID: documento.ProcessoID,
		Etapa:      "contratos",
		PublicID:   result.PublicID,
		URL:        result.URL,
		Tipo:       entity.TipoIndividual,
	}
	if err := u.arquivoRepo.Create(ctx, arquivo); err != nil {
		return err
	}
	u.logger.Info("Signed document archived",
		zap.String("document_id", documento.DocumentoIDAutentique),
		zap.String("public_id", result.PublicID),
	)
	return nil
}

// eventRoot unwraps the envelope some provider versions send, where the
// useful fields live under event.data instead of the top level.
func eventRoot(payload map[string]interface{}) map[string]interface{} {
	event, ok := payload["event"].(map[string]interface{})
	if !ok {
		return payload
	}
	data, ok := event["data"].(map[string]interface{})
	if !ok {
		return payload
	}
	return data
}

// extrairDocumentoID tries the known payload shapes in order: a top-level
// document field, then object.document, then object.id. Each slot may hold
// the id directly or an {"id": ...} map.
func extrairDocumentoID(root map[string]interface{}) string {
	if id := idFromSlot(root["document"]); id != "" {
		return id
	}
	if object, ok := root["object"].(map[string]interface{}); ok {
		if id := idFromSlot(object["document"]); id != "" {
			return id
		}
		if id, ok := object["id"].(string); ok {
			return id
		}
	}
	return ""
}

func idFromSlot(slot interface{}) string {
	switch v := slot.(type) {
	case string:
		return v
	case map[string]interface{}:
		if id, ok := v["id"].(string); ok {
			return id
		}
	}
	return ""
}

// extrairEmailSignatario tries, in order: user.email, a signature event
// entry of type signed or signature.accepted, and object.signatures entries
// flagged as signed.
func extrairEmailSignatario(root map[string]interface{}) string {
	if user, ok := root["user"].(map[string]interface{}); ok {
		if email, ok := user["email"].(string); ok && email != "" {
			return email
		}
	}
	if events, ok := root["events"].([]interface{}); ok {
		for _, raw := range events {
			ev, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			tipo, _ := ev["type"].(string)
			if tipo != "signed" && tipo != "signature.accepted" {
				continue
			}
			if user, ok := ev["user"].(map[string]interface{}); ok {
				if email, ok := user["email"].(string); ok && email != "" {
					return email
				}
			}
			if email, ok := ev["email"].(string); ok && email != "" {
				return email
			}
		}
	}
	if object, ok := root["object"].(map[string]interface{}); ok {
		if signatures, ok := object["signatures"].([]interface{}); ok {
			for _, raw := range signatures {
				sig, ok := raw.(map[string]interface{})
				if !ok {
					continue
				}
				if !assinouSignature(sig) {
					continue
				}
				if email, ok := sig["email"].(string); ok && email != "" {
					return email
				}
			}
		}
	}
	return ""
}

// assinouSignature reports whether a signatures[] entry carries a non-null
// signed marker.
func assinouSignature(sig map[string]interface{}) bool {
	signed, ok := sig["signed"]
	return ok && signed != nil
}
