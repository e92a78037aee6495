package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/deViniciusPedroza/automacao-contratos/internal/config"
	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
)

func webhookConfig() *config.Config {
	return &config.Config{
		Autentique: config.AutentiqueConfig{
			SignedPollAttempts: 2,
			SignedPollInterval: time.Millisecond,
		},
	}
}

func documentoComSignatarios(emails ...string) entity.DocumentoAssinatura {
	doc := entity.DocumentoAssinatura{
		ProcessoID:            1,
		DocumentoIDAutentique: "doc-abc",
		NomeDocumento:         "Contrato de Transporte - 56765 - agrupado",
		Status:                entity.StatusDocumentoAguardandoAssinatura,
	}
	for i, email := range emails {
		doc.Assinaturas = append(doc.Assinaturas, entity.AssinaturaSignatario{
			ID:               uint(i + 1),
			Nome:             "Signatário " + email,
			Email:            email,
			StatusAssinatura: entity.StatusSignatarioAguardando,
		})
	}
	return doc
}

func eventoAssinatura(documentID, email string) map[string]interface{} {
	return map[string]interface{}{
		"event": map[string]interface{}{
			"data": map[string]interface{}{
				"document": map[string]interface{}{"id": documentID},
				"user":     map[string]interface{}{"email": email},
			},
		},
	}
}

// ambienteWebhook wires the fakes for one document awaiting signature and
// returns the usecase plus the repositories the tests inspect.
func ambienteWebhook(signingClient *fakeSigningClient, store *fakeBlobStore, emails ...string) (WebhookUsecase, *fakeAssinaturaRepo, *fakeProcessoRepo, *fakeArquivoRepo) {
	assinaturaRepo := newFakeAssinaturaRepo(documentoComSignatarios(emails...))
	processoRepo := newFakeProcessoRepo()
	processoRepo.processos[1] = &entity.Processo{ID: 1, NumeroContrato: "56765", Status: entity.StatusAguardandoAssinaturaContrato}
	assinaturaRepo.processos = processoRepo
	arquivoRepo := newFakeArquivoRepo()
	uc := NewWebhookUsecase(webhookConfig(), assinaturaRepo, arquivoRepo, signingClient, store, zap.NewNop())
	return uc, assinaturaRepo, processoRepo, arquivoRepo
}

func TestProcessarEventoMarcaSignatario(t *testing.T) {
	uc, assinaturaRepo, processoRepo, _ := ambienteWebhook(newFakeSigningClient(), newFakeBlobStore(), "a@x.com", "b@x.com")

	err := uc.ProcessarEvento(context.Background(), eventoAssinatura("doc-abc", "a@x.com"))
	require.NoError(t, err)

	doc, _ := assinaturaRepo.FindByDocumentoAutentique(context.Background(), "doc-abc")
	assert.Equal(t, entity.StatusSignatarioAssinado, doc.Assinaturas[0].StatusAssinatura)
	assert.NotNil(t, doc.Assinaturas[0].DataAssinatura)
	// The second signer is untouched and the document stays open.
	assert.Equal(t, entity.StatusSignatarioAguardando, doc.Assinaturas[1].StatusAssinatura)
	assert.Equal(t, entity.StatusDocumentoAguardandoAssinatura, doc.Status)
	assert.Equal(t, entity.StatusAguardandoAssinaturaContrato, processoRepo.processos[1].Status)
}

func TestProcessarEventoEmailCaseInsensitive(t *testing.T) {
	uc, assinaturaRepo, _, _ := ambienteWebhook(newFakeSigningClient(), newFakeBlobStore(), "a@x.com", "b@x.com")

	require.NoError(t, uc.ProcessarEvento(context.Background(), eventoAssinatura("doc-abc", "A@X.COM")))

	doc, _ := assinaturaRepo.FindByDocumentoAutentique(context.Background(), "doc-abc")
	assert.Equal(t, entity.StatusSignatarioAssinado, doc.Assinaturas[0].StatusAssinatura)
}

func TestProcessarEventoDuplicadoNaoAltera(t *testing.T) {
	uc, assinaturaRepo, _, _ := ambienteWebhook(newFakeSigningClient(), newFakeBlobStore(), "a@x.com", "b@x.com")

	require.NoError(t, uc.ProcessarEvento(context.Background(), eventoAssinatura("doc-abc", "a@x.com")))
	doc, _ := assinaturaRepo.FindByDocumentoAutentique(context.Background(), "doc-abc")
	primeiro := doc.Assinaturas[0].DataAssinatura

	require.NoError(t, uc.ProcessarEvento(context.Background(), eventoAssinatura("doc-abc", "a@x.com")))
	doc, _ = assinaturaRepo.FindByDocumentoAutentique(context.Background(), "doc-abc")
	assert.Equal(t, primeiro, doc.Assinaturas[0].DataAssinatura)
}

func TestProcessarEventoDocumentoDesconhecido(t *testing.T) {
	uc := NewWebhookUsecase(webhookConfig(), newFakeAssinaturaRepo(), newFakeArquivoRepo(), newFakeSigningClient(), newFakeBlobStore(), zap.NewNop())

	// Absorbed without error: the provider must not retry.
	assert.NoError(t, uc.ProcessarEvento(context.Background(), eventoAssinatura("doc-inexistente", "a@x.com")))
}

func TestProcessarEventoSignatarioDesconhecido(t *testing.T) {
	uc, assinaturaRepo, _, _ := ambienteWebhook(newFakeSigningClient(), newFakeBlobStore(), "a@x.com")

	require.NoError(t, uc.ProcessarEvento(context.Background(), eventoAssinatura("doc-abc", "intruso@x.com")))

	doc, _ := assinaturaRepo.FindByDocumentoAutentique(context.Background(), "doc-abc")
	assert.Equal(t, entity.StatusSignatarioAguardando, doc.Assinaturas[0].StatusAssinatura)
}

func TestProcessarEventoUltimoSignatarioCompletaDocumento(t *testing.T) {
	signingClient := newFakeSigningClient()
	signingClient.detail = &entity.AutentiqueDocumentDetail{
		ID:   "doc-abc",
		Name: "Contrato de Transporte - 56765 - agrupado",
		Files: entity.AutentiqueDocumentFiles{
			Signed: "https://autentique.example.com/signed.pdf",
		},
	}
	signingClient.downloads["https://autentique.example.com/signed.pdf"] = []byte("signed-pdf")
	store := newFakeBlobStore()

	uc, assinaturaRepo, processoRepo, arquivoRepo := ambienteWebhook(signingClient, store, "a@x.com", "b@x.com")

	require.NoError(t, uc.ProcessarEvento(context.Background(), eventoAssinatura("doc-abc", "a@x.com")))
	require.NoError(t, uc.ProcessarEvento(context.Background(), eventoAssinatura("doc-abc", "b@x.com")))

	doc, _ := assinaturaRepo.FindByDocumentoAutentique(context.Background(), "doc-abc")
	assert.Equal(t, entity.StatusDocumentoAssinado, doc.Status)
	assert.Equal(t, entity.StatusAguardandoCTE, processoRepo.processos[1].Status)

	// The signed artifact lands in the contracts folder as a new arquivo.
	require.Len(t, arquivoRepo.criados, 1)
	assert.Equal(t, "automacao-contratos/contratos/Contrato de Transporte - 56765 - agrupado - assinado", arquivoRepo.criados[0].PublicID)
	assert.Equal(t, entity.TipoIndividual, arquivoRepo.criados[0].Tipo)
}

func TestProcessarEventoCompletaExatamenteUmaVez(t *testing.T) {
	signingClient := newFakeSigningClient()
	signingClient.detail = &entity.AutentiqueDocumentDetail{ID: "doc-abc", Files: entity.AutentiqueDocumentFiles{}}

	uc, assinaturaRepo, _, _ := ambienteWebhook(signingClient, newFakeBlobStore(), "a@x.com")

	require.NoError(t, uc.ProcessarEvento(context.Background(), eventoAssinatura("doc-abc", "a@x.com")))
	require.NoError(t, uc.ProcessarEvento(context.Background(), eventoAssinatura("doc-abc", "a@x.com")))

	assert.Equal(t, 1, assinaturaRepo.conclusoes)
}

func TestProcessarEventoFalhaTransacionalNaoDeixaEscritaParcial(t *testing.T) {
	signingClient := newFakeSigningClient()
	signingClient.detail = &entity.AutentiqueDocumentDetail{ID: "doc-abc", Files: entity.AutentiqueDocumentFiles{}}

	uc, assinaturaRepo, processoRepo, _ := ambienteWebhook(signingClient, newFakeBlobStore(), "a@x.com")
	assinaturaRepo.falhaRegistro = errors.New("connection reset")

	// First delivery fails as a whole: no record moved.
	err := uc.ProcessarEvento(context.Background(), eventoAssinatura("doc-abc", "a@x.com"))
	require.Error(t, err)

	doc, _ := assinaturaRepo.FindByDocumentoAutentique(context.Background(), "doc-abc")
	assert.Equal(t, entity.StatusSignatarioAguardando, doc.Assinaturas[0].StatusAssinatura)
	assert.Equal(t, entity.StatusDocumentoAguardandoAssinatura, doc.Status)
	assert.Equal(t, entity.StatusAguardandoAssinaturaContrato, processoRepo.processos[1].Status)

	// The redelivered event applies everything.
	require.NoError(t, uc.ProcessarEvento(context.Background(), eventoAssinatura("doc-abc", "a@x.com")))
	doc, _ = assinaturaRepo.FindByDocumentoAutentique(context.Background(), "doc-abc")
	assert.Equal(t, entity.StatusDocumentoAssinado, doc.Status)
	assert.Equal(t, entity.StatusAguardandoCTE, processoRepo.processos[1].Status)
}

func TestProcessarEventoRedeliveryConcluiDocumentoPendente(t *testing.T) {
	// A document whose last signer is already recorded as signed but that
	// never closed (state left by an older partial failure) is repaired by
	// the redelivered callback.
	docPendente := documentoComSignatarios("a@x.com")
	agora := time.Now()
	docPendente.Assinaturas[0].StatusAssinatura = entity.StatusSignatarioAssinado
	docPendente.Assinaturas[0].DataAssinatura = &agora

	assinaturaRepo := newFakeAssinaturaRepo(docPendente)
	processoRepo := newFakeProcessoRepo()
	processoRepo.processos[1] = &entity.Processo{ID: 1, Status: entity.StatusAguardandoAssinaturaContrato}
	assinaturaRepo.processos = processoRepo

	signingClient := newFakeSigningClient()
	signingClient.detail = &entity.AutentiqueDocumentDetail{ID: "doc-abc", Files: entity.AutentiqueDocumentFiles{}}

	uc := NewWebhookUsecase(webhookConfig(), assinaturaRepo, newFakeArquivoRepo(), signingClient, newFakeBlobStore(), zap.NewNop())
	require.NoError(t, uc.ProcessarEvento(context.Background(), eventoAssinatura("doc-abc", "a@x.com")))

	doc, _ := assinaturaRepo.FindByDocumentoAutentique(context.Background(), "doc-abc")
	assert.Equal(t, entity.StatusDocumentoAssinado, doc.Status)
	assert.Equal(t, entity.StatusAguardandoCTE, processoRepo.processos[1].Status)
	// The original signing timestamp is preserved.
	assert.Equal(t, &agora, doc.Assinaturas[0].DataAssinatura)
}

func TestProcessarEventoSemArtefatoAssinadoAposPolling(t *testing.T) {
	signingClient := newFakeSigningClient()
	signingClient.detail = &entity.AutentiqueDocumentDetail{ID: "doc-abc", Files: entity.AutentiqueDocumentFiles{}}

	uc, _, processoRepo, arquivoRepo := ambienteWebhook(signingClient, newFakeBlobStore(), "a@x.com")

	require.NoError(t, uc.ProcessarEvento(context.Background(), eventoAssinatura("doc-abc", "a@x.com")))

	// Polling exhausted without the signed file: state transition stands,
	// no arquivo recorded.
	assert.Equal(t, 2, signingClient.detailCalls)
	assert.Empty(t, arquivoRepo.criados)
	assert.Equal(t, entity.StatusAguardandoCTE, processoRepo.processos[1].Status)
}

func TestExtrairDocumentoIDFormatos(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]interface{}
		want    string
	}{
		{"document string", map[string]interface{}{"document": "d1"}, "d1"},
		{"document map", map[string]interface{}{"document": map[string]interface{}{"id": "d2"}}, "d2"},
		{"object document", map[string]interface{}{"object": map[string]interface{}{"document": "d3"}}, "d3"},
		{"object id", map[string]interface{}{"object": map[string]interface{}{"id": "d4"}}, "d4"},
		{"ausente", map[string]interface{}{"foo": "bar"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extrairDocumentoID(tc.payload))
		})
	}
}

func TestExtrairEmailSignatarioFormatos(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]interface{}
		want    string
	}{
		{
			"user email",
			map[string]interface{}{"user": map[string]interface{}{"email": "u@x.com"}},
			"u@x.com",
		},
		{
			"evento signed",
			map[string]interface{}{"events": []interface{}{
				map[string]interface{}{"type": "viewed", "user": map[string]interface{}{"email": "nao@x.com"}},
				map[string]interface{}{"type": "signed", "user": map[string]interface{}{"email": "sim@x.com"}},
			}},
			"sim@x.com",
		},
		{
			"evento signature.accepted",
			map[string]interface{}{"events": []interface{}{
				map[string]interface{}{"type": "signature.accepted", "email": "ok@x.com"},
			}},
			"ok@x.com",
		},
		{
			"signatures assinadas",
			map[string]interface{}{"object": map[string]interface{}{"signatures": []interface{}{
				map[string]interface{}{"email": "pendente@x.com"},
				map[string]interface{}{"email": "feito@x.com", "signed": map[string]interface{}{"created_at": "2026-01-01"}},
			}}},
			"feito@x.com",
		},
		{"ausente", map[string]interface{}{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extrairEmailSignatario(tc.payload))
		})
	}
}
