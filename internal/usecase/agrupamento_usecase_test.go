package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
)

// montaAcervo seeds the blob store and repository with the seven required
// documents in a scrambled insertion order. Each file's content names its
// category so the merged output exposes the concatenation sequence.
func montaAcervo(t *testing.T, numero string, processoID uint) (*fakeArquivoRepo, *fakeBlobStore) {
	t.Helper()
	store := newFakeBlobStore()

	conteudos := map[string]string{
		publicIDCTE(numero):             "cte",
		publicIDComprovante(numero):     "comprovante",
		publicIDRasterVeiculo(numero):   "raster_veiculo",
		publicIDContrato(numero):        "contrato",
		publicIDManifesto(numero):       "manifesto",
		publicIDRNTRC(numero):           "rntrc",
		publicIDRasterMotorista(numero): "raster_motorista",
	}
	var arquivos []entity.Arquivo
	for pubID, conteudo := range conteudos {
		url := store.add(pubID, []byte(conteudo))
		arquivos = append(arquivos, entity.Arquivo{
			ProcessoID: processoID,
			PublicID:   pubID,
			URL:        url,
			Tipo:       entity.TipoIndividual,
		})
	}
	return newFakeArquivoRepo(arquivos...), store
}

func TestMesclarDocumentosOrdemFixa(t *testing.T) {
	repo, store := montaAcervo(t, "56765", 1)
	uc := NewAgrupamentoUsecase(repo, store, fakeMerger{}, newFakeLocker(), zap.NewNop())

	resultado, err := uc.MesclarDocumentos(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "56765", resultado.NumeroContrato)
	assert.Equal(t, ordemAgrupamento("56765"), resultado.ArquivosMesclados)

	// The merged artifact concatenates the sources in the business order,
	// regardless of insertion order above.
	merged, err := store.Download(context.Background(), resultado.URL)
	require.NoError(t, err)
	assert.Equal(t, "contrato|manifesto|raster_motorista|raster_veiculo|rntrc|comprovante|cte", string(merged))

	assert.Equal(t, "automacao-contratos/agrupamento/Contrato de Transporte - 56765 - agrupado", resultado.PublicID)
}

func TestMesclarDocumentosRegistraFinalERemoveIndividuais(t *testing.T) {
	repo, store := montaAcervo(t, "56765", 1)
	uc := NewAgrupamentoUsecase(repo, store, fakeMerger{}, newFakeLocker(), zap.NewNop())

	resultado, err := uc.MesclarDocumentos(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, repo.criados, 1)
	assert.Equal(t, entity.TipoFinal, repo.criados[0].Tipo)
	assert.Equal(t, resultado.PublicID, repo.criados[0].PublicID)

	// All seven INDIVIDUAL sources are removed; the FINAL survives.
	assert.Len(t, resultado.Limpeza, 7)
	for _, remocao := range resultado.Limpeza {
		assert.Equal(t, "removido", remocao.Resultado, remocao.PublicID)
	}
	restantes, _ := repo.ListByProcesso(context.Background(), 1)
	require.Len(t, restantes, 1)
	assert.Equal(t, entity.TipoFinal, restantes[0].Tipo)
}

func TestMesclarDocumentosFalhaRemocaoNaoAborta(t *testing.T) {
	repo, store := montaAcervo(t, "77", 1)
	store.deleteErr[publicIDRNTRC("77")] = errors.New("rate limited")
	uc := NewAgrupamentoUsecase(repo, store, fakeMerger{}, newFakeLocker(), zap.NewNop())

	resultado, err := uc.MesclarDocumentos(context.Background(), 1)
	require.NoError(t, err)

	var comErro int
	for _, remocao := range resultado.Limpeza {
		if strings.HasPrefix(remocao.Resultado, "erro:") {
			comErro++
			assert.Equal(t, publicIDRNTRC("77"), remocao.PublicID)
		}
	}
	assert.Equal(t, 1, comErro)

	// The failed file keeps its local row for a later sweep.
	restantes, _ := repo.ListByProcesso(context.Background(), 1)
	assert.Len(t, restantes, 2)
}

func TestMesclarDocumentosObrigatorioAusente(t *testing.T) {
	repo, store := montaAcervo(t, "56765", 1)
	require.NoError(t, repo.DeleteByPublicID(context.Background(), publicIDManifesto("56765")))
	uc := NewAgrupamentoUsecase(repo, store, fakeMerger{}, newFakeLocker(), zap.NewNop())

	_, err := uc.MesclarDocumentos(context.Background(), 1)
	require.ErrorIs(t, err, ErrArquivoObrigatorioAusente)
	assert.Contains(t, err.Error(), publicIDManifesto("56765"))

	// Fail-fast: nothing was uploaded or deleted.
	assert.Empty(t, store.uploads)
	assert.Empty(t, store.deleted)
}

func TestMesclarDocumentosSemContrato(t *testing.T) {
	store := newFakeBlobStore()
	url := store.add(publicIDRNTRC("9"), []byte("rntrc"))
	repo := newFakeArquivoRepo(entity.Arquivo{ProcessoID: 1, PublicID: publicIDRNTRC("9"), URL: url, Tipo: entity.TipoIndividual})
	uc := NewAgrupamentoUsecase(repo, store, fakeMerger{}, newFakeLocker(), zap.NewNop())

	_, err := uc.MesclarDocumentos(context.Background(), 1)
	assert.ErrorIs(t, err, ErrContratoNaoEncontrado)
}

func TestMesclarDocumentosSemArquivos(t *testing.T) {
	uc := NewAgrupamentoUsecase(newFakeArquivoRepo(), newFakeBlobStore(), fakeMerger{}, newFakeLocker(), zap.NewNop())

	_, err := uc.MesclarDocumentos(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNenhumArquivo)
}

func TestMesclarDocumentosLockOcupado(t *testing.T) {
	repo, store := montaAcervo(t, "56765", 1)
	locker := newFakeLocker()
	acquired, err := locker.AcquireLock(context.Background(), mergeLockPrefix+"56765", mergeLockTTL)
	require.NoError(t, err)
	require.True(t, acquired)

	uc := NewAgrupamentoUsecase(repo, store, fakeMerger{}, locker, zap.NewNop())
	_, err = uc.MesclarDocumentos(context.Background(), 1)
	assert.ErrorIs(t, err, ErrMesclagemEmAndamento)
}

func TestMesclarDocumentosLiberaLock(t *testing.T) {
	repo, store := montaAcervo(t, "56765", 1)
	locker := newFakeLocker()
	uc := NewAgrupamentoUsecase(repo, store, fakeMerger{}, locker, zap.NewNop())

	_, err := uc.MesclarDocumentos(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{mergeLockPrefix + "56765"}, locker.released)

	// A second merge over the same contract can run again.
	repo2, store2 := montaAcervo(t, "56765", 1)
	uc2 := NewAgrupamentoUsecase(repo2, store2, fakeMerger{}, locker, zap.NewNop())
	_, err = uc2.MesclarDocumentos(context.Background(), 1)
	assert.NoError(t, err)
}
