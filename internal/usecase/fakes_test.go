package usecase

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
	"github.com/deViniciusPedroza/automacao-contratos/internal/infrastructure/storage"
)

type fakeProcessoRepo struct {
	processos map[uint]*entity.Processo
	nextID    uint
}

func newFakeProcessoRepo() *fakeProcessoRepo {
	return &fakeProcessoRepo{processos: map[uint]*entity.Processo{}, nextID: 1}
}

func (r *fakeProcessoRepo) Create(_ context.Context, p *entity.Processo) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.processos[p.ID] = &cp
	return nil
}

func (r *fakeProcessoRepo) List(_ context.Context) ([]entity.Processo, error) {
	out := make([]entity.Processo, 0, len(r.processos))
	for _, p := range r.processos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProcessoRepo) FindByID(_ context.Context, id uint) (*entity.Processo, error) {
	p, ok := r.processos[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProcessoRepo) FindByNumeroContrato(_ context.Context, numero string) (*entity.Processo, error) {
	for _, p := range r.processos {
		if p.NumeroContrato == numero {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProcessoRepo) UpdateStatus(_ context.Context, id uint, status entity.StatusProcesso) error {
	p, ok := r.processos[id]
	if !ok {
		return fmt.Errorf("processo %d not found", id)
	}
	p.Status = status
	return nil
}

func (r *fakeProcessoRepo) Delete(_ context.Context, id uint) error {
	delete(r.processos, id)
	return nil
}

type fakeArquivoRepo struct {
	arquivos  []entity.Arquivo
	nextID    uint
	criados   []entity.Arquivo
	removidos []uint
}

func newFakeArquivoRepo(arquivos ...entity.Arquivo) *fakeArquivoRepo {
	r := &fakeArquivoRepo{nextID: 1}
	for _, a := range arquivos {
		if a.ID == 0 {
			a.ID = r.nextID
		}
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
		r.arquivos = append(r.arquivos, a)
	}
	return r
}

func (r *fakeArquivoRepo) Create(_ context.Context, a *entity.Arquivo) error {
	a.ID = r.nextID
	r.nextID++
	r.arquivos = append(r.arquivos, *a)
	r.criados = append(r.criados, *a)
	return nil
}

func (r *fakeArquivoRepo) ListByProcesso(_ context.Context, processoID uint) ([]entity.Arquivo, error) {
	var out []entity.Arquivo
	for _, a := range r.arquivos {
		if a.ProcessoID == processoID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeArquivoRepo) ListAll(_ context.Context) ([]entity.Arquivo, error) {
	return append([]entity.Arquivo(nil), r.arquivos...), nil
}

func (r *fakeArquivoRepo) DeleteByID(_ context.Context, id uint) error {
	for i, a := range r.arquivos {
		if a.ID == id {
			r.arquivos = append(r.arquivos[:i], r.arquivos[i+1:]...)
			r.removidos = append(r.removidos, id)
			return nil
		}
	}
	return nil
}

func (r *fakeArquivoRepo) DeleteByPublicID(_ context.Context, publicID string) error {
	for i, a := range r.arquivos {
		if a.PublicID == publicID {
			r.arquivos = append(r.arquivos[:i], r.arquivos[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeAssinaturaRepo struct {
	documentos []entity.DocumentoAssinatura
	nextID     uint
	// processos receives the stage advance applied inside the same
	// transaction as the document close.
	processos *fakeProcessoRepo
	// falhaRegistro makes the next RegistrarAssinatura fail atomically,
	// leaving every record untouched, like a rolled-back transaction.
	falhaRegistro error
	conclusoes    int
	removidos     []uint
}

func newFakeAssinaturaRepo(documentos ...entity.DocumentoAssinatura) *fakeAssinaturaRepo {
	r := &fakeAssinaturaRepo{nextID: 1}
	for _, d := range documentos {
		if d.ID == 0 {
			d.ID = r.nextID
		}
		if d.ID >= r.nextID {
			r.nextID = d.ID + 1
		}
		r.documentos = append(r.documentos, d)
	}
	return r
}

func (r *fakeAssinaturaRepo) CreateWithSignatarios(_ context.Context, d *entity.DocumentoAssinatura) error {
	d.ID = r.nextID
	r.nextID++
	for i := range d.Assinaturas {
		d.Assinaturas[i].ID = uint(i + 1)
		d.Assinaturas[i].DocumentoAssinaturaID = d.ID
	}
	r.documentos = append(r.documentos, *d)
	return nil
}

func (r *fakeAssinaturaRepo) FindByDocumentoAutentique(_ context.Context, documentoID string) (*entity.DocumentoAssinatura, error) {
	for i := range r.documentos {
		if r.documentos[i].DocumentoIDAutentique == documentoID {
			cp := r.documentos[i]
			cp.Assinaturas = append([]entity.AssinaturaSignatario(nil), r.documentos[i].Assinaturas...)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAssinaturaRepo) RegistrarAssinatura(_ context.Context, documentoID, signatarioID uint, assinadoEm time.Time, statusProcesso entity.StatusProcesso) (bool, error) {
	if r.falhaRegistro != nil {
		err := r.falhaRegistro
		r.falhaRegistro = nil
		return false, err
	}
	var doc *entity.DocumentoAssinatura
	for i := range r.documentos {
		if r.documentos[i].ID == documentoID {
			doc = &r.documentos[i]
			break
		}
	}
	if doc == nil {
		return false, fmt.Errorf("documento %d not found", documentoID)
	}
	for j := range doc.Assinaturas {
		s := &doc.Assinaturas[j]
		if s.ID == signatarioID && s.StatusAssinatura == entity.StatusSignatarioAguardando {
			s.StatusAssinatura = entity.StatusSignatarioAssinado
			s.DataAssinatura = &assinadoEm
		}
	}
	for _, s := range doc.Assinaturas {
		if s.StatusAssinatura != entity.StatusSignatarioAssinado {
			return false, nil
		}
	}
	if doc.Status == entity.StatusDocumentoAssinado {
		return false, nil
	}
	doc.Status = entity.StatusDocumentoAssinado
	r.conclusoes++
	if r.processos != nil {
		if p := r.processos.processos[doc.ProcessoID]; p != nil {
			p.Status = statusProcesso
		}
	}
	return true, nil
}

func (r *fakeAssinaturaRepo) ListAll(_ context.Context) ([]entity.DocumentoAssinatura, error) {
	return append([]entity.DocumentoAssinatura(nil), r.documentos...), nil
}

func (r *fakeAssinaturaRepo) DeleteByID(_ context.Context, id uint) error {
	for i := range r.documentos {
		if r.documentos[i].ID == id {
			r.documentos = append(r.documentos[:i], r.documentos[i+1:]...)
			r.removidos = append(r.removidos, id)
			return nil
		}
	}
	return nil
}

// fakeBlobStore keys downloads by URL and records uploads and deletions.
type fakeBlobStore struct {
	files     map[string][]byte
	remote    map[string]bool
	uploads   []storage.UploadResult
	deleted   []string
	deleteErr map[string]error
	existsErr map[string]error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{
		files:     map[string][]byte{},
		remote:    map[string]bool{},
		deleteErr: map[string]error{},
		existsErr: map[string]error{},
	}
}

func (s *fakeBlobStore) add(publicID string, content []byte) string {
	url := "https://res.example.com/" + publicID
	s.files[url] = content
	s.remote[publicID] = true
	return url
}

func (s *fakeBlobStore) Upload(_ context.Context, content []byte, folder, name string) (*storage.UploadResult, error) {
	publicID := folder
	if name != "" {
		publicID = folder + "/" + name
	}
	url := "https://res.example.com/" + publicID
	s.files[url] = content
	s.remote[publicID] = true
	result := storage.UploadResult{PublicID: publicID, URL: url}
	s.uploads = append(s.uploads, result)
	return &result, nil
}

func (s *fakeBlobStore) Download(_ context.Context, fileURL string) ([]byte, error) {
	content, ok := s.files[fileURL]
	if !ok {
		return nil, fmt.Errorf("not found: %s", fileURL)
	}
	return content, nil
}

func (s *fakeBlobStore) List(_ context.Context, folder string) ([]storage.RemoteFile, error) {
	var out []storage.RemoteFile
	for publicID := range s.remote {
		if strings.HasPrefix(publicID, folder+"/") {
			out = append(out, storage.RemoteFile{
				PublicID: publicID,
				URL:      "https://res.example.com/" + publicID,
			})
		}
	}
	return out, nil
}

func (s *fakeBlobStore) Delete(_ context.Context, publicID string) error {
	if err := s.deleteErr[publicID]; err != nil {
		return err
	}
	delete(s.remote, publicID)
	s.deleted = append(s.deleted, publicID)
	return nil
}

func (s *fakeBlobStore) Exists(_ context.Context, publicID string) (bool, error) {
	if err := s.existsErr[publicID]; err != nil {
		return false, err
	}
	return s.remote[publicID], nil
}

// fakeMerger concatenates the inputs with a separator so tests can assert
// the exact concatenation order.
type fakeMerger struct{}

func (fakeMerger) Merge(_ context.Context, documents [][]byte) ([]byte, error) {
	return bytes.Join(documents, []byte("|")), nil
}

type fakeLocker struct {
	mu       sync.Mutex
	held     map[string]bool
	released []string
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]bool{}}
}

func (l *fakeLocker) AcquireLock(_ context.Context, key string, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func (l *fakeLocker) ReleaseLock(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	l.released = append(l.released, key)
	return nil
}

// fakeSigningClient scripts provider responses.
type fakeSigningClient struct {
	document      *entity.AutentiqueDocument
	createErr     error
	links         map[string]string
	linkErr       map[string]error
	detail        *entity.AutentiqueDocumentDetail
	detailErr     error
	detailCalls   int
	folderPages   [][]entity.AutentiqueDocumentSummary
	downloads     map[string][]byte
	stagedContent []byte
}

func newFakeSigningClient() *fakeSigningClient {
	return &fakeSigningClient{
		links:     map[string]string{},
		linkErr:   map[string]error{},
		downloads: map[string][]byte{},
	}
}

func (c *fakeSigningClient) CreateDocument(_ context.Context, _ string, _ []entity.SignatarioInput, _ string, filePath string) (*entity.AutentiqueDocument, error) {
	if c.createErr != nil {
		return nil, c.createErr
	}
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	c.stagedContent = content
	return c.document, nil
}

func (c *fakeSigningClient) CreateSignatureLink(_ context.Context, publicID string) (string, error) {
	if err := c.linkErr[publicID]; err != nil {
		return "", err
	}
	link, ok := c.links[publicID]
	if !ok {
		return "", fmt.Errorf("unknown signature %s", publicID)
	}
	return link, nil
}

func (c *fakeSigningClient) GetDocument(_ context.Context, _ string) (*entity.AutentiqueDocumentDetail, error) {
	c.detailCalls++
	if c.detailErr != nil {
		return nil, c.detailErr
	}
	return c.detail, nil
}

func (c *fakeSigningClient) ListDocumentsByFolder(_ context.Context, _, page int) ([]entity.AutentiqueDocumentSummary, error) {
	if page > len(c.folderPages) {
		return nil, nil
	}
	return c.folderPages[page-1], nil
}

func (c *fakeSigningClient) DownloadFile(_ context.Context, fileURL string) ([]byte, error) {
	content, ok := c.downloads[fileURL]
	if !ok {
		return nil, fmt.Errorf("not found: %s", fileURL)
	}
	return content, nil
}
