package signing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/deViniciusPedroza/automacao-contratos/internal/config"
	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
)

const maxBodyLogLength = 500

// Client is the e-signature provider collaborator (Autentique GraphQL API).
type Client interface {
	// CreateDocument submits a locally staged PDF for signature and returns
	// the provider document with one signature record per signer plus the
	// CC/account-owner pseudo-entries.
	CreateDocument(ctx context.Context, nome string, signers []entity.SignatarioInput, ccEmail string, filePath string) (*entity.AutentiqueDocument, error)
	// CreateSignatureLink requests a shareable short link for one signature.
	CreateSignatureLink(ctx context.Context, publicID string) (string, error)
	// GetDocument retrieves a document with its artifact URLs.
	GetDocument(ctx context.Context, documentID string) (*entity.AutentiqueDocumentDetail, error)
	// ListDocumentsByFolder pages through the configured provider folder.
	ListDocumentsByFolder(ctx context.Context, limit, page int) ([]entity.AutentiqueDocumentSummary, error)
	// DownloadFile retrieves a provider-hosted artifact (the signed PDF).
	DownloadFile(ctx context.Context, fileURL string) ([]byte, error)
}

type autentiqueClient struct {
	client   *http.Client
	baseURL  string
	token    string
	folderID string
	logger   *zap.Logger
}

func NewAutentiqueClient(cfg *config.Config, logger *zap.Logger) Client {
	return &autentiqueClient{
		client: &http.Client{
			Timeout: cfg.Autentique.Timeout,
		},
		baseURL:  cfg.Autentique.BaseURL,
		token:    cfg.Autentique.Token,
		folderID: cfg.Autentique.FolderID,
		logger:   logger,
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// post sends a plain JSON GraphQL request and unmarshals the "data" object
// into result.
func (c *autentiqueClient) post(ctx context.Context, gql *graphqlRequest, result interface{}) error {
	body, err := json.Marshal(gql)
	if err != nil {
		return fmt.Errorf("failed to marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	return c.execute(req, result)
}

// postMultipart sends a GraphQL multipart upload: operations + map + file
// parts, per the GraphQL multipart request protocol Autentique implements.
func (c *autentiqueClient) postMultipart(ctx context.Context, gql *graphqlRequest, filename string, content []byte, result interface{}) error {
	operations, err := json.Marshal(gql)
	if err != nil {
		return fmt.Errorf("failed to marshal operations: %w", err)
	}
	fileMap, err := json.Marshal(map[string][]string{"0": {"variables.file"}})
	if err != nil {
		return fmt.Errorf("failed to marshal file map: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("operations", string(operations)); err != nil {
		return fmt.Errorf("failed to write operations field: %w", err)
	}
	if err := writer.WriteField("map", string(fileMap)); err != nil {
		return fmt.Errorf("failed to write map field: %w", err)
	}
	part, err := writer.CreateFormFile("0", filepath.Base(filename))
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return fmt.Errorf("failed to write file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)

	return c.execute(req, result)
}

func (c *autentiqueClient) execute(req *http.Request, result interface{}) error {
	startTime := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	bodyStr := string(respBody)
	if len(bodyStr) > maxBodyLogLength {
		bodyStr = bodyStr[:maxBodyLogLength] + fmt.Sprintf("... [truncated, total %d chars]", len(respBody))
	}
	c.logger.Info("Autentique response",
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", time.Since(startTime)),
		zap.String("body", bodyStr),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("autentique API error: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal graphql envelope: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("autentique returned errors: %s (raw response: %s)", envelope.Errors[0].Message, string(respBody))
	}
	if result != nil {
		if len(envelope.Data) == 0 {
			return fmt.Errorf("autentique returned no data (raw response: %s)", string(respBody))
		}
		if err := json.Unmarshal(envelope.Data, result); err != nil {
			return fmt.Errorf("failed to unmarshal graphql data: %w", err)
		}
	}
	return nil
}

func (c *autentiqueClient) CreateDocument(ctx context.Context, nome string, signers []entity.SignatarioInput, ccEmail string, filePath string) (*entity.AutentiqueDocument, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read staged file %s: %w", filePath, err)
	}

	mutation := fmt.Sprintf(`
	mutation CreateDocumentMutation($document: DocumentInput!, $signers: [SignerInput!]!, $file: Upload!) {
	  createDocument(
	    document: $document,
	    signers: $signers,
	    file: $file,
	    folder_id: %q
	  ) {
	    id
	    name
	    signatures {
	      public_id
	      name
	      email
	    }
	  }
	}`, c.folderID)

	signerVars := make([]map[string]interface{}, 0, len(signers))
	for _, s := range signers {
		positions := make([]map[string]interface{}, 0, len(s.Positions))
		for _, p := range s.Positions {
			positions = append(positions, map[string]interface{}{
				"x":       p.X,
				"y":       p.Y,
				"z":       p.Z,
				"element": p.Element,
			})
		}
		signerVars = append(signerVars, map[string]interface{}{
			"name":      s.Name,
			"email":     s.Email,
			"action":    "SIGN",
			"positions": positions,
		})
	}

	variables := map[string]interface{}{
		"document": map[string]interface{}{
			"name":             nome,
			"refusable":        true,
			"ignore_cpf":       false,
			"stop_on_rejected": true,
			"configs": map[string]interface{}{
				"signature_appearance": "HANDWRITING",
				"lock_user_data":       false,
			},
			"cc": []map[string]string{{"email": ccEmail}},
		},
		"signers": signerVars,
		"file":    nil,
	}

	var data struct {
		CreateDocument *entity.AutentiqueDocument `json:"createDocument"`
	}
	err = c.postMultipart(ctx, &graphqlRequest{Query: mutation, Variables: variables}, filePath, content, &data)
	if err != nil {
		return nil, fmt.Errorf("createDocument failed: %w", err)
	}
	if data.CreateDocument == nil {
		return nil, fmt.Errorf("createDocument returned no document")
	}
	return data.CreateDocument, nil
}

func (c *autentiqueClient) CreateSignatureLink(ctx context.Context, publicID string) (string, error) {
	mutation := fmt.Sprintf(`
	mutation {
	  createLinkToSignature(public_id: %q) {
	    short_link
	  }
	}`, publicID)

	var data struct {
		CreateLinkToSignature struct {
			ShortLink string `json:"short_link"`
		} `json:"createLinkToSignature"`
	}
	if err := c.post(ctx, &graphqlRequest{Query: mutation}, &data); err != nil {
		return "", fmt.Errorf("createLinkToSignature failed for %s: %w", publicID, err)
	}
	return data.CreateLinkToSignature.ShortLink, nil
}

func (c *autentiqueClient) GetDocument(ctx context.Context, documentID string) (*entity.AutentiqueDocumentDetail, error) {
	query := fmt.Sprintf(`
	query {
	  document(id: %q) {
	    id
	    name
	    files {
	      original
	      signed
	    }
	  }
	}`, documentID)

	var data struct {
		Document *entity.AutentiqueDocumentDetail `json:"document"`
	}
	if err := c.post(ctx, &graphqlRequest{Query: query}, &data); err != nil {
		return nil, fmt.Errorf("getDocument failed for %s: %w", documentID, err)
	}
	if data.Document == nil {
		return nil, fmt.Errorf("document %s not found at autentique", documentID)
	}
	return data.Document, nil
}

func (c *autentiqueClient) ListDocumentsByFolder(ctx context.Context, limit, page int) ([]entity.AutentiqueDocumentSummary, error) {
	query := fmt.Sprintf(`
	query {
	  documentsByFolder(folder_id: %q, limit: %d, page: %d) {
	    total
	    data {
	      id
	      name
	      created_at
	    }
	  }
	}`, c.folderID, limit, page)

	var data struct {
		DocumentsByFolder struct {
			Total int                                `json:"total"`
			Data  []entity.AutentiqueDocumentSummary `json:"data"`
		} `json:"documentsByFolder"`
	}
	if err := c.post(ctx, &graphqlRequest{Query: query}, &data); err != nil {
		return nil, fmt.Errorf("documentsByFolder failed (page %d): %w", page, err)
	}
	return data.DocumentsByFolder.Data, nil
}

func (c *autentiqueClient) DownloadFile(ctx context.Context, fileURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("download failed: status=%d, body=%s", resp.StatusCode, string(body))
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read download response: %w", err)
	}

	c.logger.Info("Signed file downloaded from Autentique",
		zap.Int("size_bytes", len(content)),
	)

	return content, nil
}
