package storage

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/deViniciusPedroza/automacao-contratos/internal/config"
)

const maxBodyLogLength = 500 // Maximum characters to log for body

// UploadResult is the stored location of an uploaded PDF.
type UploadResult struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// RemoteFile is one entry of a folder listing.
type RemoteFile struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// BlobStore is the object-storage collaborator holding every process PDF.
type BlobStore interface {
	// Upload stores content under folder. When name is non-empty the full
	// public_id becomes folder/name and existing content is overwritten.
	Upload(ctx context.Context, content []byte, folder, name string) (*UploadResult, error)
	// Download retrieves the raw bytes behind a delivery URL.
	Download(ctx context.Context, fileURL string) ([]byte, error)
	// List returns every file whose public_id starts with folder/.
	List(ctx context.Context, folder string) ([]RemoteFile, error)
	// Delete removes a file; an already-absent file is not an error.
	Delete(ctx context.Context, publicID string) error
	// Exists reports whether a public_id is present remotely.
	Exists(ctx context.Context, publicID string) (bool, error)
}

type cloudinaryClient struct {
	client    *http.Client
	cloudName string
	apiKey    string
	apiSecret string
	logger    *zap.Logger
}

func NewCloudinaryClient(cfg *config.Config, logger *zap.Logger) BlobStore {
	return &cloudinaryClient{
		client: &http.Client{
			Timeout: cfg.Cloudinary.Timeout,
		},
		cloudName: cfg.Cloudinary.CloudName,
		apiKey:    cfg.Cloudinary.APIKey,
		apiSecret: cfg.Cloudinary.APISecret,
		logger:    logger,
	}
}

func (c *cloudinaryClient) uploadURL() string {
	return fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/raw/upload", c.cloudName)
}

func (c *cloudinaryClient) resourcesURL() string {
	return fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/resources/raw/upload", c.cloudName)
}

// signParams builds the SHA-1 request signature Cloudinary expects: the
// sorted key=value pairs joined with '&', with the API secret appended.
func (c *cloudinaryClient) signParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteString("&")
		}
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(params[k])
	}
	sb.WriteString(c.apiSecret)

	sum := sha1.Sum([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

func (c *cloudinaryClient) logResponse(op string, statusCode int, duration time.Duration, body []byte) {
	bodyStr := string(body)
	if len(bodyStr) > maxBodyLogLength {
		bodyStr = bodyStr[:maxBodyLogLength] + fmt.Sprintf("... [truncated, total %d chars]", len(body))
	}
	c.logger.Info("Cloudinary response",
		zap.String("operation", op),
		zap.Int("status_code", statusCode),
		zap.Duration("duration", duration),
		zap.String("body", bodyStr),
	)
}

func (c *cloudinaryClient) Upload(ctx context.Context, content []byte, folder, name string) (*UploadResult, error) {
	params := map[string]string{
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
		"overwrite": "true",
	}
	if name != "" {
		params["public_id"] = folder + "/" + name
	} else {
		params["folder"] = folder
	}
	signature := c.signParams(params)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}
	if err := writer.WriteField("api_key", c.apiKey); err != nil {
		return nil, fmt.Errorf("failed to write api_key field: %w", err)
	}
	if err := writer.WriteField("signature", signature); err != nil {
		return nil, fmt.Errorf("failed to write signature field: %w", err)
	}
	part, err := writer.CreateFormFile("file", "document.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("failed to write file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL(), &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c.logger.Info("Uploading file to Cloudinary",
		zap.String("folder", folder),
		zap.String("name", name),
		zap.Int("size_bytes", len(content)),
	)

	startTime := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute upload request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response: %w", err)
	}
	c.logResponse("upload", resp.StatusCode, time.Since(startTime), respBody)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cloudinary upload failed: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	var result struct {
		PublicID  string `json:"public_id"`
		SecureURL string `json:"secure_url"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal upload response: %w", err)
	}

	return &UploadResult{
		PublicID: result.PublicID,
		URL:      result.SecureURL,
	}, nil
}

func (c *cloudinaryClient) Download(ctx context.Context, fileURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	startTime := time.Now()
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

	c.logger.Info("File downloaded from Cloudinary",
		zap.String("url", fileURL),
		zap.Int("size_bytes", len(content)),
		zap.Duration("duration", time.Since(startTime)),
	)

	return content, nil
}

func (c *cloudinaryClient) List(ctx context.Context, folder string) ([]RemoteFile, error) {
	listURL := fmt.Sprintf("%s?prefix=%s&max_results=500", c.resourcesURL(), url.QueryEscape(folder+"/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create list request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	startTime := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder %s: %w", folder, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read list response: %w", err)
	}
	c.logResponse("list", resp.StatusCode, time.Since(startTime), respBody)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cloudinary list failed: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Resources []struct {
			PublicID  string `json:"public_id"`
			SecureURL string `json:"secure_url"`
		} `json:"resources"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal list response: %w", err)
	}

	files := make([]RemoteFile, 0, len(result.Resources))
	for _, r := range result.Resources {
		files = append(files, RemoteFile{PublicID: r.PublicID, URL: r.SecureURL})
	}
	return files, nil
}

func (c *cloudinaryClient) Delete(ctx context.Context, publicID string) error {
	deleteURL := fmt.Sprintf("%s?public_ids[]=%s", c.resourcesURL(), url.QueryEscape(publicID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	startTime := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", publicID, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read delete response: %w", err)
	}
	c.logResponse("delete", resp.StatusCode, time.Since(startTime), respBody)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cloudinary delete failed: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Deleted map[string]string `json:"deleted"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("failed to unmarshal delete response: %w", err)
	}

	// "deleted" and "not_found" both mean the file is gone remotely
	switch result.Deleted[publicID] {
	case "deleted", "not_found":
		return nil
	default:
		return fmt.Errorf("cloudinary did not confirm deletion of %s: %v", publicID, result.Deleted)
	}
}

func (c *cloudinaryClient) Exists(ctx context.Context, publicID string) (bool, error) {
	existsURL := fmt.Sprintf("%s?public_ids[]=%s", c.resourcesURL(), url.QueryEscape(publicID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, existsURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create exists request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to check existence of %s: %w", publicID, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read exists response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("cloudinary exists check failed: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Resources []json.RawMessage `json:"resources"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return false, fmt.Errorf("failed to unmarshal exists response: %w", err)
	}

	return len(result.Resources) > 0, nil
}
