package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// HTTPClient implements Client against the remote REST API.
type HTTPClient struct {
	baseURL string
	email   string
	apiKey  string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the given API base URL. Credentials are
// sent as HTTP basic auth (account email + API key).
func NewHTTPClient(baseURL, email, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		email:   email,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// envelope is the standard response wrapper the API uses.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.email, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("GET %s: decoding response: %w", path, err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("GET %s: decoding data: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.email, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("POST %s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}

// GetTemplate fetches a template structure by id.
func (c *HTTPClient) GetTemplate(ctx context.Context, templateID string) (*Template, error) {
	var t Template
	if err := c.get(ctx, "/templates/"+templateID, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetItem fetches a content item by id.
func (c *HTTPClient) GetItem(ctx context.Context, itemID string) (*Item, error) {
	var it Item
	if err := c.get(ctx, "/items/"+itemID, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// GetItemFiles lists the files uploaded against an item.
func (c *HTTPClient) GetItemFiles(ctx context.Context, itemID string) ([]File, error) {
	var files []File
	if err := c.get(ctx, "/items/"+itemID+"/files", &files); err != nil {
		return nil, err
	}
	return files, nil
}

// DownloadFiles downloads files sequentially into destDir and returns local paths.
func (c *HTTPClient) DownloadFiles(ctx context.Context, files []File, destDir, language string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", destDir, err)
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path, err := c.downloadFile(ctx, f, destDir)
		if err != nil {
			return paths, fmt.Errorf("downloading %s: %w", f.Filename, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (c *HTTPClient) downloadFile(ctx context.Context, f File, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.email, c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	dest := filepath.Join(destDir, f.Filename)
	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", err
	}
	return dest, nil
}

// UpdateItemContent pushes a flat element-id→value payload to the item.
func (c *HTTPClient) UpdateItemContent(ctx context.Context, itemID string, content map[string]any) error {
	return c.post(ctx, "/items/"+itemID+"/save", map[string]any{"config": content})
}

// ChooseStatus moves an item to the given workflow status.
func (c *HTTPClient) ChooseStatus(ctx context.Context, itemID, statusID string) error {
	return c.post(ctx, "/items/"+itemID+"/choose_status", map[string]any{"status_id": statusID})
}
