package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Config holds client connection settings.
type Config struct {
	BaseURL         string
	RequestTimeout  time.Duration
	DownloadTimeout time.Duration
}

// Client talks to the generation server over HTTP. Submit/status/list
// calls use a short timeout; artifact downloads get a longer one.
type Client struct {
	baseURL  string
	http     *http.Client
	download *http.Client
}

// NewClient creates a client for the generation server at cfg.BaseURL.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://127.0.0.1:5000"
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	if cfg.DownloadTimeout == 0 {
		cfg.DownloadTimeout = 120 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: cfg.RequestTimeout},
		download: &http.Client{Timeout: cfg.DownloadTimeout},
	}
}

// BaseURL returns the server address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type submitRequest struct {
	Prompt  string `json:"prompt"`
	Quality string `json:"quality"`
}

type submitResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// StatusResponse mirrors one GET /status/{job_id} reply.
type StatusResponse struct {
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
	Message  string  `json:"message"`
	Files    Files   `json:"files"`
	Error    string  `json:"error,omitempty"`
}

// ModelInfo is one gallery entry from GET /list_models.
type ModelInfo struct {
	Name    string  `json:"name"`
	PLY     string  `json:"ply"`
	Created float64 `json:"created"` // unix seconds
}

type listResponse struct {
	Models []ModelInfo `json:"models"`
}

// Submit posts a generation request and returns the server-issued job
// id. The prompt is validated before any network call.
func (c *Client) Submit(ctx context.Context, prompt string, quality Quality) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", newError(KindValidation, "submit", "prompt must not be empty")
	}

	payload, err := json.Marshal(submitRequest{Prompt: prompt, Quality: string(quality)})
	if err != nil {
		return "", wrapError(KindParse, "submit", "encoding request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(payload))
	if err != nil {
		return "", wrapError(KindTransport, "submit", "building request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", wrapError(KindTransport, "submit", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", newError(KindServer, "submit", serverMessage(resp))
	}

	var sr submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", wrapError(KindParse, "submit", "decoding response", err)
	}
	if sr.JobID == "" {
		return "", newError(KindParse, "submit", "response missing job_id")
	}
	return sr.JobID, nil
}

// Status fetches the current server-side state of a job.
func (c *Client) Status(ctx context.Context, jobID string) (*StatusResponse, error) {
	endpoint := c.baseURL + "/status/" + url.PathEscape(jobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, wrapError(KindTransport, "status", "building request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, wrapError(KindTransport, "status", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newError(KindServer, "status", serverMessage(resp))
	}

	var sr StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, wrapError(KindParse, "status", "decoding response", err)
	}
	return &sr, nil
}

// ListModels fetches the gallery of previously generated models,
// newest first.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/list_models", nil)
	if err != nil {
		return nil, wrapError(KindTransport, "list", "building request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, wrapError(KindTransport, "list", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newError(KindServer, "list", serverMessage(resp))
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, wrapError(KindParse, "list", "decoding response", err)
	}
	return lr.Models, nil
}

// Fetch downloads a generated artifact into memory.
func (c *Client) Fetch(ctx context.Context, filename string) ([]byte, error) {
	endpoint := c.baseURL + "/download/" + url.PathEscape(filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, wrapError(KindTransport, "fetch", "building request", err)
	}

	resp, err := c.download.Do(req)
	if err != nil {
		return nil, wrapError(KindTransport, "fetch", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newError(KindServer, "fetch", "artifact "+filename+": "+resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapError(KindTransport, "fetch", "reading "+filename, err)
	}
	return data, nil
}

// Download saves a generated artifact under destDir and returns the
// local path.
func (c *Client) Download(ctx context.Context, filename, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", wrapError(KindTransport, "download", "creating "+destDir, err)
	}

	endpoint := c.baseURL + "/download/" + url.PathEscape(filename) + "/attachment"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", wrapError(KindTransport, "download", "building request", err)
	}

	resp, err := c.download.Do(req)
	if err != nil {
		return "", wrapError(KindTransport, "download", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", newError(KindServer, "download", "artifact "+filename+": "+resp.Status)
	}

	path := filepath.Join(destDir, filepath.Base(filename))
	out, err := os.Create(path)
	if err != nil {
		return "", wrapError(KindTransport, "download", "creating "+path, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(path)
		return "", wrapError(KindTransport, "download", "writing "+path, err)
	}
	return path, nil
}

// DownloadAll fetches every artifact of a completed job concurrently
// and returns the local paths in the same order as files.List().
func (c *Client) DownloadAll(ctx context.Context, files Files, destDir string) ([]string, error) {
	names := files.List()
	if len(names) == 0 {
		return nil, newError(KindValidation, "download", "no artifacts to download")
	}

	paths := make([]string, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			path, err := c.Download(ctx, name, destDir)
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// serverMessage extracts the server's error string from a non-200
// reply, falling back to the HTTP status line.
func serverMessage(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return resp.Status
}
