// Package gemini is a minimal client for the generative-language REST API.
// It covers the three calls this service needs: listing model descriptors,
// probing a single model, and generating content against a bound model.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

type Client struct {
	cfg Config
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return &Client{cfg: cfg}
}

// Configured reports whether an API key is present. The service keeps running
// without one; chat degrades to a fixed error reply.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

type Model struct {
	Name                       string   `json:"name"`
	DisplayName                string   `json:"displayName"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

func (m Model) SupportsGeneration() bool {
	for _, method := range m.SupportedGenerationMethods {
		if method == "generateContent" {
			return true
		}
	}
	return false
}

type Part struct {
	Text string `json:"text,omitempty"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type GenerationConfig struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"topP,omitempty"`
	TopK        int     `json:"topK,omitempty"`
}

type Candidate struct {
	Content Content `json:"content"`
}

type Response struct {
	Candidates []Candidate `json:"candidates"`
}

// Text joins the text parts of the first candidate. The REST response has no
// top-level text shortcut; this is the candidate-parts extraction.
func (r *Response) Text() string {
	if r == nil || len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}

func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	var parsed struct {
		Models []Model `json:"models"`
	}
	if err := c.get(ctx, "/models?pageSize=1000", &parsed); err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return parsed.Models, nil
}

// GetModel probes a single model identifier. The identifier may or may not
// carry the "models/" namespace prefix; the API path always needs it.
func (c *Client) GetModel(ctx context.Context, name string) (*Model, error) {
	path := name
	if !strings.Contains(path, "/") {
		path = "models/" + path
	}
	var m Model
	if err := c.get(ctx, "/"+path, &m); err != nil {
		return nil, fmt.Errorf("get model %q: %w", name, err)
	}
	return &m, nil
}

func (c *Client) GenerateContent(ctx context.Context, model string, contents []Content, genCfg *GenerationConfig) (*Response, error) {
	path := model
	if !strings.Contains(path, "/") {
		path = "models/" + path
	}

	payload := map[string]any{"contents": contents}
	if genCfg != nil {
		payload["generationConfig"] = genCfg
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal generate payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/"+path+":generateContent", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	respBody, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var parsed Response
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode generate response: %w", err)
	}
	return &parsed, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	body, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseAPIError(resp.StatusCode, body)
	}
	return body, nil
}
