// Package gemini is a minimal hand-rolled client for the Gemini REST API,
// covering the two capabilities the pipeline needs: text embedding and
// JSON-mode content generation.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arjunmehta/tastemap/internal/logger"
)

// DefaultBaseURL is the production Gemini API endpoint. Tests override it.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Task types for asymmetric embedding.
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// Client talks to the Gemini REST API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// APIError represents an error response from the Gemini API.
type APIError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Part is a single text part of a content block.
type Part struct {
	Text string `json:"text"`
}

// Content is a block of parts with an optional role.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// embedRequest is the body for :embedContent.
type embedRequest struct {
	Model                string  `json:"model"`
	Content              Content `json:"content"`
	TaskType             string  `json:"taskType,omitempty"`
	OutputDimensionality int     `json:"outputDimensionality,omitempty"`
}

// embedResponse is the success body for :embedContent.
type embedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

// generationConfig holds the generation parameters we set. Temperature is
// pinned to zero so repeated extractions stay as stable as the backend allows.
type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	Temperature      float64 `json:"temperature"`
}

// generateRequest is the body for :generateContent.
type generateRequest struct {
	SystemInstruction *Content         `json:"systemInstruction,omitempty"`
	Contents          []Content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

// generateResponse is the success body for :generateContent.
type generateResponse struct {
	Candidates []struct {
		Content      Content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// NewClient creates a Gemini API client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second, // embedding calls are fast; extraction can take a while
		},
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// EmbedContent embeds a single text with the given model, task type and
// output dimensionality. It returns a vector of exactly dim values.
func (c *Client) EmbedContent(ctx context.Context, model, text, taskType string, dim int) ([]float32, error) {
	url := fmt.Sprintf("%s/models/%s:embedContent", c.baseURL, model)

	reqBody := embedRequest{
		Model:                "models/" + model,
		Content:              Content{Parts: []Part{{Text: text}}},
		TaskType:             taskType,
		OutputDimensionality: dim,
	}

	body, err := c.post(ctx, url, reqBody)
	if err != nil {
		return nil, err
	}

	var embedResp embedResponse
	if err := json.Unmarshal(body, &embedResp); err != nil {
		logger.GeminiError("Failed to decode embedContent response: %v", err)
		return nil, fmt.Errorf("failed to decode embed response: %w", err)
	}

	values := embedResp.Embedding.Values
	if len(values) == 0 {
		return nil, fmt.Errorf("gemini API returned no embedding values")
	}
	if dim > 0 && len(values) != dim {
		return nil, fmt.Errorf("gemini API returned %d-dimensional embedding, want %d", len(values), dim)
	}

	logger.GeminiDebug("Embedded %d chars into %d dimensions (task: %s)", len(text), len(values), taskType)
	return values, nil
}

// GenerateContent sends a single-turn generation request in JSON mode and
// returns the raw text of the first candidate.
func (c *Client) GenerateContent(ctx context.Context, model, systemInstruction, userText string) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)

	reqBody := generateRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: userText}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0,
		},
	}
	if systemInstruction != "" {
		reqBody.SystemInstruction = &Content{Parts: []Part{{Text: systemInstruction}}}
	}

	body, err := c.post(ctx, url, reqBody)
	if err != nil {
		return "", err
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		logger.GeminiError("Failed to decode generateContent response: %v", err)
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini API returned no candidates")
	}

	if genResp.UsageMetadata.TotalTokenCount > 0 {
		logger.GeminiDebug("Generation usage - prompt: %d, candidates: %d, total: %d tokens",
			genResp.UsageMetadata.PromptTokenCount,
			genResp.UsageMetadata.CandidatesTokenCount,
			genResp.UsageMetadata.TotalTokenCount)
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

// post sends a JSON request and returns the response body after checking for
// API and HTTP errors.
func (c *Client) post(ctx context.Context, url string, reqBody interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.GeminiError("Failed to send request: %v", err)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Check for an error payload regardless of status code.
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		errMsg := fmt.Sprintf("gemini API error (%s): %s", apiErr.Error.Status, apiErr.Error.Message)
		logger.GeminiError("%s", errMsg)
		return nil, fmt.Errorf("%s", errMsg)
	}

	if resp.StatusCode != http.StatusOK {
		errMsg := fmt.Sprintf("gemini API HTTP error (status %d): %s", resp.StatusCode, string(body))
		logger.GeminiError("%s", errMsg)
		return nil, fmt.Errorf("%s", errMsg)
	}

	return body, nil
}
