package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedContent(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the embedding values", func(t *testing.T) {
		var gotPath, gotKey string
		var gotReq embedRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get("x-goog-api-key")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			resp := embedResponse{}
			resp.Embedding.Values = []float32{0.1, 0.2, 0.3}
			require.NoError(t, json.NewEncoder(w).Encode(resp))
		}))
		defer server.Close()

		client := NewClient("test-key").WithBaseURL(server.URL)
		values, err := client.EmbedContent(ctx, "gemini-embedding-001", "Artist: Coldplay, Song: Yellow", TaskRetrievalDocument, 3)
		require.NoError(t, err)

		assert.Equal(t, []float32{0.1, 0.2, 0.3}, values)
		assert.Equal(t, "/models/gemini-embedding-001:embedContent", gotPath)
		assert.Equal(t, "test-key", gotKey)
		assert.Equal(t, "models/gemini-embedding-001", gotReq.Model)
		assert.Equal(t, TaskRetrievalDocument, gotReq.TaskType)
		assert.Equal(t, 3, gotReq.OutputDimensionality)
	})

	t.Run("rejects a wrong-dimension response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			resp := embedResponse{}
			resp.Embedding.Values = []float32{0.1, 0.2}
			require.NoError(t, json.NewEncoder(w).Encode(resp))
		}))
		defer server.Close()

		client := NewClient("test-key").WithBaseURL(server.URL)
		_, err := client.EmbedContent(ctx, "gemini-embedding-001", "text", TaskRetrievalQuery, 3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2-dimensional")
	})

	t.Run("rejects an empty embedding", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			require.NoError(t, json.NewEncoder(w).Encode(embedResponse{}))
		}))
		defer server.Close()

		client := NewClient("test-key").WithBaseURL(server.URL)
		_, err := client.EmbedContent(ctx, "gemini-embedding-001", "text", TaskRetrievalQuery, 3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no embedding values")
	})

	t.Run("surfaces the API error payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			apiErr := APIError{}
			apiErr.Error.Code = 429
			apiErr.Error.Message = "Resource has been exhausted"
			apiErr.Error.Status = "RESOURCE_EXHAUSTED"
			require.NoError(t, json.NewEncoder(w).Encode(apiErr))
		}))
		defer server.Close()

		client := NewClient("test-key").WithBaseURL(server.URL)
		_, err := client.EmbedContent(ctx, "gemini-embedding-001", "text", TaskRetrievalDocument, 3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RESOURCE_EXHAUSTED")
		assert.Contains(t, err.Error(), "Resource has been exhausted")
	})

	t.Run("surfaces non-200 status without an error payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream unavailable"))
		}))
		defer server.Close()

		client := NewClient("test-key").WithBaseURL(server.URL)
		_, err := client.EmbedContent(ctx, "gemini-embedding-001", "text", TaskRetrievalDocument, 3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 502")
	})
}

func TestGenerateContent(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the first candidate text", func(t *testing.T) {
		var gotReq generateRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			resp := generateResponse{}
			resp.Candidates = append(resp.Candidates, struct {
				Content      Content `json:"content"`
				FinishReason string  `json:"finishReason"`
			}{
				Content:      Content{Role: "model", Parts: []Part{{Text: `{"primary_genre": "pop-rock", "mood": "melancholic"}`}}},
				FinishReason: "STOP",
			})
			require.NoError(t, json.NewEncoder(w).Encode(resp))
		}))
		defer server.Close()

		client := NewClient("test-key").WithBaseURL(server.URL)
		text, err := client.GenerateContent(ctx, "gemini-2.0-flash", "You label tracks.", "Artist: Coldplay, Song: Yellow")
		require.NoError(t, err)

		assert.JSONEq(t, `{"primary_genre": "pop-rock", "mood": "melancholic"}`, text)
		require.NotNil(t, gotReq.SystemInstruction)
		assert.Equal(t, "You label tracks.", gotReq.SystemInstruction.Parts[0].Text)
		assert.Equal(t, "application/json", gotReq.GenerationConfig.ResponseMIMEType)
		assert.Zero(t, gotReq.GenerationConfig.Temperature)
	})

	t.Run("fails when no candidates come back", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			require.NoError(t, json.NewEncoder(w).Encode(generateResponse{}))
		}))
		defer server.Close()

		client := NewClient("test-key").WithBaseURL(server.URL)
		_, err := client.GenerateContent(ctx, "gemini-2.0-flash", "", "hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no candidates")
	})

	t.Run("omits the system instruction when empty", func(t *testing.T) {
		var gotReq generateRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			resp := generateResponse{}
			resp.Candidates = append(resp.Candidates, struct {
				Content      Content `json:"content"`
				FinishReason string  `json:"finishReason"`
			}{Content: Content{Parts: []Part{{Text: "{}"}}}})
			require.NoError(t, json.NewEncoder(w).Encode(resp))
		}))
		defer server.Close()

		client := NewClient("test-key").WithBaseURL(server.URL)
		_, err := client.GenerateContent(ctx, "gemini-2.0-flash", "", "hello")
		require.NoError(t, err)
		assert.Nil(t, gotReq.SystemInstruction)
	})
}
