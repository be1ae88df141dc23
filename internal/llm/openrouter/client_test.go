package openrouter_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/llm/openrouter"
)

func newTestClient(baseURL string) *openrouter.Client {
	return openrouter.NewClient(openrouter.Options{
		BaseURL: baseURL,
		APIKey:  "sk-test",
		Model:   "test-model",
	})
}

func chatReply(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}, "finish_reason": "stop"},
		},
	})
	return string(b)
}

func TestComplete(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(chatReply("hello back")))
	}))
	defer srv.Close()

	reply, err := newTestClient(srv.URL).Complete(context.Background(), "sys", "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello back", reply)
	assert.Equal(t, "test-model", gotBody["model"])

	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
}

func TestComplete_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "bad key"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), "sys", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "bad key")
}

func TestComplete_TruncatedOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := json.Marshal(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "partial"}, "finish_reason": "length"},
			},
		})
		_, _ = w.Write(b)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), "sys", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestAnalyzeImage_EmbedsDataURI(t *testing.T) {
	imageBytes := []byte{0x89, 0x50, 0x4E, 0x47}

	var chatBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/image.png":
			_, _ = w.Write(imageBytes)
		case "/chat/completions":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&chatBody))
			_, _ = w.Write([]byte(chatReply(`{"type": "invoice", "data": {}}`)))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	reply, err := newTestClient(srv.URL).AnalyzeImage(context.Background(), "sys", "classify", srv.URL+"/image.png")
	require.NoError(t, err)
	assert.Contains(t, reply, "invoice")

	// The user message carries text plus the base64-embedded image.
	messages := chatBody["messages"].([]any)
	require.Len(t, messages, 2)
	blocks := messages[1].(map[string]any)["content"].([]any)
	require.Len(t, blocks, 2)

	imageBlock := blocks[1].(map[string]any)
	assert.Equal(t, "image_url", imageBlock["type"])
	url := imageBlock["image_url"].(map[string]any)["url"].(string)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}

func TestAnalyzeImage_DefaultsToJPEGMime(t *testing.T) {
	var chatBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/blob":
			_, _ = w.Write([]byte("binary"))
		case "/chat/completions":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&chatBody))
			_, _ = w.Write([]byte(chatReply("ok")))
		}
	}))
	defer srv.Close()

	// Presigned URLs often carry query params and no extension.
	_, err := newTestClient(srv.URL).AnalyzeImage(context.Background(), "sys", "classify", srv.URL+"/blob?X-Amz-Signature=abc")
	require.NoError(t, err)

	blocks := chatBody["messages"].([]any)[1].(map[string]any)["content"].([]any)
	url := blocks[1].(map[string]any)["image_url"].(map[string]any)["url"].(string)
	assert.True(t, strings.HasPrefix(url, "data:image/jpeg;base64,"))
}

func TestAnalyzeImage_DownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).AnalyzeImage(context.Background(), "sys", "classify", srv.URL+"/gone.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching image")
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data": [{"id": "model-a"}, {"id": "model-b"}]}`))
	}))
	defer srv.Close()

	models, err := newTestClient(srv.URL).ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"model-a", "model-b"}, models)
}
