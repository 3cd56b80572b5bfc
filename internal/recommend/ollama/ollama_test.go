package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/menupick/internal/domain"
	"github.com/vbonduro/menupick/internal/recommend"
)

var testSettings = recommend.Settings{Model: "llava", MaxTokens: 500, Temperature: 0.3}

func TestOllamaRecommend(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"model":    got.Model,
			"response": "Garden Salad is the healthiest option.",
		}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	rec := NewOllamaRecommender(server.URL, testSettings)
	req := recommend.Build(&domain.Image{Data: []byte{0xFF, 0xD8, 0xFF, 0xE0}, MimeType: "image/jpeg"}, "Salad, Burger")

	text, err := rec.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Garden Salad is the healthiest option.", text)

	assert.Equal(t, "llava", got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, req.Text, got.Prompt)
	assert.Equal(t, []string{req.Image.Data}, got.Images)
	assert.Equal(t, 500, got.Options.NumPredict)
	assert.InDelta(t, 0.3, got.Options.Temperature, 1e-9)
}

func TestOllamaRecommendTextOnlySendsNoImages(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "ok"})
	}))
	defer server.Close()

	rec := NewOllamaRecommender(server.URL, testSettings)
	_, err := rec.Recommend(context.Background(), recommend.Build(nil, "Soup"))
	require.NoError(t, err)

	_, hasImages := raw["images"]
	assert.False(t, hasImages)
}

func TestOllamaRecommendNetworkError(t *testing.T) {
	rec := NewOllamaRecommender("http://localhost:99999", testSettings)

	_, err := rec.Recommend(context.Background(), recommend.Build(nil, "Soup"))
	assert.Error(t, err)
}

func TestOllamaRecommendStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	rec := NewOllamaRecommender(server.URL, testSettings)

	_, err := rec.Recommend(context.Background(), recommend.Build(nil, "Soup"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Equal(t, recommend.KindServiceError, recommend.Classify(err))
}
