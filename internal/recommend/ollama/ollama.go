package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vbonduro/menupick/internal/recommend"
)

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Images  []string        `json:"images,omitempty"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type OllamaRecommender struct {
	host     string
	settings recommend.Settings
	client   *http.Client
}

func NewOllamaRecommender(host string, settings recommend.Settings) *OllamaRecommender {
	return &OllamaRecommender{
		host:     host,
		settings: settings,
		client:   &http.Client{},
	}
}

func (a *OllamaRecommender) Recommend(ctx context.Context, req *recommend.Request) (string, error) {
	body := generateRequest{
		Model:  a.settings.Model,
		Prompt: req.Text,
		Stream: false,
		Options: generateOptions{
			Temperature: a.settings.Temperature,
			NumPredict:  a.settings.MaxTokens,
		},
	}
	// Ollama takes raw base64 without a data: prefix.
	if req.Image != nil {
		body.Images = []string{req.Image.Data}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call ollama: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close ollama response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, errBody)
	}

	var respBody struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return respBody.Response, nil
}
