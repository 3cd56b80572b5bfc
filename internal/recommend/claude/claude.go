package claude

import (
	"context"
	"fmt"
	"net/http"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/vbonduro/menupick/internal/recommend"
)

type ClaudeRecommender struct {
	client   *anthropic.Client
	settings recommend.Settings
}

// NewClaudeRecommender builds an adapter for the Anthropic Messages API.
// baseURL may be empty to use the public endpoint.
func NewClaudeRecommender(apiKey, baseURL string, settings recommend.Settings) *ClaudeRecommender {
	opts := []anthropic.ClientOption{anthropic.WithHTTPClient(&http.Client{})}
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	return &ClaudeRecommender{
		client:   anthropic.NewClient(apiKey, opts...),
		settings: settings,
	}
}

// buildMessages constructs the single user turn: image block first, then the
// instruction text.
func buildMessages(req *recommend.Request) []anthropic.Message {
	content := make([]anthropic.MessageContent, 0, 2)
	if req.Image != nil {
		content = append(content, anthropic.NewImageMessageContent(
			anthropic.NewMessageContentSource(
				anthropic.MessagesContentSourceTypeBase64,
				req.Image.MediaType,
				req.Image.Data,
			),
		))
	}
	content = append(content, anthropic.NewTextMessageContent(req.Text))

	return []anthropic.Message{{
		Role:    anthropic.RoleUser,
		Content: content,
	}}
}

func (a *ClaudeRecommender) Recommend(ctx context.Context, req *recommend.Request) (string, error) {
	temperature := float32(a.settings.Temperature)

	resp, err := a.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(a.settings.Model),
		Messages:    buildMessages(req),
		MaxTokens:   a.settings.MaxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to call claude: %w", err)
	}

	return resp.GetFirstContentText(), nil
}
