package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/vbonduro/menupick/internal/recommend"
)

type OpenAIRecommender struct {
	client   openai.Client
	settings recommend.Settings
}

// NewOpenAIRecommender builds an adapter for the Chat Completions API.
// baseURL may be empty to use the public endpoint. SDK retries are disabled
// so each submission makes a single attempt.
func NewOpenAIRecommender(apiKey, baseURL string, settings recommend.Settings) *OpenAIRecommender {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIRecommender{
		client:   openai.NewClient(opts...),
		settings: settings,
	}
}

// buildParams constructs a single user message holding the instruction text
// and, when present, the image as a data URL.
func (a *OpenAIRecommender) buildParams(req *recommend.Request) openai.ChatCompletionNewParams {
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(req.Text),
	}
	if req.Image != nil {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: req.Image.DataURL(),
		}))
	}

	return openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.settings.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(parts),
		},
		MaxCompletionTokens: openai.Int(int64(a.settings.MaxTokens)),
		Temperature:         openai.Float(a.settings.Temperature),
	}
}

func (a *OpenAIRecommender) Recommend(ctx context.Context, req *recommend.Request) (string, error) {
	resp, err := a.client.Chat.Completions.New(ctx, a.buildParams(req))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("openai returned status %d (%s): %s", apiErr.StatusCode, apiErr.Code, apiErr.Message)
		}
		return "", fmt.Errorf("failed to call openai: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
