package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spacesedan/sentiscope/config"
)

const (
	openAIRequestTimeout = 60 * time.Second // Timeout for individual OpenAI API requests
)

const openAIPolarityPrompt = `You are a sentiment analysis engine for short social media posts.
Rate the overall sentiment of the post you are given as a single decimal number between -1 and 1:
  -1 is completely negative, 0 is neutral, 1 is completely positive.

### STRICT OUTPUT FORMAT
Return ONLY the number, for example: 0.35
No words, no explanation, no Markdown.
`

type OpenAIClient struct {
	Client *openai.Client
	Model  string
}

func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: openAIRequestTimeout}),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	slog.Info("[OpenAIClient] OpenAI client initialized",
		slog.String("model", cfg.Model),
		slog.Duration("timeout", openAIRequestTimeout))

	return &OpenAIClient{
		Client: openai.NewClient(opts...),
		Model:  cfg.Model,
	}
}

// CompletePolarity asks the model to rate text and returns its raw answer.
func (c *OpenAIClient) CompletePolarity(ctx context.Context, text string) (string, error) {
	chatCompletion, err := c.Client.Chat.Completions.New(ctx,
		openai.ChatCompletionNewParams{
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(openAIPolarityPrompt),
				openai.UserMessage(text),
			}),
			Model:       openai.F(openai.ChatModel(c.Model)),
			Temperature: openai.Float(0),
		})
	if err != nil {
		return "", fmt.Errorf("[OpenAIClient] chat completion failed: %w", err)
	}

	if len(chatCompletion.Choices) == 0 || strings.TrimSpace(chatCompletion.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("[OpenAIClient] empty completion")
	}

	return cleanOpenAIResponse(chatCompletion.Choices[0].Message.Content), nil
}

func cleanOpenAIResponse(response string) string {
	response = strings.TrimSpace(response)

	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	return strings.TrimSpace(response)
}
