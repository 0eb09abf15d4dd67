package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebScout/internal/config"
	"github.com/GriffinCanCode/WebScout/internal/logging"
)

// Extractor turns reduced page chunks into the answer described by the
// caller. An empty answer is a valid outcome, not an error.
type Extractor interface {
	Extract(ctx context.Context, chunks []string, description string) (string, error)
}

const promptTemplate = `You are extracting specific information from the text content of a web page.
Return only information matching the description below. If nothing in the
content matches, return an empty response with no commentary.

Description: %s

Page content:
%s`

// Client calls an OpenAI-compatible chat completion endpoint, one request
// per chunk, and joins the non-empty answers in chunk order.
type Client struct {
	api    openai.Client
	model  string
	logger *logging.Logger
}

// NewClient creates an extraction client for the configured endpoint.
func NewClient(cfg config.ExtractConfig, logger *logging.Logger) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		api:    openai.NewClient(opts...),
		model:  cfg.Model,
		logger: logger,
	}
}

// Extract runs the description against every chunk in order. A chunk that
// yields nothing is skipped silently; a request failure aborts the whole
// extraction since partial answers are misleading.
func (c *Client) Extract(ctx context.Context, chunks []string, description string) (string, error) {
	var parts []string

	for i, chunk := range chunks {
		resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(c.model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(fmt.Sprintf(promptTemplate, description, chunk)),
			},
		})
		if err != nil {
			return "", fmt.Errorf("extracting chunk %d/%d: %w", i+1, len(chunks), err)
		}

		if len(resp.Choices) == 0 {
			continue
		}

		answer := strings.TrimSpace(resp.Choices[0].Message.Content)
		c.logger.Debug("Chunk extracted",
			zap.Int("chunk", i+1),
			zap.Int("total", len(chunks)),
			zap.Int("answer_chars", len(answer)),
		)
		if answer != "" {
			parts = append(parts, answer)
		}
	}

	return strings.Join(parts, "\n"), nil
}
