package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mkravets/cv-match/internal/ai"
	"github.com/mkravets/cv-match/internal/logger"
	"github.com/mkravets/cv-match/internal/utils"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel      = "gemini-2.5-flash"
	defaultMaxRetries = 2
	providerName      = "gemini"
)

// retryBackoff is the base delay between retry attempts. Variable so tests
// can shrink it.
var retryBackoff = 2 * time.Second

// contentFetcher is the slice of the genai SDK the generator needs.
// Narrowed to an interface so tests can substitute a fake.
type contentFetcher interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client behind the ai.Generator capability.
type Generator struct {
	models     contentFetcher
	modelName  string
	maxRetries int
	logger     *zap.Logger
	maxLogLen  int
}

// NewGenerator creates a Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int, log *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}

	return &Generator{
		models:     client.Models,
		modelName:  model,
		maxRetries: maxRetries,
		logger:     logger.WithCommonFields(log, providerName, model),
		maxLogLen:  200,
	}, nil
}

// GenerateContent sends the prompt to Gemini and returns the concatenated
// textual response. Transient API errors are retried with a linear backoff;
// the final failure is reported as an *ai.TransportError.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	g.logger.Debug("gemini generate content request",
		zap.String("prompt_preview", logger.TruncateForLog(prompt, g.maxLogLen)),
	)

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Debug("retrying gemini request",
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
			if err := utils.WaitFor(ctx, time.Duration(attempt)*retryBackoff); err != nil {
				return "", err
			}
		}

		resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
		if err != nil {
			lastErr = err
			if isRetryable(err) {
				continue
			}
			return "", &ai.TransportError{Provider: providerName, Err: err}
		}

		output := collectText(resp)
		if output == "" {
			return "", &ai.TransportError{Provider: providerName, Err: errors.New("empty response")}
		}

		g.logger.Debug("gemini generate content response",
			zap.String("response_preview", logger.TruncateForLog(output, g.maxLogLen)),
		)

		return output, nil
	}

	return "", &ai.TransportError{Provider: providerName, Err: lastErr}
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

func isRetryable(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}
