package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/logger"
)

// Client is the text-generation collaborator. GenerateJSON returns the
// decoded structured output of the first model in the failover list that
// answers.
type Client interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (map[string]any, error)
}

type client struct {
	log    *logger.Logger
	genai  *genai.Client
	models []string
}

func NewClient(log *logger.Logger) (Client, error) {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}

	models := []string{"gemini-3-flash-preview", "gemini-2.5-flash"}
	if raw := strings.TrimSpace(os.Getenv("GEMINI_MODELS")); raw != "" {
		models = models[:0]
		for _, m := range strings.Split(raw, ",") {
			if m = strings.TrimSpace(m); m != "" {
				models = append(models, m)
			}
		}
	}

	ctx := context.Background()
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}

	return &client{
		log:    log.With("service", "gemini.Client"),
		genai:  gc,
		models: models,
	}, nil
}

func (c *client) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	var lastErr error
	for _, model := range c.models {
		resp, err := c.genai.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
		if err != nil {
			c.log.Warn("Model failed, trying next", "model", model, "error", err)
			lastErr = err
			continue
		}
		text := resp.Text()
		if strings.TrimSpace(text) == "" {
			c.log.Warn("Model returned empty output, trying next", "model", model)
			lastErr = fmt.Errorf("empty response from %s", model)
			continue
		}
		var out map[string]any
		if err := json.Unmarshal([]byte(text), &out); err != nil {
			c.log.Warn("Model returned non-JSON output, trying next", "model", model, "error", err)
			lastErr = fmt.Errorf("decode %s output: %w", model, err)
			continue
		}
		return out, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no models configured")
	}
	return nil, fmt.Errorf("%w: %v", apierr.ErrUnavailable, lastErr)
}
