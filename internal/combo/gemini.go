package combo

import (
	"context"
	"fmt"
	"log"
	"strings"

	"combatbible/gymdesk/internal/domain"
	"google.golang.org/genai"
)

const systemInstruction = `You are a world-class MMA and boxing coach.
Generate %d distinct, professional tactical variations based on the provided base actions.

Answer with JSON only:
{
  "variations": [
    {
      "title": "name of the combo",
      "category": "e.g. Striking, Grappling",
      "levels": {
        "l1": { "steps": ["..."], "points": ["..."] },
        "l2": { "steps": ["..."], "points": ["..."] },
        "l3": { "steps": ["..."], "points": ["..."] }
      }
    }
  ]
}

Give each variation distinct teaching logic for l1 (basic mechanics), l2 (advanced efficiency) and l3 (combat application).`

// GeminiGenerator asks a Gemini model for variations.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	count  int
}

// NewGeminiGenerator creates a generator using the Gemini API backend.
func NewGeminiGenerator(ctx context.Context, apiKey, model string, count int) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	log.Printf("INFO: Gemini combo generator initialized with model %s", model)
	return &GeminiGenerator{client: client, model: model, count: count}, nil
}

func (g *GeminiGenerator) GenerateVariations(ctx context.Context, baseTitles []string) ([]domain.Variation, error) {
	if len(baseTitles) < MinBaseTitles {
		return nil, ErrTooFewBases
	}

	prompt := fmt.Sprintf("Generate %d distinct combat tactical combo variations based on these base actions: %s. Ensure each combination is unique and practical.",
		g.count, strings.Join(baseTitles, ", "))
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(fmt.Sprintf(systemInstruction, g.count), genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}
	return ParseVariations([]byte(text))
}
