// Package combo generates tactical combo variations from two or more base
// techniques. Generators only return variations; turning them into library
// packs is the library service's job.
package combo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"combatbible/gymdesk/internal/domain"
)

// MinBaseTitles is the smallest number of base techniques a combo is built from.
const MinBaseTitles = 2

var (
	ErrTooFewBases   = errors.New("at least two base techniques are required")
	ErrEmptyResponse = errors.New("generator returned no variations")
)

// Generator produces combo variations for the given base technique titles.
type Generator interface {
	GenerateVariations(ctx context.Context, baseTitles []string) ([]domain.Variation, error)
}

type envelope struct {
	Variations []domain.Variation `json:"variations"`
}

// ParseVariations decodes the {"variations":[...]} document a generator
// answers with and applies title and category fallbacks.
func ParseVariations(raw []byte) ([]domain.Variation, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode variations: %w", err)
	}
	if len(env.Variations) == 0 {
		return nil, ErrEmptyResponse
	}
	out := make([]domain.Variation, len(env.Variations))
	for i, v := range env.Variations {
		out[i] = v.Normalize(i)
	}
	return out, nil
}
