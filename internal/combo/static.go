package combo

import (
	"context"
	"fmt"
	"strings"

	"combatbible/gymdesk/internal/domain"
)

var staticAngles = []struct {
	name     string
	category string
	cue      string
}{
	{"Pressure Chain", "Striking", "walk the opponent to the ropes"},
	{"Counter Chain", "Counter Striking", "draw the lead and answer on the exit"},
	{"Clinch Entry", "Muay Thai Clinch", "close the distance behind the last strike"},
	{"Level Change", "MMA Transitions", "hide the shot behind the strikes"},
}

// StaticGenerator builds variations from fixed templates. It is used when no
// model is configured and in tests.
type StaticGenerator struct {
	Count int
}

func (g StaticGenerator) GenerateVariations(ctx context.Context, baseTitles []string) ([]domain.Variation, error) {
	if len(baseTitles) < MinBaseTitles {
		return nil, ErrTooFewBases
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	count := g.Count
	if count <= 0 {
		count = 3
	}

	chain := strings.Join(baseTitles, " into ")
	out := make([]domain.Variation, 0, count)
	for i := 0; i < count; i++ {
		a := staticAngles[i%len(staticAngles)]
		out = append(out, domain.Variation{
			Title:    fmt.Sprintf("%s: %s", a.name, chain),
			Category: a.category,
			Levels: map[domain.LevelKey]domain.VariationLv{
				domain.LevelL1: {
					Steps:  stepsFor(baseTitles),
					Points: []string{"Keep the guard between strikes", "Reset the stance after each link"},
				},
				domain.LevelL2: {
					Steps:  []string{fmt.Sprintf("Flow %s without pausing", chain), "Shorten the gap between links"},
					Points: []string{"Weight transfer drives the next strike"},
				},
				domain.LevelL3: {
					Steps:  []string{fmt.Sprintf("Use the chain to %s", a.cue), "Drill against a resisting partner"},
					Points: []string{"Read the reaction before committing"},
				},
			},
		})
	}
	return out, nil
}

func stepsFor(titles []string) []string {
	steps := make([]string, len(titles))
	for i, t := range titles {
		steps[i] = fmt.Sprintf("%d. %s", i+1, t)
	}
	return steps
}
