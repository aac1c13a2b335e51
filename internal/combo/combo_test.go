package combo_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"combatbible/gymdesk/internal/combo"
	"combatbible/gymdesk/internal/domain"
)

func TestParseVariations(t *testing.T) {
	raw := `{"variations":[
		{"title":"Jab Cross Hook","category":"Striking","levels":{"l1":{"steps":["jab","cross"],"points":["guard up"]}}},
		{"levels":{}}
	]}`
	got, err := combo.ParseVariations([]byte(raw))
	if err != nil {
		t.Fatalf("ParseVariations() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "Jab Cross Hook" || len(got[0].Levels[domain.LevelL1].Steps) != 2 {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Title != "AI Combo 2" || got[1].Category != domain.DefaultComboCategory {
		t.Errorf("fallbacks not applied: %+v", got[1])
	}
}

func TestParseVariations_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{name: "not json", raw: "sorry, I cannot"},
		{name: "missing key", raw: `{"combos":[]}`, want: combo.ErrEmptyResponse},
		{name: "empty list", raw: `{"variations":[]}`, want: combo.ErrEmptyResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := combo.ParseVariations([]byte(tt.raw))
			if err == nil {
				t.Fatal("error = nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestStaticGenerator(t *testing.T) {
	g := combo.StaticGenerator{Count: 3}
	got, err := g.GenerateVariations(context.Background(), []string{"Jab", "Low Kick"})
	if err != nil {
		t.Fatalf("GenerateVariations() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for _, v := range got {
		if !strings.Contains(v.Title, "Jab into Low Kick") {
			t.Errorf("title = %q", v.Title)
		}
		for _, k := range []domain.LevelKey{domain.LevelL1, domain.LevelL2, domain.LevelL3} {
			if len(v.Levels[k].Steps) == 0 {
				t.Errorf("%s has no steps at %s", v.Title, k)
			}
		}
	}

	if _, err := g.GenerateVariations(context.Background(), []string{"Jab"}); !errors.Is(err, combo.ErrTooFewBases) {
		t.Errorf("single base error = %v", err)
	}
}
