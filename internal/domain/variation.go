package domain

import "fmt"

// Variation is a generated combo built from two or more base packs.
type Variation struct {
	Title    string                   `json:"title"`
	Category string                   `json:"category"`
	Levels   map[LevelKey]VariationLv `json:"levels"`
}

// VariationLv is the per-level teaching logic of a variation.
type VariationLv struct {
	Steps  []string `json:"steps"`
	Points []string `json:"points"`
}

// Fallbacks for generated variations missing a title or category.
const (
	DefaultComboCategory = "Tactical Combo"
	comboTitleFormat     = "AI Combo %d"
)

// Normalize fills the fallbacks; index is zero-based.
func (v Variation) Normalize(index int) Variation {
	if v.Title == "" {
		v.Title = fmt.Sprintf(comboTitleFormat, index+1)
	}
	if v.Category == "" {
		v.Category = DefaultComboCategory
	}
	return v
}

// ToPack converts the variation into an editable private pack owned by gymID.
func (v Variation) ToPack(id, gymID string) TechniquePack {
	level := func(k LevelKey) TechLevel {
		lv := v.Levels[k]
		return TechLevel{
			Actions: []SubAction{},
			Methods: []TrainingMethod{},
			Points:  append([]string{}, lv.Points...),
			Steps:   append([]string{}, lv.Steps...),
		}
	}
	return TechniquePack{
		ID:         id,
		Title:      v.Title,
		Category:   v.Category,
		Origin:     OriginPrivate,
		OwnerGymID: gymID,
		Editable:   true,
		Levels: Levels{
			L1: level(LevelL1),
			L2: level(LevelL2),
			L3: level(LevelL3),
		},
	}
}
