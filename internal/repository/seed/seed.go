// Package seed provides the catalogue and roster a fresh gym starts with, and
// loads replacements from a TOML file.
package seed

import (
	"fmt"
	"os"

	"combatbible/gymdesk/internal/domain"
	"github.com/BurntSushi/toml"
)

// DefaultGymID owns the built-in private pack.
const DefaultGymID = "gym_001"

const sampleVideo = "https://sample-videos.com/video123/mp4/720/big_buck_bunny_720p_1mb.mp4"

// Data is the on-disk layout of a seed file.
//
//	[[packs]]
//	id = "tp1"
//	title = "Boxing Basics"
//	...
//	[[classes]]
//	id = "k1"
//	days = [1, 3, 5]
type Data struct {
	Packs   []domain.TechniquePack `toml:"packs"`
	Klasses []domain.Klass         `toml:"classes"`
}

// Default returns the built-in catalogue and roster.
func Default() Data {
	return Data{Packs: Packs(), Klasses: Klasses()}
}

func emptyLevel() domain.TechLevel {
	return domain.TechLevel{
		Actions: []domain.SubAction{},
		Points:  []string{},
		Methods: []domain.TrainingMethod{},
		Steps:   []string{},
	}
}

// Packs returns the built-in technique packs.
func Packs() []domain.TechniquePack {
	return []domain.TechniquePack{
		{
			ID:       "tp1",
			Title:    "Boxing Basics",
			Category: "Striking",
			Origin:   domain.OriginOfficial,
			Editable: false,
			Levels: domain.Levels{
				L1: domain.TechLevel{
					VideoRef: sampleVideo,
					Actions: []domain.SubAction{
						{
							ID:       "a1",
							Name:     "Jab",
							VideoRef: sampleVideo,
							Steps:    []string{"Step the lead foot forward", "Punch straight and rotate the fist", "Snap back to the chin"},
						},
						{
							ID:    "a2",
							Name:  "Cross",
							Steps: []string{"Drive off the rear foot and turn the hip", "Fire from the core", "Keep the weight on the centre line"},
						},
					},
					Points:  []string{"Brace the core", "Return the hands fast"},
					Methods: []domain.TrainingMethod{{ID: "m1", Name: "Mirror shadowboxing", Description: "Correct the power line"}},
					Steps:   []string{},
				},
				L2: emptyLevel(),
				L3: emptyLevel(),
			},
		},
		{
			ID:         "tp_private_1",
			Title:      "Gym Clinch",
			Category:   "Muay Thai Clinch",
			Origin:     domain.OriginPrivate,
			OwnerGymID: DefaultGymID,
			Editable:   true,
			Levels: domain.Levels{
				L1: domain.TechLevel{
					Actions: []domain.SubAction{
						{ID: "pa1", Name: "Plum control", Steps: []string{"Clasp both hands behind the head", "Squeeze the elbows in to take the balance"}},
					},
					Points:  []string{"Hang your body weight", "Break the opponent's posture"},
					Methods: []domain.TrainingMethod{{ID: "pm1", Name: "Partner neck wrestling", Description: "House speciality"}},
					Steps:   []string{},
				},
				L2: emptyLevel(),
				L3: emptyLevel(),
			},
		},
	}
}

// Klasses returns the built-in roster.
func Klasses() []domain.Klass {
	return []domain.Klass{
		{ID: "k1", Name: "Muay Thai L2", StartTime: "18:30", EndTime: "19:45", StartDate: "2024-01-01", Days: []int{1, 3, 5}, StudentCount: 12, LevelTag: "Intermediate"},
		{ID: "k2", Name: "Kickboxing Core L1", StartTime: "19:45", EndTime: "21:00", StartDate: "2024-01-01", Days: []int{2, 4, 6}, StudentCount: 8, LevelTag: "Basic"},
		{ID: "k3", Name: "MMA Sparring", StartTime: "21:00", EndTime: "22:15", StartDate: "2024-01-01", Days: []int{1, 2, 3, 4, 5, 6, 0}, StudentCount: 6, LevelTag: "Advanced"},
	}
}

// LoadFile decodes a TOML seed file and validates every entry.
func LoadFile(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return Decode(string(raw))
}

// Decode parses TOML seed data and validates every entry.
func Decode(text string) (Data, error) {
	var data Data
	if _, err := toml.Decode(text, &data); err != nil {
		return Data{}, fmt.Errorf("decode seed: %w", err)
	}
	seen := map[string]bool{}
	for i := range data.Packs {
		p := &data.Packs[i]
		if err := p.Validate(); err != nil {
			return Data{}, fmt.Errorf("pack %d: %w", i, err)
		}
		if seen[p.ID] {
			return Data{}, fmt.Errorf("pack %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true
	}
	for i := range data.Klasses {
		if err := data.Klasses[i].Validate(); err != nil {
			return Data{}, fmt.Errorf("class %d: %w", i, err)
		}
	}
	return data, nil
}

// Load returns the built-in data when path is empty, otherwise the file's.
func Load(path string) (Data, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
