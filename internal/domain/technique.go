// internal/domain/technique.go
package domain

// Origin tells whether a pack comes from the official catalogue or from a gym.
type Origin string

const (
	OriginOfficial Origin = "official"
	OriginPrivate  Origin = "private"
)

// LevelKey selects one of the three mastery levels of a pack.
type LevelKey string

const (
	LevelL1 LevelKey = "l1"
	LevelL2 LevelKey = "l2"
	LevelL3 LevelKey = "l3"
)

// LevelKeys lists the valid level keys in teaching order.
var LevelKeys = []LevelKey{LevelL1, LevelL2, LevelL3}

// Valid reports whether k is one of l1, l2, l3.
func (k LevelKey) Valid() bool {
	return k == LevelL1 || k == LevelL2 || k == LevelL3
}

// TrainingMethod is a named drill used to practise a level.
type TrainingMethod struct {
	ID          string `bson:"id" json:"id" toml:"id" validate:"required"`
	Name        string `bson:"name" json:"name" toml:"name" validate:"required"`
	Description string `bson:"description,omitempty" json:"description,omitempty" toml:"description"`
}

// SubAction is a steppable breakdown of a technique within a level.
type SubAction struct {
	ID       string   `bson:"id" json:"id" toml:"id" validate:"required"`
	Name     string   `bson:"name" json:"name" toml:"name" validate:"required"`
	VideoRef string   `bson:"videoRef,omitempty" json:"videoRef,omitempty" toml:"video_ref"` // absolute URL or storage object key
	Steps    []string `bson:"steps" json:"steps" toml:"steps"`
}

// TechLevel holds the content of one mastery level.
type TechLevel struct {
	Actions  []SubAction      `bson:"actions" json:"actions" toml:"actions" validate:"dive"`
	Points   []string         `bson:"points" json:"points" toml:"points"`
	Methods  []TrainingMethod `bson:"methods" json:"methods" toml:"methods" validate:"dive"`
	VideoRef string           `bson:"videoRef,omitempty" json:"videoRef,omitempty" toml:"video_ref"`
	Steps    []string         `bson:"steps,omitempty" json:"steps,omitempty" toml:"steps"`
}

// Levels holds exactly three levels, so a level key can never be out of range.
type Levels struct {
	L1 TechLevel `bson:"l1" json:"l1" toml:"l1"`
	L2 TechLevel `bson:"l2" json:"l2" toml:"l2"`
	L3 TechLevel `bson:"l3" json:"l3" toml:"l3"`
}

// TechniquePack is a catalogued technique unit with three difficulty levels.
type TechniquePack struct {
	ID         string `bson:"_id" json:"id" toml:"id" validate:"required"`
	Title      string `bson:"title" json:"title" toml:"title" validate:"required"`
	Category   string `bson:"category" json:"category" toml:"category"`
	Origin     Origin `bson:"origin" json:"origin" toml:"origin" validate:"oneof=official private"`
	OwnerGymID string `bson:"ownerGymId,omitempty" json:"ownerGymId,omitempty" toml:"owner_gym_id" validate:"required_if=Origin private,excluded_if=Origin official"`
	Editable   bool   `bson:"editable" json:"editable" toml:"editable"`
	Levels     Levels `bson:"levels" json:"levels" toml:"levels"`
}

// Level returns the level stored under key. The second result is false for an unknown key.
func (p *TechniquePack) Level(key LevelKey) (*TechLevel, bool) {
	switch key {
	case LevelL1:
		return &p.Levels.L1, true
	case LevelL2:
		return &p.Levels.L2, true
	case LevelL3:
		return &p.Levels.L3, true
	}
	return nil, false
}

// Action finds a sub-action by id within a level.
func (p *TechniquePack) Action(key LevelKey, actionID string) (*SubAction, bool) {
	lvl, ok := p.Level(key)
	if !ok {
		return nil, false
	}
	for i := range lvl.Actions {
		if lvl.Actions[i].ID == actionID {
			return &lvl.Actions[i], true
		}
	}
	return nil, false
}

// IsOfficial reports whether the pack belongs to the official catalogue.
func (p *TechniquePack) IsOfficial() bool {
	return p.Origin == OriginOfficial
}

// EditableBy reports whether gymID may modify the pack. Official packs are never editable.
func (p *TechniquePack) EditableBy(gymID string) bool {
	return p.Origin == OriginPrivate && p.Editable && p.OwnerGymID == gymID
}

// Clone returns a deep copy so that edits never alias a published snapshot.
func (p TechniquePack) Clone() TechniquePack {
	p.Levels.L1 = p.Levels.L1.clone()
	p.Levels.L2 = p.Levels.L2.clone()
	p.Levels.L3 = p.Levels.L3.clone()
	return p
}

func (l TechLevel) clone() TechLevel {
	if l.Actions != nil {
		actions := make([]SubAction, len(l.Actions))
		for i, a := range l.Actions {
			a.Steps = cloneStrings(a.Steps)
			actions[i] = a
		}
		l.Actions = actions
	}
	if l.Methods != nil {
		l.Methods = append([]TrainingMethod(nil), l.Methods...)
	}
	l.Points = cloneStrings(l.Points)
	l.Steps = cloneStrings(l.Steps)
	return l
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
