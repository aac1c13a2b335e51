package domain

// TrainingMode tags how a planned item is drilled.
type TrainingMode string

const (
	ModeShadow  TrainingMode = "shadow"
	ModeProps   TrainingMode = "props"
	ModeBag     TrainingMode = "bag"
	ModeMitts   TrainingMode = "mitts"
	ModePartner TrainingMode = "partner"
	ModeCustom  TrainingMode = "custom"
)

// Defaults applied when a coach adds a pack to the day's plan.
const (
	DefaultSets     = "3"
	DefaultReps     = "12"
	DefaultDuration = 10
)

// PlannedItem is one technique pack scheduled for a session.
// Sets and Reps are free text; coaches write things like "3x" or "to failure".
type PlannedItem struct {
	PackID             string       `json:"packId" validate:"required"`
	Level              LevelKey     `json:"level" validate:"oneof=l1 l2 l3"`
	CustomTitle        string       `json:"customTitle,omitempty"`
	SelectedMethodID   string       `json:"selectedMethodId,omitempty"`
	Sets               string       `json:"sets"`
	Reps               string       `json:"reps"`
	DurationMinutes    int          `json:"durationMinutes" validate:"min=0"`
	TrainingMode       TrainingMode `json:"trainingMode,omitempty" validate:"omitempty,oneof=shadow props bag mitts partner custom"`
	CustomTrainingMode string       `json:"customTrainingMode,omitempty"`
	SelectedActionIDs  []string     `json:"selectedActionIds"`
}

// NewPlannedItem returns an item for packID with the drafting defaults.
func NewPlannedItem(packID string) PlannedItem {
	return PlannedItem{
		PackID:            packID,
		Level:             LevelL1,
		Sets:              DefaultSets,
		Reps:              DefaultReps,
		DurationMinutes:   DefaultDuration,
		TrainingMode:      ModeShadow,
		SelectedActionIDs: []string{},
	}
}

// Clone returns a copy that shares no slices with it.
func (it PlannedItem) Clone() PlannedItem {
	it.SelectedActionIDs = append([]string{}, it.SelectedActionIDs...)
	return it
}

// DisplayTitle prefers the custom title, then the library title.
func (it PlannedItem) DisplayTitle(lib *Library) string {
	if it.CustomTitle != "" {
		return it.CustomTitle
	}
	return lib.Title(it.PackID)
}

// ItemPatch carries the fields of a PlannedItem a coach may change. Nil means unchanged.
type ItemPatch struct {
	Level              *LevelKey     `json:"level,omitempty"`
	CustomTitle        *string       `json:"customTitle,omitempty"`
	SelectedMethodID   *string       `json:"selectedMethodId,omitempty"`
	Sets               *string       `json:"sets,omitempty"`
	Reps               *string       `json:"reps,omitempty"`
	DurationMinutes    *int          `json:"durationMinutes,omitempty"`
	TrainingMode       *TrainingMode `json:"trainingMode,omitempty"`
	CustomTrainingMode *string       `json:"customTrainingMode,omitempty"`
}

// Apply returns it with the patch applied. Switching to a different level
// clears the selected sub-actions, which belong to the old level.
func (p ItemPatch) Apply(it PlannedItem) PlannedItem {
	out := it.Clone()
	if p.Level != nil && p.Level.Valid() && *p.Level != it.Level {
		out.Level = *p.Level
		out.SelectedActionIDs = []string{}
	}
	if p.CustomTitle != nil {
		out.CustomTitle = *p.CustomTitle
	}
	if p.SelectedMethodID != nil {
		out.SelectedMethodID = *p.SelectedMethodID
	}
	if p.Sets != nil {
		out.Sets = *p.Sets
	}
	if p.Reps != nil {
		out.Reps = *p.Reps
	}
	if p.DurationMinutes != nil && *p.DurationMinutes >= 0 {
		out.DurationMinutes = *p.DurationMinutes
	}
	if p.TrainingMode != nil {
		out.TrainingMode = *p.TrainingMode
	}
	if p.CustomTrainingMode != nil {
		out.CustomTrainingMode = *p.CustomTrainingMode
	}
	return out
}

// ClonePlan deep-copies a plan. A nil plan stays nil.
func ClonePlan(items []PlannedItem) []PlannedItem {
	if items == nil {
		return nil
	}
	out := make([]PlannedItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// PackIDs returns the pack ids of a plan in order.
func PackIDs(items []PlannedItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.PackID
	}
	return ids
}
