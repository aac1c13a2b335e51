package lesson

import "combatbible/gymdesk/internal/domain"

// Event is an input to Transition.
type Event interface {
	isEvent()
}

// SelectClass opens a class on a date for drafting. Draft is the plan saved
// for that class and date, if any.
type SelectClass struct {
	Klass domain.Klass
	Date  string
	Draft []domain.PlannedItem
}

// BackToSchedule leaves drafting without touching any saved plan.
type BackToSchedule struct{}

// AddPack appends a pack with the drafting defaults. Packs already in the plan are ignored.
type AddPack struct {
	PackID string
}

// UpdateItem patches the item for PackID.
type UpdateItem struct {
	PackID string
	Patch  domain.ItemPatch
}

// ToggleAction selects or deselects a sub-action of the item for PackID.
type ToggleAction struct {
	PackID   string
	ActionID string
}

// RemoveItem drops the item for PackID.
type RemoveItem struct {
	PackID string
}

// SubmitPlan moves a non-empty draft to review.
type SubmitPlan struct{}

// SaveDraft persists the plan under review without leaving review.
type SaveDraft struct{}

// Confirm persists the plan under review and starts the live session.
type Confirm struct{}

// ExecuteExisting starts the live session straight from the saved draft.
type ExecuteExisting struct{}

// ReturnToClass abandons review or the live session.
type ReturnToClass struct{}

// EndLesson finalizes the live plan.
type EndLesson struct{}

// OpenFeedback shows a student the feedback form for a lesson.
type OpenFeedback struct {
	Klass domain.Klass
	Date  string
	Plan  []domain.PlannedItem
	Coach string
}

// ShowReport shows a student the report for a lesson they already rated.
// Missing holds the deviations recorded at submission; when nil they are
// recomputed from Plan.
type ShowReport struct {
	Klass     domain.Klass
	Date      string
	Plan      []domain.PlannedItem
	Confirmed []string
	Missing   []string
}

// SubmitFeedback records the student's answers.
type SubmitFeedback struct {
	Feedback domain.FeedbackSubmission
}

// DismissReport closes the report overlay.
type DismissReport struct{}

// Reset drops whatever is in progress, e.g. on sign-in.
type Reset struct{}

func (SelectClass) isEvent()     {}
func (BackToSchedule) isEvent()  {}
func (AddPack) isEvent()         {}
func (UpdateItem) isEvent()      {}
func (ToggleAction) isEvent()    {}
func (RemoveItem) isEvent()      {}
func (SubmitPlan) isEvent()      {}
func (SaveDraft) isEvent()       {}
func (Confirm) isEvent()         {}
func (ExecuteExisting) isEvent() {}
func (ReturnToClass) isEvent()   {}
func (EndLesson) isEvent()       {}
func (OpenFeedback) isEvent()    {}
func (ShowReport) isEvent()      {}
func (SubmitFeedback) isEvent()  {}
func (DismissReport) isEvent()   {}
func (Reset) isEvent()           {}

// Effect is a side effect requested by Transition and applied by the Controller.
type Effect interface {
	isEffect()
}

// PersistPlan overwrites the saved plan for Key.
type PersistPlan struct {
	Key  PlanKey
	Plan []domain.PlannedItem
}

// MarkCompleted records that a class was taught on a date with the final plan.
type MarkCompleted struct {
	Klass domain.Klass
	Date  string
	Plan  []domain.PlannedItem
}

// RecordFeedback stores a student's submission and emits deviations for Missing.
type RecordFeedback struct {
	Klass     *domain.Klass
	Date      string
	Plan      []domain.PlannedItem
	Coach     string
	Feedback  domain.FeedbackSubmission
	Confirmed []string
	Missing   []string
}

func (PersistPlan) isEffect()    {}
func (MarkCompleted) isEffect()  {}
func (RecordFeedback) isEffect() {}
