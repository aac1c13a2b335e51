// Package lesson implements the lesson lifecycle: drafting a plan for a class,
// reviewing it, running it live, ending it, and turning student feedback into
// compliance deviations.
//
// The workflow is a sum type of states driven by a pure Transition function.
// A Controller owns the current state for one signed-in user and applies the
// side effects Transition asks for against the shared stores.
package lesson

import "combatbible/gymdesk/internal/domain"

// Status names a workflow state.
type Status string

const (
	StatusNone      Status = "none"
	StatusPlanning  Status = "planning"
	StatusReviewing Status = "reviewing"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

// State is one of None, Planning, Reviewing, Ongoing or Completed.
// Each variant carries only the data valid in that state.
type State interface {
	Status() Status
	isState()
}

// None means there is no active plan.
type None struct{}

// Planning is a coach assembling items for a class on a date.
type Planning struct {
	Klass domain.Klass
	Date  string
	Items []domain.PlannedItem
	// Draft is the plan saved earlier for (Klass, Date), nil if there was none.
	Draft []domain.PlannedItem
}

// Reviewing is a coach inspecting a generated plan before committing to it.
type Reviewing struct {
	Klass *domain.Klass
	Date  string
	Plan  []domain.PlannedItem
}

// Ongoing is a live session. For RoleStudent it is the feedback form for the
// lesson instead of the coach panel.
type Ongoing struct {
	Klass *domain.Klass
	Date  string
	Plan  []domain.PlannedItem
	Role  domain.Role
	Coach string
}

// Completed is transient on the coach path and collapses to None once its
// effects ran. On the student path it carries the report overlay.
type Completed struct {
	Klass  *domain.Klass
	Date   string
	Plan   []domain.PlannedItem
	Report *Report
}

// Report is what a student sees after feedback: what they confirmed and what
// was planned but not taught.
type Report struct {
	ConfirmedIDs []string `json:"confirmedIds"`
	DeviationIDs []string `json:"deviationIds"`
}

// Compliant reports whether everything planned was confirmed.
func (r *Report) Compliant() bool {
	return r != nil && len(r.DeviationIDs) == 0
}

func (None) Status() Status      { return StatusNone }
func (Planning) Status() Status  { return StatusPlanning }
func (Reviewing) Status() Status { return StatusReviewing }
func (Ongoing) Status() Status   { return StatusOngoing }
func (Completed) Status() Status { return StatusCompleted }

func (None) isState()      {}
func (Planning) isState()  {}
func (Reviewing) isState() {}
func (Ongoing) isState()   {}
func (Completed) isState() {}

// HasDraft reports whether a saved plan existed when the class was opened.
func (p Planning) HasDraft() bool {
	return len(p.Draft) > 0
}

// IsStudentForm reports whether the ongoing state is the student feedback form.
func (o Ongoing) IsStudentForm() bool {
	return o.Role == domain.RoleStudent
}

// IsReport reports whether the completed state is a student report overlay.
func (c Completed) IsReport() bool {
	return c.Report != nil
}

// ActivePlan returns the plan held by s, or nil for states without one.
func ActivePlan(s State) []domain.PlannedItem {
	switch st := s.(type) {
	case Planning:
		return st.Items
	case Reviewing:
		return st.Plan
	case Ongoing:
		return st.Plan
	case Completed:
		return st.Plan
	}
	return nil
}

// SelectedClass returns the class s is bound to, or nil.
func SelectedClass(s State) *domain.Klass {
	switch st := s.(type) {
	case Planning:
		k := st.Klass
		return &k
	case Reviewing:
		return st.Klass
	case Ongoing:
		return st.Klass
	case Completed:
		return st.Klass
	}
	return nil
}

// DateOf returns the lesson date s is bound to, or "".
func DateOf(s State) string {
	switch st := s.(type) {
	case Planning:
		return st.Date
	case Reviewing:
		return st.Date
	case Ongoing:
		return st.Date
	case Completed:
		return st.Date
	}
	return ""
}
