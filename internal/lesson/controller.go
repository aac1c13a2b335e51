package lesson

import (
	"time"

	"combatbible/gymdesk/internal/domain"
	"github.com/google/uuid"
)

// Controller drives the workflow for one signed-in user. It is not safe for
// concurrent use; callers serialize access per user.
type Controller struct {
	user    domain.User
	state   State
	catalog Catalog
	ws      *Workspace
	now     func() time.Time
	newID   IDFunc
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDFunc replaces DefaultDeviationID.
func WithIDFunc(f IDFunc) Option {
	return func(c *Controller) { c.newID = f }
}

// NewController returns a controller in StatusNone.
func NewController(user domain.User, catalog Catalog, ws *Workspace, opts ...Option) *Controller {
	if ws == nil {
		ws = NewWorkspace()
	}
	c := &Controller{
		user:    user,
		state:   None{},
		catalog: catalog,
		ws:      ws,
		now:     time.Now,
		newID:   DefaultDeviationID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// User returns the identity the controller acts for.
func (c *Controller) User() domain.User { return c.user }

// State returns the current workflow state.
func (c *Controller) State() State { return c.state }

// Dispatch runs ev through Transition, applies the resulting effects and
// settles transient states. It returns the new state.
func (c *Controller) Dispatch(ev Event) State {
	if add, ok := ev.(AddPack); ok && c.catalog != nil {
		if _, found := c.catalog.Pack(add.PackID); !found {
			return c.state
		}
	}
	next, effects := Transition(c.state, ev)
	for _, eff := range effects {
		c.apply(eff)
	}
	c.state = Settle(next)
	return c.state
}

// SelectClass opens klass on date, loading any plan saved for that pair.
func (c *Controller) SelectClass(klass domain.Klass, date string) State {
	draft, _ := c.ws.Plans.Load(PlanKey{KlassID: klass.ID, Date: date})
	return c.Dispatch(SelectClass{Klass: klass, Date: date, Draft: draft})
}

// OpenLessonForStudent shows the feedback form, or the report when the
// student already answered. The plan is the one the coach ended the lesson
// with, else the saved plan. Without either the state does not change.
func (c *Controller) OpenLessonForStudent(klass domain.Klass, date string) State {
	key := PlanKey{KlassID: klass.ID, Date: date}
	plan, coach := c.lessonPlan(key)
	if rec, ok := c.ws.Feedback.Find(c.user.ID, key); ok {
		return c.Dispatch(ShowReport{Klass: klass, Date: date, Plan: plan, Confirmed: rec.PackIDs, Missing: rec.MissingIDs})
	}
	return c.Dispatch(OpenFeedback{Klass: klass, Date: date, Plan: plan, Coach: coach})
}

// SavedPlan returns the plan saved for (klassID, date).
func (c *Controller) SavedPlan(klassID, date string) ([]domain.PlannedItem, bool) {
	return c.ws.Plans.Load(PlanKey{KlassID: klassID, Date: date})
}

func (c *Controller) lessonPlan(key PlanKey) ([]domain.PlannedItem, string) {
	if cl, ok := c.ws.Lessons.Latest(key); ok {
		return cl.Plan, cl.Coach
	}
	plan, _ := c.ws.Plans.Load(key)
	return plan, ""
}

func (c *Controller) apply(eff Effect) {
	switch e := eff.(type) {
	case PersistPlan:
		c.ws.Plans.Save(e.Key, e.Plan)
	case MarkCompleted:
		c.ws.Lessons.Record(CompletedLesson{
			KlassID:   e.Klass.ID,
			KlassName: e.Klass.Name,
			Date:      e.Date,
			CoachID:   c.user.ID,
			Coach:     c.user.Name,
			Plan:      e.Plan,
			EndedAt:   c.now(),
		})
	case RecordFeedback:
		at := c.now()
		records := BuildDeviationRecords(e.Missing, c.catalog, e.Coach, c.user.Name, at, c.newID)
		c.ws.Deviations.Prepend(records...)

		rec := domain.FeedbackRecord{
			ID:          uuid.NewString(),
			StudentID:   c.user.ID,
			StudentName: c.user.Name,
			Date:        e.Date,
			Intensity:   e.Feedback.Intensity,
			Experience:  e.Feedback.Experience,
			PackIDs:     e.Confirmed,
			MissingIDs:  e.Missing,
			Deviation:   len(e.Missing) > 0,
			SubmittedAt: at,
		}
		if e.Klass != nil {
			rec.KlassID = e.Klass.ID
			rec.KlassName = e.Klass.Name
		}
		c.ws.Feedback.Add(rec)
	}
}
