package service

import (
	"context"
	"fmt"
	"sync"

	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/lesson"
)

// Student class statuses.
const (
	StudentPending   = "pending"
	StudentCompleted = "completed"
)

// StudentClass is one row of a student's class list for a date.
type StudentClass struct {
	Klass  domain.Klass `json:"class"`
	Status string       `json:"status"`
}

// CoachClass is one row of a coach's schedule for a date.
type CoachClass struct {
	Klass     domain.Klass `json:"class"`
	HasDraft  bool         `json:"hasDraft"`
	Completed bool         `json:"completed"`
}

// LessonService hosts one lesson controller per signed-in user. Every
// controller shares the gym workspace, so a plan a coach confirms is the plan
// a student later rates.
type LessonService interface {
	State(user domain.User) lesson.State
	Reset(user domain.User) lesson.State
	Dispatch(user domain.User, ev lesson.Event) lesson.State

	CoachSchedule(ctx context.Context, date string) ([]CoachClass, error)
	SelectClass(ctx context.Context, user domain.User, klassID, date string) (lesson.State, error)
	SavedPlan(klassID, date string) ([]domain.PlannedItem, bool)
	CompletedLessons() []lesson.CompletedLesson

	StudentClasses(ctx context.Context, user domain.User, date string) ([]StudentClass, error)
	OpenForStudent(ctx context.Context, user domain.User, klassID, date string) (lesson.State, error)
	SubmitFeedback(user domain.User, fb domain.FeedbackSubmission) (lesson.State, error)
	ClassFeedback(klassID, date string) []domain.FeedbackRecord
}

type session struct {
	mu   sync.Mutex
	ctrl *lesson.Controller
}

// lessonService implements the LessonService interface.
type lessonService struct {
	roster  RosterService
	catalog lesson.Catalog
	ws      *lesson.Workspace
	opts    []lesson.Option

	mu       sync.Mutex
	sessions map[string]*session
}

// NewLessonService creates a lesson service. catalog is consulted on every
// lookup, so library edits are visible to running sessions.
func NewLessonService(roster RosterService, catalog lesson.Catalog, ws *lesson.Workspace, opts ...lesson.Option) LessonService {
	if ws == nil {
		ws = lesson.NewWorkspace()
	}
	return &lessonService{
		roster:   roster,
		catalog:  catalog,
		ws:       ws,
		opts:     opts,
		sessions: make(map[string]*session),
	}
}

func (s *lessonService) session(user domain.User) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[user.ID]
	if !ok {
		sess = &session{ctrl: lesson.NewController(user, s.catalog, s.ws, s.opts...)}
		s.sessions[user.ID] = sess
	}
	return sess
}

// with runs fn holding the user's session lock.
func (s *lessonService) with(user domain.User, fn func(c *lesson.Controller) lesson.State) lesson.State {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.ctrl)
}

func (s *lessonService) State(user domain.User) lesson.State {
	return s.with(user, func(c *lesson.Controller) lesson.State { return c.State() })
}

func (s *lessonService) Reset(user domain.User) lesson.State {
	return s.Dispatch(user, lesson.Reset{})
}

func (s *lessonService) Dispatch(user domain.User, ev lesson.Event) lesson.State {
	return s.with(user, func(c *lesson.Controller) lesson.State { return c.Dispatch(ev) })
}

func (s *lessonService) CoachSchedule(ctx context.Context, date string) ([]CoachClass, error) {
	klasses, err := s.roster.OnDate(ctx, date)
	if err != nil {
		return nil, err
	}
	done := map[string]bool{}
	for _, id := range s.ws.Lessons.CompletedKlassIDs(date) {
		done[id] = true
	}
	out := make([]CoachClass, 0, len(klasses))
	for _, k := range klasses {
		plan, ok := s.SavedPlan(k.ID, date)
		out = append(out, CoachClass{Klass: k, HasDraft: ok && len(plan) > 0, Completed: done[k.ID]})
	}
	return out, nil
}

// SelectClass opens a class for drafting, preloading the plan saved for the date.
func (s *lessonService) SelectClass(ctx context.Context, user domain.User, klassID, date string) (lesson.State, error) {
	klass, err := s.klassOn(ctx, klassID, date)
	if err != nil {
		return nil, err
	}
	return s.with(user, func(c *lesson.Controller) lesson.State { return c.SelectClass(*klass, date) }), nil
}

func (s *lessonService) SavedPlan(klassID, date string) ([]domain.PlannedItem, bool) {
	return s.ws.Plans.Load(lesson.PlanKey{KlassID: klassID, Date: date})
}

func (s *lessonService) CompletedLessons() []lesson.CompletedLesson {
	return s.ws.Lessons.All()
}

// StudentClasses lists the classes on date, completed once the student rated them.
func (s *lessonService) StudentClasses(ctx context.Context, user domain.User, date string) ([]StudentClass, error) {
	klasses, err := s.roster.OnDate(ctx, date)
	if err != nil {
		return nil, err
	}
	out := make([]StudentClass, 0, len(klasses))
	for _, k := range klasses {
		status := StudentPending
		if _, ok := s.ws.Feedback.Find(user.ID, lesson.PlanKey{KlassID: k.ID, Date: date}); ok {
			status = StudentCompleted
		}
		out = append(out, StudentClass{Klass: k, Status: status})
	}
	return out, nil
}

// OpenForStudent shows the feedback form for a lesson, or its report when the
// student already answered.
func (s *lessonService) OpenForStudent(ctx context.Context, user domain.User, klassID, date string) (lesson.State, error) {
	klass, err := s.klassOn(ctx, klassID, date)
	if err != nil {
		return nil, err
	}
	return s.with(user, func(c *lesson.Controller) lesson.State { return c.OpenLessonForStudent(*klass, date) }), nil
}

// SubmitFeedback validates fb against the open feedback form and records it.
// Without an open form the state is returned unchanged.
func (s *lessonService) SubmitFeedback(user domain.User, fb domain.FeedbackSubmission) (lesson.State, error) {
	var verr error
	st := s.with(user, func(c *lesson.Controller) lesson.State {
		form, ok := c.State().(lesson.Ongoing)
		if !ok || !form.IsStudentForm() {
			return c.State()
		}
		if err := fb.Validate(); err != nil {
			verr = err
			return c.State()
		}
		if err := fb.Complete(form.Plan); err != nil {
			verr = err
			return c.State()
		}
		return c.Dispatch(lesson.SubmitFeedback{Feedback: fb})
	})
	if verr != nil {
		return st, fmt.Errorf("%w: %v", ErrInvalidFeedback, verr)
	}
	return st, nil
}

// ClassFeedback returns the feedback students gave for one lesson.
func (s *lessonService) ClassFeedback(klassID, date string) []domain.FeedbackRecord {
	var out []domain.FeedbackRecord
	for _, r := range s.ws.Feedback.All() {
		if r.KlassID == klassID && r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

func (s *lessonService) klassOn(ctx context.Context, klassID, date string) (*domain.Klass, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, ErrInvalidDate
	}
	return s.roster.Get(ctx, klassID)
}
