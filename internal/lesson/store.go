package lesson

import (
	"sync"
	"time"

	"combatbible/gymdesk/internal/domain"
)

// PlanKey addresses a saved plan: one class on one calendar date.
type PlanKey struct {
	KlassID string
	Date    string // domain.DateLayout
}

// PlanStore holds at most one saved plan per (class, date). Saving again
// overwrites silently.
type PlanStore struct {
	mu    sync.RWMutex
	plans map[PlanKey][]domain.PlannedItem
}

func NewPlanStore() *PlanStore {
	return &PlanStore{plans: make(map[PlanKey][]domain.PlannedItem)}
}

// Save stores a copy of plan under key.
func (s *PlanStore) Save(key PlanKey, plan []domain.PlannedItem) {
	cp := domain.ClonePlan(plan)
	if cp == nil {
		cp = []domain.PlannedItem{}
	}
	s.mu.Lock()
	s.plans[key] = cp
	s.mu.Unlock()
}

// Load returns a copy of the plan saved under key.
func (s *PlanStore) Load(key PlanKey) ([]domain.PlannedItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plans[key]
	if !ok {
		return nil, false
	}
	return domain.ClonePlan(plan), true
}

// Len returns the number of saved plans.
func (s *PlanStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.plans)
}

// DeviationFeed is the append-only list of deviation records, newest first.
type DeviationFeed struct {
	mu      sync.RWMutex
	records []domain.DeviationRecord
}

func NewDeviationFeed() *DeviationFeed {
	return &DeviationFeed{}
}

// Prepend puts records in front of the existing ones, keeping their order.
func (f *DeviationFeed) Prepend(records ...domain.DeviationRecord) {
	if len(records) == 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	next := make([]domain.DeviationRecord, 0, len(records)+len(f.records))
	next = append(next, records...)
	f.records = append(next, f.records...)
}

// List returns a copy of the feed, newest first.
func (f *DeviationFeed) List() []domain.DeviationRecord {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]domain.DeviationRecord{}, f.records...)
}

// Len returns the number of records.
func (f *DeviationFeed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.records)
}

// CompletedLesson is a class that was taught and ended by a coach.
type CompletedLesson struct {
	KlassID   string               `json:"klassId"`
	KlassName string               `json:"klassName"`
	Date      string               `json:"date"`
	CoachID   string               `json:"coachId"`
	Coach     string               `json:"coach"`
	Plan      []domain.PlannedItem `json:"plan"`
	EndedAt   time.Time            `json:"endedAt"`
}

// LessonLog records ended lessons. A class ended twice on one date keeps both
// entries; lookups return the latest.
type LessonLog struct {
	mu      sync.RWMutex
	lessons []CompletedLesson
}

func NewLessonLog() *LessonLog {
	return &LessonLog{}
}

func (l *LessonLog) Record(cl CompletedLesson) {
	cl.Plan = domain.ClonePlan(cl.Plan)
	l.mu.Lock()
	l.lessons = append(l.lessons, cl)
	l.mu.Unlock()
}

// Latest returns the most recent lesson ended for key.
func (l *LessonLog) Latest(key PlanKey) (CompletedLesson, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := len(l.lessons) - 1; i >= 0; i-- {
		cl := l.lessons[i]
		if cl.KlassID == key.KlassID && cl.Date == key.Date {
			cl.Plan = domain.ClonePlan(cl.Plan)
			return cl, true
		}
	}
	return CompletedLesson{}, false
}

// CompletedKlassIDs returns the distinct class ids ended on date, in order.
func (l *LessonLog) CompletedKlassIDs(date string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	seen := map[string]struct{}{}
	ids := []string{}
	for _, cl := range l.lessons {
		if cl.Date != date {
			continue
		}
		if _, ok := seen[cl.KlassID]; ok {
			continue
		}
		seen[cl.KlassID] = struct{}{}
		ids = append(ids, cl.KlassID)
	}
	return ids
}

// All returns every ended lesson, oldest first.
func (l *LessonLog) All() []CompletedLesson {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]CompletedLesson, len(l.lessons))
	copy(out, l.lessons)
	return out
}

// FeedbackLog stores submitted feedback records.
type FeedbackLog struct {
	mu      sync.RWMutex
	records []domain.FeedbackRecord
}

func NewFeedbackLog() *FeedbackLog {
	return &FeedbackLog{}
}

func (l *FeedbackLog) Add(rec domain.FeedbackRecord) {
	l.mu.Lock()
	l.records = append(l.records, rec)
	l.mu.Unlock()
}

// Find returns the latest record a student submitted for key.
func (l *FeedbackLog) Find(studentID string, key PlanKey) (domain.FeedbackRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := len(l.records) - 1; i >= 0; i-- {
		r := l.records[i]
		if r.StudentID == studentID && r.KlassID == key.KlassID && r.Date == key.Date {
			return r, true
		}
	}
	return domain.FeedbackRecord{}, false
}

// All returns every record, oldest first.
func (l *FeedbackLog) All() []domain.FeedbackRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.FeedbackRecord{}, l.records...)
}

// Workspace bundles the stores shared by every controller of one gym.
type Workspace struct {
	Plans      *PlanStore
	Deviations *DeviationFeed
	Lessons    *LessonLog
	Feedback   *FeedbackLog
}

func NewWorkspace() *Workspace {
	return &Workspace{
		Plans:      NewPlanStore(),
		Deviations: NewDeviationFeed(),
		Lessons:    NewLessonLog(),
		Feedback:   NewFeedbackLog(),
	}
}
