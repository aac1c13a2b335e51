package lesson_test

import (
	"fmt"
	"testing"

	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/lesson"
)

func coachEvents() []lesson.Event {
	l2 := domain.LevelL2
	reps := "20"
	return []lesson.Event{
		lesson.SelectClass{Klass: monday, Date: "2024-03-04"},
		lesson.SelectClass{Klass: monday, Date: "2024-03-04", Draft: items("tp1")},
		lesson.BackToSchedule{},
		lesson.AddPack{PackID: "tp1"},
		lesson.AddPack{PackID: "tp2"},
		lesson.UpdateItem{PackID: "tp1", Patch: domain.ItemPatch{Level: &l2}},
		lesson.UpdateItem{PackID: "tp2", Patch: domain.ItemPatch{Reps: &reps}},
		lesson.ToggleAction{PackID: "tp1", ActionID: "a1"},
		lesson.RemoveItem{PackID: "tp1"},
		lesson.SubmitPlan{},
		lesson.SaveDraft{},
		lesson.Confirm{},
		lesson.ExecuteExisting{},
		lesson.ReturnToClass{},
		lesson.EndLesson{},
		lesson.DismissReport{},
		lesson.Reset{},
	}
}

func studentEvents() []lesson.Event {
	return []lesson.Event{
		lesson.OpenFeedback{Klass: monday, Date: "2024-03-04", Plan: items("tp1", "tp2"), Coach: "Coach Mike"},
		lesson.OpenFeedback{Klass: monday, Date: "2024-03-04"},
		lesson.ShowReport{Klass: monday, Date: "2024-03-04", Plan: items("tp1", "tp2"), Confirmed: []string{"tp1"}},
		lesson.SubmitFeedback{Feedback: domain.FeedbackSubmission{Taught: map[string]bool{"tp1": true}, Intensity: 3, Experience: 3}},
		lesson.SubmitFeedback{Feedback: domain.FeedbackSubmission{Taught: map[string]bool{"tp1": true, "tp2": true}, Intensity: 3, Experience: 3}},
	}
}

// stateKey identifies a state by value so the walk reaches a fixpoint.
func stateKey(s lesson.State) string {
	key := fmt.Sprintf("%T|%s|%t|%v", s, lesson.DateOf(s), lesson.SelectedClass(s) != nil, lesson.ActivePlan(s))
	switch st := s.(type) {
	case lesson.Planning:
		key += fmt.Sprintf("|draft=%v", st.Draft)
	case lesson.Ongoing:
		key += fmt.Sprintf("|role=%s|coach=%s", st.Role, st.Coach)
	case lesson.Completed:
		if st.Report != nil {
			key += fmt.Sprintf("|report=%v", *st.Report)
		}
	}
	return key
}

// walk explores every state reachable from start through events, settling
// after each step as the controller does, and calls check on every result.
func walk(t *testing.T, events []lesson.Event, check func(from lesson.State, ev lesson.Event, next lesson.State)) int {
	t.Helper()
	seen := map[string]bool{}
	queue := []lesson.State{lesson.None{}}
	seen[stateKey(lesson.None{})] = true
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, ev := range events {
			next, _ := lesson.Transition(s, ev)
			next = lesson.Settle(next)
			check(s, ev, next)
			if k := stateKey(next); !seen[k] {
				seen[k] = true
				queue = append(queue, next)
			}
		}
		if len(seen) > 10000 {
			t.Fatalf("state space did not converge")
		}
	}
	return len(seen)
}

func TestTransition_CoachWalkNeverRestsInCompleted(t *testing.T) {
	statuses := map[lesson.Status]bool{}
	n := walk(t, coachEvents(), func(from lesson.State, ev lesson.Event, next lesson.State) {
		statuses[next.Status()] = true
		if next.Status() == lesson.StatusCompleted {
			t.Errorf("%s --%T--> completed on the coach path", from.Status(), ev)
		}
	})
	for _, want := range []lesson.Status{lesson.StatusNone, lesson.StatusPlanning, lesson.StatusReviewing, lesson.StatusOngoing} {
		if !statuses[want] {
			t.Errorf("walk over %d states never reached %s", n, want)
		}
	}
}

func TestTransition_FullWalkStaysInKnownStates(t *testing.T) {
	known := map[lesson.Status]bool{
		lesson.StatusNone:      true,
		lesson.StatusPlanning:  true,
		lesson.StatusReviewing: true,
		lesson.StatusOngoing:   true,
		lesson.StatusCompleted: true,
	}
	events := append(coachEvents(), studentEvents()...)
	sawReport := false
	walk(t, events, func(from lesson.State, ev lesson.Event, next lesson.State) {
		if !known[next.Status()] {
			t.Errorf("%s --%T--> unknown status %q", from.Status(), ev, next.Status())
		}
		switch st := next.(type) {
		case lesson.None, lesson.Planning, lesson.Reviewing, lesson.Ongoing:
		case lesson.Completed:
			if !st.IsReport() {
				t.Errorf("%s --%T--> completed without a report", from.Status(), ev)
			}
			sawReport = true
		default:
			t.Errorf("%s --%T--> unexpected state type %T", from.Status(), ev, next)
		}
		if next.Status() == lesson.StatusNone && lesson.SelectedClass(next) != nil {
			t.Errorf("none still holds a class")
		}
	})
	if !sawReport {
		t.Error("walk never reached a student report")
	}
}
