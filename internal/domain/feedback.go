package domain

import (
	"fmt"
	"time"
)

// Rating bounds for intensity and experience.
const (
	MinRating = 1
	MaxRating = 5
)

// FeedbackSubmission is one student's answer to "was this taught" for every
// planned pack, plus two 1..5 ratings.
type FeedbackSubmission struct {
	Taught     map[string]bool `json:"taught" validate:"required"`
	Intensity  int             `json:"intensity" validate:"min=1,max=5"`
	Experience int             `json:"experience" validate:"min=1,max=5"`
}

// Confirmed returns the planned pack ids the student marked as taught, in plan order.
func (f FeedbackSubmission) Confirmed(plan []PlannedItem) []string {
	out := make([]string, 0, len(plan))
	for _, it := range plan {
		if f.Taught[it.PackID] {
			out = append(out, it.PackID)
		}
	}
	return out
}

// Complete reports whether every planned pack has an answer.
func (f FeedbackSubmission) Complete(plan []PlannedItem) error {
	for _, it := range plan {
		if _, ok := f.Taught[it.PackID]; !ok {
			return fmt.Errorf("%w: no answer for %q", ErrValidation, it.PackID)
		}
	}
	return nil
}

// FeedbackRecord is the stored form of a submission, used for compliance averages.
type FeedbackRecord struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName"`
	KlassID     string    `json:"klassId"`
	KlassName   string    `json:"klassName"`
	Date        string    `json:"date"`
	Intensity   int       `json:"intensity"`
	Experience  int       `json:"experience"`
	PackIDs     []string  `json:"packIds"`    // confirmed as taught
	MissingIDs  []string  `json:"missingIds"` // reported as not taught
	Deviation   bool      `json:"deviation"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// DeviationRecord is a planned pack a student reported as not taught.
// Records are immutable once created.
type DeviationRecord struct {
	ID         string    `json:"id"`
	Coach      string    `json:"coach"`
	Student    string    `json:"student"`
	PackID     string    `json:"packId"`
	PackTitle  string    `json:"pack"`
	DetectedAt time.Time `json:"time"`
}
