package domain

import (
	"sort"
	"time"
)

// DateLayout is the ISO calendar-date format used for plan keys and validity ranges.
const DateLayout = "2006-01-02"

// Klass is a recurring class on the gym roster.
type Klass struct {
	ID           string   `bson:"_id" json:"id" toml:"id" validate:"required"`
	Name         string   `bson:"name" json:"name" toml:"name" validate:"required"`
	StartTime    string   `bson:"startTime" json:"startTime" toml:"start_time" validate:"required,datetime=15:04"`
	EndTime      string   `bson:"endTime" json:"endTime" toml:"end_time" validate:"required,datetime=15:04"`
	StartDate    string   `bson:"startDate,omitempty" json:"startDate,omitempty" toml:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string   `bson:"endDate,omitempty" json:"endDate,omitempty" toml:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Days         []int    `bson:"days" json:"days" toml:"days" validate:"required,min=1,dive,min=0,max=6"` // 0=Sunday..6=Saturday
	StudentCount int      `bson:"studentCount" json:"studentCount" toml:"student_count" validate:"min=0"`
	LevelTag     string   `bson:"levelTag" json:"levelTag" toml:"level_tag"`
	CoachIDs     []string `bson:"coachIds,omitempty" json:"coachIds,omitempty" toml:"coach_ids"`
	AssistantIDs []string `bson:"assistantIds,omitempty" json:"assistantIds,omitempty" toml:"assistant_ids"`
}

// MeetsOn reports whether the class recurs on weekday.
func (k *Klass) MeetsOn(weekday time.Weekday) bool {
	for _, d := range k.Days {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// ValidOn reports whether date falls inside the optional validity range.
// Unparseable bounds are ignored.
func (k *Klass) ValidOn(date time.Time) bool {
	day := DateOf(date)
	if k.StartDate != "" && isDate(k.StartDate) && day < k.StartDate {
		return false
	}
	if k.EndDate != "" && isDate(k.EndDate) && day > k.EndDate {
		return false
	}
	return true
}

// FilterByWeekday returns the classes whose Days contain weekday, in roster order.
func FilterByWeekday(klasses []Klass, weekday time.Weekday) []Klass {
	out := make([]Klass, 0, len(klasses))
	for _, k := range klasses {
		if k.MeetsOn(weekday) {
			out = append(out, k)
		}
	}
	return out
}

// ScheduledOn returns the classes running on date, sorted by start time.
func ScheduledOn(klasses []Klass, date time.Time) []Klass {
	out := make([]Klass, 0, len(klasses))
	for _, k := range FilterByWeekday(klasses, date.Weekday()) {
		if k.ValidOn(date) {
			out = append(out, k)
		}
	}
	SortByStartTime(out)
	return out
}

// SortByStartTime orders classes by their HH:MM start time.
func SortByStartTime(klasses []Klass) {
	sort.SliceStable(klasses, func(i, j int) bool {
		return klasses[i].StartTime < klasses[j].StartTime
	})
}

// DateOf formats t as an ISO calendar date in t's own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func isDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}
