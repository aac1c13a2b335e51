package api

import (
	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/lesson"
)

// PlannedItemResponse is a planned item plus the title to display for it.
type PlannedItemResponse struct {
	domain.PlannedItem
	Title string `json:"title"`
}

// ReportResponse is the student's post-feedback report.
type ReportResponse struct {
	ConfirmedIDs []string `json:"confirmedIds"`
	DeviationIDs []string `json:"deviationIds"`
	Compliant    bool     `json:"compliant"`
}

// StateResponse is the lesson workflow state as the client renders it.
type StateResponse struct {
	Status   lesson.Status         `json:"status"`
	Class    *domain.Klass         `json:"class,omitempty"`
	Date     string                `json:"date,omitempty"`
	Items    []PlannedItemResponse `json:"items"`
	HasDraft bool                  `json:"hasDraft,omitempty"`
	Role     domain.Role           `json:"role,omitempty"`
	Coach    string                `json:"coach,omitempty"`
	Report   *ReportResponse       `json:"report,omitempty"`
}

// MapStateToResponse converts a lesson state to its DTO, resolving item titles in lib.
func MapStateToResponse(s lesson.State, lib *domain.Library) StateResponse {
	resp := StateResponse{
		Status: s.Status(),
		Class:  lesson.SelectedClass(s),
		Date:   lesson.DateOf(s),
		Items:  MapPlanToResponse(lesson.ActivePlan(s), lib),
	}
	switch st := s.(type) {
	case lesson.Planning:
		resp.HasDraft = st.HasDraft()
	case lesson.Ongoing:
		resp.Role = st.Role
		resp.Coach = st.Coach
	case lesson.Completed:
		if st.IsReport() {
			resp.Report = &ReportResponse{
				ConfirmedIDs: st.Report.ConfirmedIDs,
				DeviationIDs: st.Report.DeviationIDs,
				Compliant:    st.Report.Compliant(),
			}
		}
	}
	return resp
}

// MapPlanToResponse converts a plan to DTOs. It never returns nil.
func MapPlanToResponse(plan []domain.PlannedItem, lib *domain.Library) []PlannedItemResponse {
	out := make([]PlannedItemResponse, len(plan))
	for i, it := range plan {
		out[i] = PlannedItemResponse{PlannedItem: it, Title: it.DisplayTitle(lib)}
	}
	return out
}

// LessonResponse is an ended lesson in a coach's history.
type LessonResponse struct {
	lesson.CompletedLesson
	Items []PlannedItemResponse `json:"items"`
}

// MapLessonsToResponse converts ended lessons to DTOs, newest first.
func MapLessonsToResponse(lessons []lesson.CompletedLesson, lib *domain.Library) []LessonResponse {
	out := make([]LessonResponse, 0, len(lessons))
	for i := len(lessons) - 1; i >= 0; i-- {
		out = append(out, LessonResponse{
			CompletedLesson: lessons[i],
			Items:           MapPlanToResponse(lessons[i].Plan, lib),
		})
	}
	return out
}
