package api

import (
	"fmt"
	"net/http"

	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// StudentHandler serves the student feedback flow.
type StudentHandler struct {
	lessonService  service.LessonService
	libraryService service.LibraryService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(lessonService service.LessonService, libraryService service.LibraryService) *StudentHandler {
	return &StudentHandler{lessonService: lessonService, libraryService: libraryService}
}

type OpenLessonRequest struct {
	Date string `json:"date" binding:"required"`
}

// Classes godoc
// @Summary Student class list for a date
// @Tags Student
// @Produce json
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {array} service.StudentClass
// @Router /student/classes [get]
func (h *StudentHandler) Classes(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	classes, err := h.lessonService.StudentClasses(c.Request.Context(), user, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

// OpenLesson shows the feedback form for a lesson, or the report if the
// student already answered.
func (h *StudentHandler) OpenLesson(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req OpenLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	s, err := h.lessonService.OpenForStudent(c.Request.Context(), user, c.Param("classId"), req.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapStateToResponse(s, h.libraryService.Snapshot()))
}

// SubmitFeedback godoc
// @Summary Submit lesson feedback
// @Description Every planned pack needs an answer; ratings are 1..5.
// @Tags Student
// @Accept json
// @Produce json
// @Param feedback body domain.FeedbackSubmission true "Answers and ratings"
// @Success 200 {object} StateResponse
// @Failure 400 {object} gin.H "Incomplete feedback"
// @Router /student/feedback [post]
func (h *StudentHandler) SubmitFeedback(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req domain.FeedbackSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	s, err := h.lessonService.SubmitFeedback(user, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapStateToResponse(s, h.libraryService.Snapshot()))
}
