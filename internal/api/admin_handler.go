package api

import (
	"net/http"

	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/lesson"
	"combatbible/gymdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the compliance views.
type AdminHandler struct {
	complianceService service.ComplianceService
	lessonService     service.LessonService
	ws                *lesson.Workspace
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(complianceService service.ComplianceService, lessonService service.LessonService, ws *lesson.Workspace) *AdminHandler {
	return &AdminHandler{complianceService: complianceService, lessonService: lessonService, ws: ws}
}

// Compliance godoc
// @Summary Compliance summary
// @Tags Admin
// @Produce json
// @Success 200 {object} service.ComplianceSummary
// @Router /admin/compliance [get]
func (h *AdminHandler) Compliance(c *gin.Context) {
	sum, err := h.complianceService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// Deviations returns the deviation feed, newest first.
func (h *AdminHandler) Deviations(c *gin.Context) {
	c.JSON(http.StatusOK, h.ws.Deviations.List())
}

// ClassFeedback returns the feedback students gave for a class on a date.
func (h *AdminHandler) ClassFeedback(c *gin.Context) {
	records := h.lessonService.ClassFeedback(c.Param("classId"), c.Query("date"))
	if records == nil {
		records = []domain.FeedbackRecord{}
	}
	c.JSON(http.StatusOK, records)
}
