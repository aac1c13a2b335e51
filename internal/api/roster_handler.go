package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// RosterHandler serves the class roster and schedules.
type RosterHandler struct {
	rosterService service.RosterService
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(rosterService service.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

// ListClasses godoc
// @Summary List classes
// @Description Without a day the whole roster; with day=0..6 the classes meeting that weekday, by start time.
// @Tags Roster
// @Produce json
// @Param day query int false "weekday, 0=Sunday"
// @Success 200 {array} domain.Klass
// @Router /classes [get]
func (h *RosterHandler) ListClasses(c *gin.Context) {
	var (
		klasses []domain.Klass
		err     error
	)
	if day := c.Query("day"); day != "" {
		n, convErr := strconv.Atoi(day)
		if convErr != nil || n < 0 || n > 6 {
			abortWithError(c, http.StatusBadRequest, "day must be between 0 (Sunday) and 6 (Saturday)")
			return
		}
		klasses, err = h.rosterService.ByWeekday(c.Request.Context(), time.Weekday(n))
	} else {
		klasses, err = h.rosterService.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if klasses == nil {
		klasses = []domain.Klass{}
	}
	c.JSON(http.StatusOK, klasses)
}

// Schedule returns the classes running on a calendar date.
func (h *RosterHandler) Schedule(c *gin.Context) {
	klasses, err := h.rosterService.OnDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, klasses)
}

// CreateClass godoc
// @Summary Add a class to the roster
// @Tags Admin
// @Accept json
// @Produce json
// @Success 201 {object} domain.Klass
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /admin/classes [post]
func (h *RosterHandler) CreateClass(c *gin.Context) {
	var req domain.Klass
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	klass, err := h.rosterService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, klass)
}

// DeleteClass removes a class from the roster.
func (h *RosterHandler) DeleteClass(c *gin.Context) {
	if err := h.rosterService.Delete(c.Request.Context(), c.Param("classId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
