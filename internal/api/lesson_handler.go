package api

import (
	"fmt"
	"net/http"

	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/lesson"
	"combatbible/gymdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// LessonHandler drives the coach side of the lesson workflow. Every action
// answers with the resulting state; actions that do not apply to the current
// state leave it unchanged.
type LessonHandler struct {
	lessonService  service.LessonService
	libraryService service.LibraryService
}

// NewLessonHandler creates a new LessonHandler.
func NewLessonHandler(lessonService service.LessonService, libraryService service.LibraryService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService, libraryService: libraryService}
}

// --- DTOs ---

type SelectClassRequest struct {
	ClassID string `json:"classId" binding:"required"`
	Date    string `json:"date" binding:"required"`
}

type AddPackRequest struct {
	PackID string `json:"packId" binding:"required"`
}

// --- Handler Methods ---

func (h *LessonHandler) respond(c *gin.Context, s lesson.State) {
	c.JSON(http.StatusOK, MapStateToResponse(s, h.libraryService.Snapshot()))
}

// dispatch returns a handler that feeds a fixed event to the caller's controller.
func (h *LessonHandler) dispatch(ev lesson.Event) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		h.respond(c, h.lessonService.Dispatch(user, ev))
	}
}

// State returns the caller's current workflow state.
func (h *LessonHandler) State(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	h.respond(c, h.lessonService.State(user))
}

// Schedule godoc
// @Summary Coach schedule for a date
// @Tags Coach
// @Produce json
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {array} service.CoachClass
// @Router /coach/schedule [get]
func (h *LessonHandler) Schedule(c *gin.Context) {
	classes, err := h.lessonService.CoachSchedule(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

// History lists ended lessons, newest first.
func (h *LessonHandler) History(c *gin.Context) {
	c.JSON(http.StatusOK, MapLessonsToResponse(h.lessonService.CompletedLessons(), h.libraryService.Snapshot()))
}

// SavedPlan returns the plan saved for a class on a date.
func (h *LessonHandler) SavedPlan(c *gin.Context) {
	plan, ok := h.lessonService.SavedPlan(c.Param("classId"), c.Param("date"))
	if !ok {
		abortWithError(c, http.StatusNotFound, "No plan saved for this class and date")
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan, h.libraryService.Snapshot()))
}

// SelectClass godoc
// @Summary Open a class for planning
// @Description Loads the plan saved for the class and date, if any.
// @Tags Coach
// @Accept json
// @Produce json
// @Param request body SelectClassRequest true "Class and date"
// @Success 200 {object} StateResponse
// @Failure 404 {object} gin.H "Class not found"
// @Router /lesson/select [post]
func (h *LessonHandler) SelectClass(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req SelectClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	s, err := h.lessonService.SelectClass(c.Request.Context(), user, req.ClassID, req.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, s)
}

// AddPack adds a pack to the plan with the drafting defaults.
func (h *LessonHandler) AddPack(c *gin.Context) {
	var req AddPackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	h.dispatch(lesson.AddPack{PackID: req.PackID})(c)
}

// UpdateItem patches the planned item for a pack.
func (h *LessonHandler) UpdateItem(c *gin.Context) {
	var patch domain.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if patch.Level != nil && !patch.Level.Valid() {
		abortWithError(c, http.StatusBadRequest, "level must be l1, l2 or l3")
		return
	}
	h.dispatch(lesson.UpdateItem{PackID: c.Param("packId"), Patch: patch})(c)
}

// ToggleAction selects or deselects a sub-action of a planned item.
func (h *LessonHandler) ToggleAction(c *gin.Context) {
	h.dispatch(lesson.ToggleAction{PackID: c.Param("packId"), ActionID: c.Param("actionId")})(c)
}

// RemoveItem drops a planned item.
func (h *LessonHandler) RemoveItem(c *gin.Context) {
	h.dispatch(lesson.RemoveItem{PackID: c.Param("packId")})(c)
}
