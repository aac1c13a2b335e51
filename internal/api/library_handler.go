package api

import (
	"fmt"
	"net/http"

	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// LibraryHandler serves the technique catalogue.
type LibraryHandler struct {
	libraryService service.LibraryService
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(libraryService service.LibraryService) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService}
}

// --- DTOs ---

type GenerateCombosRequest struct {
	PackIDs []string `json:"packIds" binding:"required,min=2"`
}

type SaveCombosRequest struct {
	Variations []domain.Variation `json:"variations" binding:"required,min=1"`
}

type VideoUploadRequest struct {
	Level       domain.LevelKey `json:"level" binding:"required,oneof=l1 l2 l3"`
	ActionID    string          `json:"actionId"`
	ContentType string          `json:"contentType" binding:"required"`
}

// --- Handler Methods ---

// ListPacks godoc
// @Summary List technique packs
// @Tags Library
// @Produce json
// @Param origin query string false "official or private"
// @Param category query string false "exact category"
// @Param q query string false "title search"
// @Success 200 {array} domain.TechniquePack
// @Router /library [get]
func (h *LibraryHandler) ListPacks(c *gin.Context) {
	packs := h.libraryService.List(service.LibraryFilter{
		Origin:   domain.Origin(c.Query("origin")),
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})
	if packs == nil {
		packs = []domain.TechniquePack{}
	}
	c.JSON(http.StatusOK, packs)
}

// ListCategories returns the distinct pack categories.
func (h *LibraryHandler) ListCategories(c *gin.Context) {
	cats := h.libraryService.Categories()
	if cats == nil {
		cats = []string{}
	}
	c.JSON(http.StatusOK, cats)
}

// GetPack returns one pack with its video references resolved to playable URLs.
func (h *LibraryHandler) GetPack(c *gin.Context) {
	pack, err := h.libraryService.GetPack(c.Request.Context(), c.Param("packId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.libraryService.ResolvePack(c.Request.Context(), *pack))
}

// CreatePack godoc
// @Summary Create a private technique pack
// @Tags Library
// @Accept json
// @Produce json
// @Success 201 {object} domain.TechniquePack
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 409 {object} gin.H "Conflict (id already used)"
// @Router /library [post]
func (h *LibraryHandler) CreatePack(c *gin.Context) {
	var req domain.TechniquePack
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	pack, err := h.libraryService.CreatePrivatePack(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pack)
}

// UpdatePack replaces a private pack. Official packs answer 403.
func (h *LibraryHandler) UpdatePack(c *gin.Context) {
	var req domain.TechniquePack
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	req.ID = c.Param("packId")
	pack, err := h.libraryService.UpdatePrivatePack(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pack)
}

// DeletePack removes a private pack.
func (h *LibraryHandler) DeletePack(c *gin.Context) {
	if err := h.libraryService.DeletePrivatePack(c.Request.Context(), c.Param("packId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GenerateCombos godoc
// @Summary Generate combo variations from base packs
// @Tags Library
// @Accept json
// @Produce json
// @Param request body GenerateCombosRequest true "At least two base pack ids"
// @Success 200 {array} domain.Variation
// @Failure 502 {object} gin.H "Generator failed"
// @Router /library/combos/generate [post]
func (h *LibraryHandler) GenerateCombos(c *gin.Context) {
	var req GenerateCombosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	variations, err := h.libraryService.GenerateCombos(c.Request.Context(), req.PackIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, variations)
}

// SaveCombos stores chosen variations as private packs.
func (h *LibraryHandler) SaveCombos(c *gin.Context) {
	var req SaveCombosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	packs, err := h.libraryService.SaveCombos(c.Request.Context(), req.Variations)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, packs)
}

// RequestVideoUpload returns a presigned PUT URL for a level or sub-action video.
func (h *LibraryHandler) RequestVideoUpload(c *gin.Context) {
	var req VideoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	up, err := h.libraryService.RequestVideoUpload(c.Request.Context(), c.Param("packId"), req.Level, req.ActionID, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, up)
}
