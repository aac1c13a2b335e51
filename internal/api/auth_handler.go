package api

import (
	"fmt"
	"net/http"

	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService   service.AuthService
	lessonService service.LessonService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, lessonService service.LessonService) *AuthHandler {
	return &AuthHandler{authService: authService, lessonService: lessonService}
}

// --- Request/Response Structs ---

type LoginRequest struct {
	Role domain.Role `json:"role" binding:"required,oneof=admin coach student"`
	Name string      `json:"name"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// --- Handler Methods ---

// Login godoc
// @Summary Sign in with a role
// @Description Issues a role token. Signing in drops the user's lesson in progress.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Role and optional display name"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Role, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	h.lessonService.Reset(*user)

	c.JSON(http.StatusOK, LoginResponse{Token: token, User: *user})
}

// Me returns the identity carried by the token.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}
