package api

import (
	"errors"
	"log"
	"net/http"

	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/repository"
	"combatbible/gymdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// statusFor maps service and repository errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidFeedback),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrNotEnoughBasePacks):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrPackNotEditable):
		return http.StatusForbidden
	case service.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, service.ErrGenerationFailed):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes err with its mapped status. Unexpected errors are logged
// and hidden from the client.
func respondError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
		abortWithError(c, code, "An unexpected error occurred")
		return
	}
	abortWithError(c, code, err.Error())
}
