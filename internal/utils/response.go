// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/prodcat/catalogo-backend/internal/models"
)

// The API answers with plain entities on success and {"error": mensaje} on
// failure, optionally with a "detalles" list for field-level validation.

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

func BadRequestResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "No autorizado"
	}
	ErrorResponse(c, http.StatusUnauthorized, message)
}

func ForbiddenResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Acceso denegado"
	}
	ErrorResponse(c, http.StatusForbidden, message)
}

func NotFoundResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message)
}

func InternalErrorResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, "Error interno del servidor")
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":    "Datos de entrada inválidos",
		"detalles": errors,
	})
}

// HandleServiceError maps a service failure to its HTTP status. Anything
// unclassified becomes a 500 with a generic message; the detail stays in
// the server log only.
func HandleServiceError(c *gin.Context, err error) {
	switch models.KindOf(err) {
	case models.KindValidation:
		BadRequestResponse(c, err.Error())
	case models.KindConflict:
		BadRequestResponse(c, err.Error())
	case models.KindNotFound:
		NotFoundResponse(c, err.Error())
	case models.KindAuth:
		UnauthorizedResponse(c, err.Error())
	case models.KindForbidden:
		ForbiddenResponse(c, err.Error())
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("Unhandled service error")
		InternalErrorResponse(c)
	}
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if userIDStr, ok := userID.(string); ok {
			return userIDStr, true
		}
	}
	return "", false
}
