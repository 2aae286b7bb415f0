package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/sponzo/internal/logging"
	"github.com/farellandr/sponzo/internal/models"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
	})
}

// StatusForError maps domain errors onto HTTP status codes.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidTicketCode):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials), errors.Is(err, models.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrSoldOut),
		errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// RespondWithServiceError writes err with its mapped status. Internal errors
// are logged and hidden from the client.
func RespondWithServiceError(c *gin.Context, err error) {
	status := StatusForError(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error().Err(err).Msg("request failed")
		RespondWithError(c, status, "Something went wrong. Please try again later.")
		return
	}
	RespondWithError(c, status, messageFor(err))
}

func messageFor(err error) string {
	var validation *models.ValidationError
	if errors.As(err, &validation) {
		return validation.Error() + "."
	}
	switch {
	case errors.Is(err, models.ErrSoldOut):
		return "No tickets available for this event."
	case errors.Is(err, models.ErrConflict):
		return "Email already registered."
	case errors.Is(err, models.ErrInvalidCredentials):
		return "Invalid credentials."
	case errors.Is(err, models.ErrForbidden):
		return "You don't have permission to perform this action."
	case errors.Is(err, models.ErrInvalidTransition):
		return "This action is not allowed in the current status."
	case errors.Is(err, models.ErrInvalidTicketCode):
		return "Invalid QR code."
	}
	return err.Error()
}
