package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/sponzo/internal/forms"
	"github.com/farellandr/sponzo/internal/helpers"
	"github.com/farellandr/sponzo/internal/logging"
)

// SubmitForm relays a landing-page sign-up (organizer or sponsor) to its
// collector endpoint.
func (h *Handler) SubmitForm(c *gin.Context) {
	kind := forms.Kind(c.Param("kind"))
	if kind != forms.KindOrganizer && kind != forms.KindSponsor {
		helpers.RespondWithError(c, http.StatusNotFound, "Unknown form.")
		return
	}

	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil || len(fields) == 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	err := h.Forms.Submit(c.Request.Context(), kind, fields)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Registration received."})
	case errors.Is(err, forms.ErrNotConfigured):
		helpers.RespondWithError(c, http.StatusServiceUnavailable, "Registrations are currently closed.")
	default:
		logging.FromContext(c.Request.Context()).Warn().Err(err).Str("form", string(kind)).Msg("form submission failed")
		helpers.RespondWithError(c, http.StatusBadGateway, "Registration failed. Please try again or contact support.")
	}
}
