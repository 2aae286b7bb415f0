package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/sponzo/internal/forms"
	"github.com/farellandr/sponzo/internal/helpers"
	"github.com/farellandr/sponzo/internal/middleware"
	"github.com/farellandr/sponzo/internal/models"
	"github.com/farellandr/sponzo/internal/services"
)

type Handler struct {
	Auth      *services.AuthService
	Events    *services.EventService
	Proposals *services.ProposalService
	Tickets   *services.TicketService
	Forms     forms.Router

	JWTSecret  string
	TokenTTL   time.Duration
	UploadPath string
}

// caller returns the authenticated account or writes a 401.
func caller(c *gin.Context) (*models.Account, bool) {
	account := middleware.CurrentAccount(c)
	if account == nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return nil, false
	}
	return account, true
}
