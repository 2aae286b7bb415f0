package server

import (
	"github.com/farellandr/sponzo/config"
	"github.com/farellandr/sponzo/internal/forms"
	"github.com/farellandr/sponzo/internal/helpers"
	"github.com/farellandr/sponzo/internal/repository"
	"github.com/farellandr/sponzo/internal/services"
	"github.com/farellandr/sponzo/internal/store"
)

// App holds the services built on one store. The HTTP server and the CLI
// share it.
type App struct {
	Store store.Store

	Auth      *services.AuthService
	Sessions  *services.SessionManager
	Events    *services.EventService
	Proposals *services.ProposalService
	Tickets   *services.TicketService
	Forms     forms.Router
}

func NewApp(s store.Store, cfg *config.Config) *App {
	events := repository.NewEventRepository(s)
	auth := services.NewAuthService(repository.NewAccountRepository(s), services.AuthOptions{
		VerifyPasswords: cfg.VerifyPasswords,
	})

	return &App{
		Store:     s,
		Auth:      auth,
		Sessions:  services.NewSessionManager(auth, repository.NewSessionRepository(s)),
		Events:    services.NewEventService(events),
		Proposals: services.NewProposalService(repository.NewProposalRepository(s), events),
		Tickets: services.NewTicketService(
			repository.NewTicketRepository(s),
			events,
			helpers.NewTicketSigner(cfg.TicketSigningSecret),
		),
		Forms: forms.Router{
			forms.KindOrganizer: forms.NewClient(cfg.FormOrganizerURL, cfg.FormTimeout),
			forms.KindSponsor:   forms.NewClient(cfg.FormSponsorURL, cfg.FormTimeout),
		},
	}
}
