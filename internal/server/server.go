package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/farellandr/sponzo/config"
	"github.com/farellandr/sponzo/internal/handlers"
	"github.com/farellandr/sponzo/internal/middleware"
	"github.com/farellandr/sponzo/internal/models"
)

// Start serves the HTTP API until the process is interrupted.
func Start(cfg *config.Config, logger zerolog.Logger) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required to serve the API")
	}

	s, closeStore, err := config.InitStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	app := NewApp(s, cfg)
	gin.SetMode(gin.ReleaseMode)
	r := NewRouter(app, cfg, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("store", cfg.StoreDriver).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func NewRouter(app *App, cfg *config.Config, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.RequestLogger(logger))
	if cfg.EnableMetrics {
		r.Use(middleware.Metrics())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.UploadPath != "" {
		r.Static("/uploads", cfg.UploadPath)
	}

	h := &handlers.Handler{
		Auth:       app.Auth,
		Events:     app.Events,
		Proposals:  app.Proposals,
		Tickets:    app.Tickets,
		Forms:      app.Forms,
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		UploadPath: cfg.UploadPath,
	}
	setupRoutes(r, h, cfg.JWTSecret)
	return r
}

func setupRoutes(r *gin.Engine, h *handlers.Handler, jwtSecret string) {
	public := r.Group("/v1")
	{
		public.POST("/register", h.Register)
		public.POST("/login", h.Login)
		public.POST("/forms/:kind", h.SubmitForm)

		public.GET("/events", h.ListEvents)
		public.GET("/events/:id", h.GetEvent)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware(jwtSecret, h.Auth))
	{
		protected.GET("/me", h.Me)

		admin := protected.Group("/admin", middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/events", h.ListAdminEvents)
			admin.PATCH("/events/:id/status", h.SetEventStatus)
			admin.GET("/proposals", h.ListAdminProposals)
			admin.GET("/tickets", h.ListAdminTickets)
		}

		organizer := middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin)
		protected.POST("/events", organizer, h.CreateEvent)
		protected.PUT("/events/:id", organizer, h.UpdateEvent)
		protected.DELETE("/events/:id", organizer, h.DeleteEvent)
		protected.POST("/events/:id/image", organizer, h.UploadEventImage)
		protected.PATCH("/events/:id/complete", organizer, h.CompleteEvent)
		protected.GET("/events/:id/full", organizer, h.GetFullEvent)
		protected.GET("/events/:id/proposals", organizer, h.ListEventProposals)
		protected.GET("/events/:id/tickets", organizer, h.ListEventTickets)
		protected.GET("/organizer/events", organizer, h.ListOrganizerEvents)
		protected.PATCH("/proposals/:id", organizer, h.DecideProposal)
		protected.POST("/tickets/validate", organizer, h.ValidateTicket)

		brand := middleware.RequireRoles(models.RoleBrand)
		protected.GET("/brand/events", brand, h.ListBrandEvents)
		protected.POST("/events/:id/proposals", brand, h.SubmitProposal)
		protected.GET("/brand/proposals", brand, h.ListBrandProposals)

		student := middleware.RequireRoles(models.RoleStudent)
		protected.GET("/student/events", student, h.ListEvents)
		protected.POST("/events/:id/tickets", student, h.PurchaseTicket)
		protected.GET("/student/tickets", student, h.ListStudentTickets)
		protected.DELETE("/tickets/:id", student, h.CancelTicket)
		protected.GET("/tickets/:id/qr", student, h.GenerateTicketQR)
	}
}
