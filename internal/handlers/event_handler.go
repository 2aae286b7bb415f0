package handlers

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/sponzo/internal/helpers"
	"github.com/farellandr/sponzo/internal/models"
	"github.com/farellandr/sponzo/internal/services"
)

type CreateEventRequest struct {
	Title                     string               `json:"title" binding:"required"`
	Description               string               `json:"description"`
	CollegeName               string               `json:"college_name"`
	Category                  models.EventCategory `json:"category" binding:"required"`
	Date                      string               `json:"date" binding:"required"`
	Location                  string               `json:"location"`
	ExpectedAttendees         int                  `json:"expected_attendees" binding:"required"`
	ExpectedSponsorshipAmount int64                `json:"expected_sponsorship_amount"`
	TargetAudience            []string             `json:"target_audience"`
	Benefits                  []string             `json:"benefits"`
	ImageURL                  string               `json:"image_url"`
	TicketPrice               *int64               `json:"ticket_price"`
	AvailableTickets          *int                 `json:"available_tickets"`
}

type StatusRequest struct {
	Status models.EventStatus `json:"status" binding:"required"`
}

// ListEvents serves the public catalogue: approved events without the
// sponsorship target.
func (h *Handler) ListEvents(c *gin.Context) {
	filters, err := helpers.ParseEventFilters(c)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	events, err := h.Events.ListForStudents(c.Request.Context(), &filters)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) ListBrandEvents(c *gin.Context) {
	filters, err := helpers.ParseEventFilters(c)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	events, err := h.Events.ListForBrands(c.Request.Context(), &filters)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) GetEvent(c *gin.Context) {
	event, err := h.Events.GetView(c.Request.Context(), c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handler) GetFullEvent(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	event, err := h.Events.Get(c.Request.Context(), account, c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handler) ListOrganizerEvents(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	events, err := h.Events.ListByOrganizer(c.Request.Context(), account, account.ID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) ListAdminEvents(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	events, err := h.Events.ListAll(c.Request.Context(), account)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	if status := c.Query("status"); status != "" {
		filtered := events[:0]
		for _, e := range events {
			if string(e.Status) == status {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) CreateEvent(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	event, err := h.Events.Create(c.Request.Context(), account, services.CreateEventInput{
		Title:                     req.Title,
		Description:               req.Description,
		CollegeName:               req.CollegeName,
		Category:                  req.Category,
		Date:                      req.Date,
		Location:                  req.Location,
		ExpectedAttendees:         req.ExpectedAttendees,
		ExpectedSponsorshipAmount: req.ExpectedSponsorshipAmount,
		TargetAudience:            req.TargetAudience,
		Benefits:                  req.Benefits,
		ImageURL:                  req.ImageURL,
		TicketPrice:               req.TicketPrice,
		AvailableTickets:          req.AvailableTickets,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully.",
		"event":   event,
	})
}

func (h *Handler) UpdateEvent(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}

	var patch models.EventPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	event, err := h.Events.Update(c.Request.Context(), account, c.Param("id"), patch)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	id := c.Param("id")
	deleted, err := h.Events.Delete(c.Request.Context(), account, id)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	if !deleted {
		helpers.RespondWithServiceError(c, models.NewNotFoundError("event", id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully."})
}

func (h *Handler) SetEventStatus(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Status is required.")
		return
	}
	h.changeStatus(c, account, req.Status)
}

func (h *Handler) CompleteEvent(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	h.changeStatus(c, account, models.EventCompleted)
}

func (h *Handler) changeStatus(c *gin.Context, account *models.Account, status models.EventStatus) {
	event, err := h.Events.SetStatus(c.Request.Context(), account, c.Param("id"), status)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Event status updated successfully.",
		"event":   event,
	})
}

// UploadEventImage accepts a multipart "image" file.
func (h *Handler) UploadEventImage(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}

	// Ownership is checked before anything is written to disk.
	if _, err := h.Events.Get(c.Request.Context(), account, c.Param("id")); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Image file is required.")
		return
	}

	cfg := helpers.DefaultImageUploadConfig
	if h.UploadPath != "" {
		cfg.UploadBasePath = h.UploadPath
	}
	rel, err := helpers.UploadFile(c, fileHeader, "events", cfg)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	event, err := h.Events.AttachImage(c.Request.Context(), account, c.Param("id"), path.Join("/uploads", rel))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Image uploaded successfully.",
		"image_url": event.ImageURL,
	})
}
