package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/sponzo/internal/helpers"
)

type ValidateTicketRequest struct {
	QRData string `json:"qr_data" binding:"required"`
}

func (h *Handler) PurchaseTicket(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	ticket, err := h.Tickets.Purchase(c.Request.Context(), account, c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Ticket purchased successfully.",
		"ticket":  ticket,
	})
}

func (h *Handler) ListStudentTickets(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	tickets, err := h.Tickets.ListByStudent(c.Request.Context(), account, account.ID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (h *Handler) ListEventTickets(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	tickets, err := h.Tickets.ListByEvent(c.Request.Context(), account, c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (h *Handler) ListAdminTickets(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	tickets, err := h.Tickets.ListAll(c.Request.Context(), account)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (h *Handler) CancelTicket(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	ticket, err := h.Tickets.Cancel(c.Request.Context(), account, c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket cancelled successfully.",
		"ticket":  ticket,
	})
}

func (h *Handler) GenerateTicketQR(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	qrImage, err := h.Tickets.QRCode(c.Request.Context(), account, c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", qrImage)
}

func (h *Handler) ValidateTicket(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}

	var req ValidateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ticket, err := h.Tickets.Validate(c.Request.Context(), account, req.QRData)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket validated successfully.",
		"ticket":  ticket,
	})
}
