package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/sponzo/internal/helpers"
	"github.com/farellandr/sponzo/internal/services"
)

type ProposalRequest struct {
	ProposedAmount int64  `json:"proposed_amount" binding:"required"`
	Message        string `json:"message"`
}

type DecisionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accept reject"`
}

func (h *Handler) SubmitProposal(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}

	var req ProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Proposed amount is required.")
		return
	}

	proposal, err := h.Proposals.Submit(c.Request.Context(), account, services.SubmitProposalInput{
		EventID:        c.Param("id"),
		ProposedAmount: req.ProposedAmount,
		Message:        req.Message,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Proposal submitted successfully.",
		"proposal": proposal,
	})
}

func (h *Handler) ListBrandProposals(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	proposals, err := h.Proposals.ListByBrand(c.Request.Context(), account, account.ID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, proposals)
}

func (h *Handler) ListEventProposals(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	proposals, err := h.Proposals.ListByEvent(c.Request.Context(), account, c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, proposals)
}

func (h *Handler) ListAdminProposals(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	proposals, err := h.Proposals.ListAll(c.Request.Context(), account)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, proposals)
}

func (h *Handler) DecideProposal(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Decision must be accept or reject.")
		return
	}

	proposal, err := h.Proposals.Decide(c.Request.Context(), account, c.Param("id"), req.Decision == "accept")
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Proposal " + string(proposal.Status) + ".",
		"proposal": proposal,
	})
}
