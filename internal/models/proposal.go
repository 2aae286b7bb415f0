package models

import "time"

type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
)

type Proposal struct {
	ID             string         `json:"id"`
	EventID        string         `json:"event_id"`
	BrandID        string         `json:"brand_id"`
	BrandName      string         `json:"brand_name"`
	ProposedAmount int64          `json:"proposed_amount"`
	Message        string         `json:"message"`
	Status         ProposalStatus `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
}
