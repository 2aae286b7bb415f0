package models

import "time"

type EventCategory string

const (
	CategoryTechnical  EventCategory = "Technical"
	CategoryCultural   EventCategory = "Cultural"
	CategorySports     EventCategory = "Sports"
	CategoryWorkshop   EventCategory = "Workshop"
	CategoryHackathon  EventCategory = "Hackathon"
	CategoryConference EventCategory = "Conference"
	CategoryFest       EventCategory = "Fest"
	CategoryOther      EventCategory = "Other"
)

var EventCategories = []EventCategory{
	CategoryTechnical, CategoryCultural, CategorySports, CategoryWorkshop,
	CategoryHackathon, CategoryConference, CategoryFest, CategoryOther,
}

func (c EventCategory) Valid() bool {
	for _, category := range EventCategories {
		if c == category {
			return true
		}
	}
	return false
}

type EventStatus string

const (
	EventPending   EventStatus = "pending"
	EventApproved  EventStatus = "approved"
	EventRejected  EventStatus = "rejected"
	EventCompleted EventStatus = "completed"
)

// CanTransitionTo reports whether next is reachable from s in one step.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	switch s {
	case EventPending:
		return next == EventApproved || next == EventRejected
	case EventApproved:
		return next == EventCompleted
	}
	return false
}

// Event is the full record. ExpectedSponsorshipAmount is confidential: only the
// owning organizer and admins may receive an Event; everyone else gets an EventView.
type Event struct {
	ID                        string        `json:"id"`
	Title                     string        `json:"title"`
	Description               string        `json:"description"`
	OrganizerID               string        `json:"organizer_id"`
	OrganizerName             string        `json:"organizer_name"`
	CollegeName               string        `json:"college_name"`
	Category                  EventCategory `json:"category"`
	Date                      string        `json:"date"`
	Location                  string        `json:"location"`
	ExpectedAttendees         int           `json:"expected_attendees"`
	ExpectedSponsorshipAmount int64         `json:"expected_sponsorship_amount"`
	TargetAudience            []string      `json:"target_audience"`
	Benefits                  []string      `json:"benefits"`
	ImageURL                  string        `json:"image_url,omitempty"`
	Status                    EventStatus   `json:"status"`
	CreatedAt                 time.Time     `json:"created_at"`
	SponsorshipReceived       *int64        `json:"sponsorship_received,omitempty"`
	SponsoredBy               []string      `json:"sponsored_by,omitempty"`
	TicketPrice               *int64        `json:"ticket_price,omitempty"`
	AvailableTickets          *int          `json:"available_tickets,omitempty"`
}

// EventView is the projection served to brands and students.
type EventView struct {
	ID                  string        `json:"id"`
	Title               string        `json:"title"`
	Description         string        `json:"description"`
	OrganizerID         string        `json:"organizer_id"`
	OrganizerName       string        `json:"organizer_name"`
	CollegeName         string        `json:"college_name"`
	Category            EventCategory `json:"category"`
	Date                string        `json:"date"`
	Location            string        `json:"location"`
	ExpectedAttendees   int           `json:"expected_attendees"`
	TargetAudience      []string      `json:"target_audience"`
	Benefits            []string      `json:"benefits"`
	ImageURL            string        `json:"image_url,omitempty"`
	Status              EventStatus   `json:"status"`
	CreatedAt           time.Time     `json:"created_at"`
	SponsorshipReceived *int64        `json:"sponsorship_received,omitempty"`
	SponsoredBy         []string      `json:"sponsored_by,omitempty"`
	TicketPrice         *int64        `json:"ticket_price,omitempty"`
	AvailableTickets    *int          `json:"available_tickets,omitempty"`
}

func (e Event) View() EventView {
	return EventView{
		ID:                  e.ID,
		Title:               e.Title,
		Description:         e.Description,
		OrganizerID:         e.OrganizerID,
		OrganizerName:       e.OrganizerName,
		CollegeName:         e.CollegeName,
		Category:            e.Category,
		Date:                e.Date,
		Location:            e.Location,
		ExpectedAttendees:   e.ExpectedAttendees,
		TargetAudience:      e.TargetAudience,
		Benefits:            e.Benefits,
		ImageURL:            e.ImageURL,
		Status:              e.Status,
		CreatedAt:           e.CreatedAt,
		SponsorshipReceived: e.SponsorshipReceived,
		SponsoredBy:         e.SponsoredBy,
		TicketPrice:         e.TicketPrice,
		AvailableTickets:    e.AvailableTickets,
	}
}

func Views(events []Event) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, e.View())
	}
	return views
}

// EventPatch is a shallow partial update: every non-nil field replaces the
// stored value wholesale.
type EventPatch struct {
	Title                     *string        `json:"title"`
	Description               *string        `json:"description"`
	CollegeName               *string        `json:"college_name"`
	Category                  *EventCategory `json:"category"`
	Date                      *string        `json:"date"`
	Location                  *string        `json:"location"`
	ExpectedAttendees         *int           `json:"expected_attendees"`
	ExpectedSponsorshipAmount *int64         `json:"expected_sponsorship_amount"`
	TargetAudience            *[]string      `json:"target_audience"`
	Benefits                  *[]string      `json:"benefits"`
	ImageURL                  *string        `json:"image_url"`
	Status                    *EventStatus   `json:"status"`
	SponsorshipReceived       *int64         `json:"sponsorship_received"`
	SponsoredBy               *[]string      `json:"sponsored_by"`
	TicketPrice               *int64         `json:"ticket_price"`
	AvailableTickets          *int           `json:"available_tickets"`
}

func (p EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.CollegeName != nil {
		e.CollegeName = *p.CollegeName
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.ExpectedAttendees != nil {
		e.ExpectedAttendees = *p.ExpectedAttendees
	}
	if p.ExpectedSponsorshipAmount != nil {
		e.ExpectedSponsorshipAmount = *p.ExpectedSponsorshipAmount
	}
	if p.TargetAudience != nil {
		e.TargetAudience = *p.TargetAudience
	}
	if p.Benefits != nil {
		e.Benefits = *p.Benefits
	}
	if p.ImageURL != nil {
		e.ImageURL = *p.ImageURL
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.SponsorshipReceived != nil {
		v := *p.SponsorshipReceived
		e.SponsorshipReceived = &v
	}
	if p.SponsoredBy != nil {
		e.SponsoredBy = *p.SponsoredBy
	}
	if p.TicketPrice != nil {
		v := *p.TicketPrice
		e.TicketPrice = &v
	}
	if p.AvailableTickets != nil {
		v := *p.AvailableTickets
		e.AvailableTickets = &v
	}
}

// EventFilters are combined conjunctively; zero values are ignored.
type EventFilters struct {
	Category       EventCategory `json:"category" form:"category"`
	Location       string        `json:"location" form:"location"`
	DateFrom       string        `json:"date_from" form:"date_from"`
	DateTo         string        `json:"date_to" form:"date_to"`
	MinAttendees   int           `json:"min_attendees" form:"min_attendees"`
	TargetAudience []string      `json:"target_audience" form:"target_audience"`
	SearchQuery    string        `json:"search_query" form:"q"`
}
