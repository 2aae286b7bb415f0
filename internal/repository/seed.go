package repository

import (
	"time"

	"github.com/farellandr/sponzo/internal/models"
)

// Demo accounts written on first access to an empty directory. They carry no
// password hash, so they can log in by email alone.
func seedAccounts() []models.Account {
	now := time.Now().UTC()
	return []models.Account{
		{
			ID:        "admin-1",
			Email:     "admin@sponzo.com",
			Name:      "Admin User",
			Role:      models.RoleAdmin,
			CreatedAt: now,
		},
		{
			ID:               "organizer-1",
			Email:            "organizer@college.edu",
			Name:             "John Organizer",
			Role:             models.RoleOrganizer,
			OrganizationName: "Tech Events Team",
			CollegeName:      "MIT",
			CreatedAt:        now,
		},
		{
			ID:               "brand-1",
			Email:            "brand@company.com",
			Name:             "Sarah Brand",
			Role:             models.RoleBrand,
			OrganizationName: "TechCorp Inc.",
			CreatedAt:        now,
		},
		{
			ID:          "student-1",
			Email:       "student@college.edu",
			Name:        "Alex Student",
			Role:        models.RoleStudent,
			CollegeName: "MIT",
			CreatedAt:   now,
		},
	}
}

func seedEvents() []models.Event {
	now := time.Now().UTC()
	return []models.Event{
		{
			ID:                        "event-1",
			Title:                     "Tech Summit 2025",
			Description:               "Annual technology summit featuring industry leaders and innovative startups. Join us for keynotes, workshops, and networking opportunities.",
			OrganizerID:               "organizer-1",
			OrganizerName:             "John Organizer",
			CollegeName:               "MIT",
			Category:                  models.CategoryConference,
			Date:                      "2025-03-15",
			Location:                  "MIT Campus, Boston",
			ExpectedAttendees:         500,
			ExpectedSponsorshipAmount: 50000,
			TargetAudience:            []string{"Students", "Professionals", "Startups"},
			Benefits:                  []string{"Brand booth space", "Logo on materials", "Speaking opportunity"},
			Status:                    models.EventApproved,
			CreatedAt:                 now,
			TicketPrice:               int64Ptr(25),
			AvailableTickets:          intPtr(500),
		},
		{
			ID:                        "event-2",
			Title:                     "Cultural Fest 2025",
			Description:               "Three-day cultural extravaganza with music, dance, drama, and fashion shows.",
			OrganizerID:               "organizer-1",
			OrganizerName:             "John Organizer",
			CollegeName:               "MIT",
			Category:                  models.CategoryCultural,
			Date:                      "2025-04-20",
			Location:                  "MIT Auditorium",
			ExpectedAttendees:         1000,
			ExpectedSponsorshipAmount: 75000,
			TargetAudience:            []string{"Students", "Young Adults"},
			Benefits:                  []string{"Prime branding location", "Product placement", "Social media promotion"},
			Status:                    models.EventApproved,
			CreatedAt:                 now,
			TicketPrice:               int64Ptr(15),
			AvailableTickets:          intPtr(1000),
		},
	}
}

func intPtr(v int) *int {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}
