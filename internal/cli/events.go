package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/farellandr/sponzo/internal/models"
)

func (c *cli) eventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Browse and moderate events",
	}
	cmd.AddCommand(
		c.eventsListCommand(),
		c.eventStatusCommand("approve", models.EventApproved),
		c.eventStatusCommand("reject", models.EventRejected),
		c.eventStatusCommand("complete", models.EventCompleted),
	)
	return cmd
}

// eventsListCommand shows full records to admins (all events) and organizers
// (their own); everyone else sees the public listing.
func (c *cli) eventsListCommand() *cobra.Command {
	var filters models.EventFilters
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events visible to the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := c.services()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			filters.Category = models.EventCategory(category)

			account, err := app.Sessions.CurrentUser(ctx)
			if err != nil && !errors.Is(err, models.ErrNoSession) {
				return err
			}

			switch {
			case account.HasRole(models.RoleAdmin):
				events, err := app.Events.ListAll(ctx, account)
				if err != nil {
					return err
				}
				return c.print(events)
			case account.HasRole(models.RoleOrganizer):
				events, err := app.Events.ListByOrganizer(ctx, account, account.ID)
				if err != nil {
					return err
				}
				return c.print(events)
			case account.HasRole(models.RoleBrand):
				views, err := app.Events.ListForBrands(ctx, &filters)
				if err != nil {
					return err
				}
				return c.print(views)
			default:
				views, err := app.Events.ListForStudents(ctx, &filters)
				if err != nil {
					return err
				}
				return c.print(views)
			}
		},
	}
	f := cmd.Flags()
	f.StringVar(&category, "category", "", "category")
	f.StringVar(&filters.Location, "location", "", "location substring")
	f.StringVar(&filters.DateFrom, "from", "", "earliest date (YYYY-MM-DD)")
	f.StringVar(&filters.DateTo, "to", "", "latest date (YYYY-MM-DD)")
	f.IntVar(&filters.MinAttendees, "min-attendees", 0, "minimum expected attendees")
	f.StringSliceVar(&filters.TargetAudience, "audience", nil, "target audience tags (any match)")
	f.StringVarP(&filters.SearchQuery, "query", "q", "", "search title, description and college")
	return cmd
}

func (c *cli) eventStatusCommand(use string, status models.EventStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <event-id>",
		Short: "Mark an event " + string(status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := c.currentUser(cmd)
			if err != nil {
				return err
			}
			event, err := c.app.Events.SetStatus(cmd.Context(), account, args[0], status)
			if err != nil {
				return err
			}
			return c.print(event)
		},
	}
}
