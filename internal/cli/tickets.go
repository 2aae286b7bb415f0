package cli

import (
	"github.com/spf13/cobra"

	"github.com/farellandr/sponzo/internal/models"
)

func (c *cli) ticketsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Buy and list tickets",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "buy <event-id>",
			Short: "Buy one ticket for an event",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				account, err := c.currentUser(cmd)
				if err != nil {
					return err
				}
				ticket, err := c.app.Tickets.Purchase(cmd.Context(), account, args[0])
				if err != nil {
					return err
				}
				return c.print(ticket)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List your tickets (all tickets for admins)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				account, err := c.currentUser(cmd)
				if err != nil {
					return err
				}
				var tickets []models.Ticket
				if account.HasRole(models.RoleAdmin) {
					tickets, err = c.app.Tickets.ListAll(cmd.Context(), account)
				} else {
					tickets, err = c.app.Tickets.ListByStudent(cmd.Context(), account, account.ID)
				}
				if err != nil {
					return err
				}
				return c.print(tickets)
			},
		},
	)
	return cmd
}
