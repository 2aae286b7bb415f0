package cli

import (
	"github.com/spf13/cobra"

	"github.com/farellandr/sponzo/internal/models"
	"github.com/farellandr/sponzo/internal/services"
)

func (c *cli) proposalsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposals",
		Short: "Submit and list sponsorship proposals",
	}
	cmd.AddCommand(c.proposalsSubmitCommand(), c.proposalsListCommand())
	return cmd
}

func (c *cli) proposalsSubmitCommand() *cobra.Command {
	var in services.SubmitProposalInput
	cmd := &cobra.Command{
		Use:   "submit <event-id>",
		Short: "Propose a sponsorship for an approved event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := c.currentUser(cmd)
			if err != nil {
				return err
			}
			in.EventID = args[0]
			proposal, err := c.app.Proposals.Submit(cmd.Context(), account, in)
			if err != nil {
				return err
			}
			return c.print(proposal)
		},
	}
	cmd.Flags().Int64Var(&in.ProposedAmount, "amount", 0, "proposed amount")
	cmd.Flags().StringVar(&in.Message, "message", "", "message to the organizer")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

// proposalsListCommand lists by event with --event, otherwise the brand's own
// proposals (every proposal for admins).
func (c *cli) proposalsListCommand() *cobra.Command {
	var eventID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List proposals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := c.currentUser(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var proposals []models.Proposal
			switch {
			case eventID != "":
				proposals, err = c.app.Proposals.ListByEvent(ctx, account, eventID)
			case account.HasRole(models.RoleAdmin):
				proposals, err = c.app.Proposals.ListAll(ctx, account)
			default:
				proposals, err = c.app.Proposals.ListByBrand(ctx, account, account.ID)
			}
			if err != nil {
				return err
			}
			return c.print(proposals)
		},
	}
	cmd.Flags().StringVar(&eventID, "event", "", "list proposals for one event")
	return cmd
}
