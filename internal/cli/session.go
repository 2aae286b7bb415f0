package cli

import (
	"github.com/spf13/cobra"

	"github.com/farellandr/sponzo/internal/models"
	"github.com/farellandr/sponzo/internal/services"
)

func (c *cli) registerCommand() *cobra.Command {
	var in services.RegisterInput
	var role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in as it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := c.services()
			if err != nil {
				return err
			}
			parsed, err := models.ParseRole(role)
			if err != nil {
				return err
			}
			in.Role = parsed
			account, err := app.Sessions.Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			return c.print(account.Public())
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password")
	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", string(models.RoleStudent), "student, organizer or brand")
	cmd.Flags().StringVar(&in.OrganizationName, "organization", "", "organization or brand name")
	cmd.Flags().StringVar(&in.CollegeName, "college", "", "college name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) loginCommand() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in by email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := c.services()
			if err != nil {
				return err
			}
			account, err := app.Sessions.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return c.print(account.Public())
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := c.services()
			if err != nil {
				return err
			}
			return app.Sessions.Logout(cmd.Context())
		},
	}
}

func (c *cli) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := c.currentUser(cmd)
			if err != nil {
				return err
			}
			return c.print(account)
		},
	}
}

func (c *cli) currentUser(cmd *cobra.Command) (*models.Account, error) {
	app, err := c.services()
	if err != nil {
		return nil, err
	}
	return app.Sessions.CurrentUser(cmd.Context())
}
