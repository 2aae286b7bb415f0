// Package cli implements the sponzo command line. Commands other than serve
// act as the user held in the store's session slot.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/farellandr/sponzo/config"
	"github.com/farellandr/sponzo/internal/logging"
	"github.com/farellandr/sponzo/internal/server"
	"github.com/farellandr/sponzo/internal/store"
)

// StoreOpener opens the persistent store for cfg.
type StoreOpener func(cfg *config.Config) (store.Store, func() error, error)

type cli struct {
	out       io.Writer
	openStore StoreOpener

	cfg        *config.Config
	logger     zerolog.Logger
	app        *server.App
	closeStore func() error
}

// NewRootCommand builds the command tree. A nil opener uses config.InitStore.
func NewRootCommand(out io.Writer, opener StoreOpener) *cobra.Command {
	if out == nil {
		out = os.Stdout
	}
	if opener == nil {
		opener = config.InitStore
	}
	c := &cli{out: out, openStore: opener}

	root := &cobra.Command{
		Use:           "sponzo",
		Short:         "Sponsorship marketplace for college events",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.logger = logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
			cmd.SetContext(logging.WithLogger(cmd.Context(), &c.logger))
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if c.closeStore != nil {
				return c.closeStore()
			}
			return nil
		},
	}
	root.SetOut(out)

	root.AddCommand(
		c.serveCommand(),
		c.registerCommand(),
		c.loginCommand(),
		c.logoutCommand(),
		c.whoamiCommand(),
		c.eventsCommand(),
		c.ticketsCommand(),
		c.proposalsCommand(),
	)
	return root
}

// services opens the store on first use.
func (c *cli) services() (*server.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	s, closeFn, err := c.openStore(c.cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	c.app = server.NewApp(s, c.cfg)
	c.closeStore = closeFn
	return c.app, nil
}

func (c *cli) print(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, string(raw))
	return err
}

func (c *cli) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return server.Start(c.cfg, c.logger)
		},
	}
}
