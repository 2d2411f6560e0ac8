package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkondo/taskping/internal/app"
	"github.com/mkondo/taskping/internal/infra/channel"
)

// newServeCommand creates the serve command running the reminder engine.
func newServeCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Short:   "Run the reminder engine",
		GroupID: groupServe,
		Long: `Run the reminder scheduler (and the HTTP command channel when
channel.listen is configured) until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			if server := c.ChannelServer(); server != nil {
				go func() {
					errCh <- server.Run(ctx, c.Config.Channel.Listen)
				}()
			}

			schedErr := c.Scheduler().Run(ctx)

			select {
			case err := <-errCh:
				if err != nil {
					return err
				}
			default:
			}
			return schedErr
		},
	}
}

// newTokenCommand creates the token command for provisioning channel
// clients.
func newTokenCommand(c *app.Container) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:     "token <owner>",
		Short:   "Issue a bearer token for the HTTP command channel",
		GroupID: groupServe,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := c.Config.Channel.JWTSecret
			if secret == "" {
				return errors.New("channel.jwt_secret is not configured")
			}
			token, err := channel.OwnerToken([]byte(secret), args[0], ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 365*24*time.Hour, "token lifetime")
	return cmd
}
