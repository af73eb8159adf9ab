// Package subscribe provides the subscribe command for the fgsite CLI.
package subscribe

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fostergreatness/fgsite/cmd/application"
	"github.com/fostergreatness/fgsite/internal/cmd/cmdutil"
	"github.com/fostergreatness/fgsite/internal/cmd/output"
	"github.com/fostergreatness/fgsite/pkg/subscription"
)

// NewCommand creates the subscribe command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscribe EMAIL",
		GroupID: "feeds",
		Short:   "Subscribe an email address to the newsletter",
		Long: `Subscribe relays a signup to the Beehiiv publication with the same
attribution the site forms send. --form selects a named attribution profile
from the configuration.

Requires BEEHIIV_API_KEY.`,
		Example: `  fgsite subscribe ada@example.com
  fgsite subscribe ada@example.com --name Ada --form footer`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], app)
		},
	}

	cmd.Flags().String("name", "", "Subscriber name (logged only)")
	cmd.Flags().String("form", "", "Attribution profile")

	return cmd
}

func run(cmd *cobra.Command, email string, app application.Application) error {
	ctx, cancel := cmdutil.CommandContext(cmd)
	defer cancel()

	conf, err := app.Subscriptions().Subscribe(ctx, subscription.Request{
		Email: email,
		Name:  cmdutil.MustGetString(cmd, "name"),
		Form:  cmdutil.MustGetString(cmd, "form"),
	})
	if err != nil {
		return fmt.Errorf("subscribing %s: %w", email, err)
	}

	tbl := output.Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"Email", email},
			{"Success", strconv.FormatBool(conf.Success)},
			{"Subscription", string(conf.Subscription)},
		},
	}
	return output.Render(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), conf, &tbl)
}
