// Package newsletter provides the newsletter command for the fgsite CLI.
package newsletter

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fostergreatness/fgsite/cmd/application"
	"github.com/fostergreatness/fgsite/internal/cmd/cmdutil"
	"github.com/fostergreatness/fgsite/internal/cmd/output"
)

// NewCommand creates the newsletter command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "newsletter",
		GroupID: "feeds",
		Short:   "Show the most recent newsletter posts",
		Long: `Newsletter lists the most recent confirmed posts of the Beehiiv
publication, in the public shape served by /api/newsletter.

Requires BEEHIIV_API_KEY.`,
		Example: `  fgsite newsletter
  fgsite newsletter --limit 5 -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app)
		},
	}

	cmd.Flags().IntP("limit", "l", app.Feeds().NewsletterLimit, "Maximum posts")

	return cmd
}

func run(cmd *cobra.Command, app application.Application) error {
	ctx, cancel := cmdutil.CommandContext(cmd)
	defer cancel()

	posts, err := app.Newsletter().FetchRecentPosts(ctx, cmdutil.MustGetInt(cmd, "limit"))
	if err != nil {
		return fmt.Errorf("fetching newsletter posts: %w", err)
	}

	tbl := output.NewsletterTable(posts)
	return output.Render(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), posts, &tbl)
}
