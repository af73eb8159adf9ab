// Package events provides the events command for the fgsite CLI.
package events

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fostergreatness/fgsite/cmd/application"
	"github.com/fostergreatness/fgsite/internal/cmd/cmdutil"
	"github.com/fostergreatness/fgsite/internal/cmd/output"
	"github.com/fostergreatness/fgsite/pkg/events"
)

// NewCommand creates the events command.
func NewCommand(app application.Application) *cobra.Command {
	feeds := app.Feeds()

	cmd := &cobra.Command{
		Use:     "events",
		GroupID: "feeds",
		Short:   "List upcoming community events",
		Long: `Events fetches the community events list and shows the upcoming events
in the configured category, soonest first. The listing view matches the
events page and the preview view matches the homepage strip.`,
		Example: `  fgsite events                      # Events page listing
  fgsite events --view preview       # Homepage preview
  fgsite events --category workshops -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app)
		},
	}

	cmd.Flags().String("view", string(events.ViewListing), "Feed view: listing or preview")
	cmd.Flags().IntP("limit", "l", 0, "Maximum events (default: the view's limit)")
	cmd.Flags().String("category", feeds.EventsCategory, "Community space slug")
	cmd.Flags().Bool("cards", false, "Emit display cards instead of records (json/yaml)")

	return cmd
}

func run(cmd *cobra.Command, app application.Application) error {
	feeds := app.Feeds()

	view, ok := events.ParseView(cmdutil.MustGetString(cmd, "view"))
	if !ok {
		return fmt.Errorf("invalid view %q: must be listing or preview", cmdutil.MustGetString(cmd, "view"))
	}
	limit := cmdutil.MustGetInt(cmd, "limit")
	if limit == 0 {
		limit = feeds.EventsListingLimit
		if view == events.ViewPreview {
			limit = feeds.EventsPreviewLimit
		}
	}
	category := cmdutil.MustGetString(cmd, "category")

	ctx, cancel := cmdutil.CommandContext(cmd)
	defer cancel()

	records, err := app.Events().FetchRecords(ctx)
	if err != nil {
		return fmt.Errorf("fetching events: %w", err)
	}

	loc := feeds.EventsLocation
	if loc == nil {
		loc = time.Local
	}
	feed := events.Derive(records, category, time.Now().In(loc), limit)
	cards := events.NewCards(feed, loc)

	app.Logger().Debug().
		Int("fetched", len(records)).
		Int("upcoming", len(feed)).
		Str("category", category).
		Msg("Derived events feed")

	format := output.DetectFormat(app.OutputFormat())
	tbl := output.EventsTable(cards)
	var data any = feed
	if cmdutil.MustGetBool(cmd, "cards") {
		data = cards
	}
	return output.Render(cmd.OutOrStdout(), format, data, &tbl)
}
