// Package videos provides the videos command for the fgsite CLI.
package videos

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fostergreatness/fgsite/cmd/application"
	"github.com/fostergreatness/fgsite/internal/cmd/cmdutil"
	"github.com/fostergreatness/fgsite/internal/cmd/output"
)

// NewCommand creates the videos command.
func NewCommand(app application.Application) *cobra.Command {
	feeds := app.Feeds()

	cmd := &cobra.Command{
		Use:     "videos",
		GroupID: "feeds",
		Short:   "List the videos of a YouTube playlist",
		Long: `Videos lists a playlist with titles, durations and publish dates, in the
shape served by /api/videos.

Requires YOUTUBE_API_KEY.`,
		Example: `  fgsite videos
  fgsite videos --playlist PLxxxx --max 25 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app)
		},
	}

	cmd.Flags().String("playlist", feeds.PlaylistID, "Playlist ID")
	cmd.Flags().Int("max", feeds.VideosMaxResults, "Maximum videos (1-50)")

	return cmd
}

func run(cmd *cobra.Command, app application.Application) error {
	ctx, cancel := cmdutil.CommandContext(cmd)
	defer cancel()

	list, err := app.Videos().FetchPlaylist(ctx,
		cmdutil.MustGetString(cmd, "playlist"),
		cmdutil.MustGetInt(cmd, "max"))
	if err != nil {
		return fmt.Errorf("fetching playlist: %w", err)
	}

	tbl := output.VideosTable(list)
	return output.Render(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), list, &tbl)
}
