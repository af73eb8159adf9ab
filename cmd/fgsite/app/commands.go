package app

import (
	"github.com/spf13/cobra"

	"github.com/fostergreatness/fgsite/cmd/fgsite/cmd/events"
	"github.com/fostergreatness/fgsite/cmd/fgsite/cmd/newsletter"
	"github.com/fostergreatness/fgsite/cmd/fgsite/cmd/serve"
	"github.com/fostergreatness/fgsite/cmd/fgsite/cmd/subscribe"
	"github.com/fostergreatness/fgsite/cmd/fgsite/cmd/version"
	"github.com/fostergreatness/fgsite/cmd/fgsite/cmd/videos"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(serve.NewCommand(a, a.ServerConfig()))

	// Feed commands
	rootCmd.AddCommand(events.NewCommand(a))
	rootCmd.AddCommand(newsletter.NewCommand(a))
	rootCmd.AddCommand(subscribe.NewCommand(a))
	rootCmd.AddCommand(videos.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}
