package main

import (
	"github.com/spf13/cobra"

	"github.com/browsey/browsey/pkg/config"
)

var settingsCommand = &cobra.Command{
	Use:   "settings",
	Short: "Inspect or update persisted settings",
}

var settingsShowCommand = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	Run: func(command *cobra.Command, arguments []string) {
		printResult(app.engine.Settings())
	},
}

var settingsSetDefaultViewConfiguration struct {
	view string
}

var settingsSetDefaultViewCommand = &cobra.Command{
	Use:   "set-default-view",
	Short: "Persist the default listing view (list or grid)",
	Args:  cobra.NoArgs,
	Run: func(command *cobra.Command, arguments []string) {
		var view config.View
		switch settingsSetDefaultViewConfiguration.view {
		case "list":
			view = config.ViewList
		case "grid":
			view = config.ViewGrid
		default:
			fatal(newUsageError("view must be \"list\" or \"grid\", got %q", settingsSetDefaultViewConfiguration.view))
		}

		if err := app.engine.SetDefaultView(view); err != nil {
			fatal(err)
		}
		printResult(struct{}{})
	},
}

func init() {
	settingsCommand.AddCommand(settingsShowCommand, settingsSetDefaultViewCommand)

	flags := settingsSetDefaultViewCommand.Flags()
	flags.StringVar(&settingsSetDefaultViewConfiguration.view, "view", "list", "list or grid")
}
