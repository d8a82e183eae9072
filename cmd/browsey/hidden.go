package main

import (
	"github.com/spf13/cobra"
)

var setHiddenConfiguration struct {
	hidden bool
}

var setHiddenCommand = &cobra.Command{
	Use:   "set-hidden <path>...",
	Short: "Set or clear the hidden attribute on one or more paths",
	Args:  cobra.MinimumNArgs(1),
	Run: func(command *cobra.Command, arguments []string) {
		result, err := app.engine.SetHidden(arguments, setHiddenConfiguration.hidden)
		if err != nil {
			fatal(err)
		}
		printResult(result)
	},
}

func init() {
	flags := setHiddenCommand.Flags()
	flags.BoolVar(&setHiddenConfiguration.hidden, "hidden", true, "Hide the paths (pass --hidden=false to unhide)")
}
