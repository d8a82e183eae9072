package main

import (
	"github.com/spf13/cobra"
)

var dropModeConfiguration struct {
	dest       string
	preferCopy bool
}

var dropModeCommand = &cobra.Command{
	Use:   "resolve-drop-mode <path>...",
	Short: "Decide whether a drag-and-drop should copy or cut its sources",
	Args:  cobra.MinimumNArgs(1),
	Run: func(command *cobra.Command, arguments []string) {
		mode, err := app.engine.ResolveDropClipboardMode(arguments, dropModeConfiguration.dest, dropModeConfiguration.preferCopy)
		if err != nil {
			fatal(err)
		}
		printResult(struct {
			Mode string `json:"mode"`
		}{Mode: mode.String()})
	},
}

func init() {
	flags := dropModeCommand.Flags()
	flags.StringVar(&dropModeConfiguration.dest, "dest", "", "Drop destination directory")
	flags.BoolVar(&dropModeConfiguration.preferCopy, "prefer-copy", false, "Treat the drag session as copy-only")
	dropModeCommand.MarkFlagRequired("dest")
}
