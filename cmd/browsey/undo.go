package main

import (
	"github.com/spf13/cobra"
)

var undoCommand = &cobra.Command{
	Use:   "undo",
	Short: "Reverse the last undoable batch",
	Args:  cobra.NoArgs,
	Run: func(command *cobra.Command, arguments []string) {
		result, err := app.engine.Undo()
		if err != nil {
			fatal(err)
		}
		printResult(result)
	},
}

var redoCommand = &cobra.Command{
	Use:   "redo",
	Short: "Re-apply the last undone batch",
	Args:  cobra.NoArgs,
	Run: func(command *cobra.Command, arguments []string) {
		result, err := app.engine.Redo()
		if err != nil {
			fatal(err)
		}
		printResult(result)
	},
}

var cancelCommand = &cobra.Command{
	Use:   "cancel <task-id>",
	Short: "Cancel a running task by id (idempotent)",
	Args:  cobra.ExactArgs(1),
	Run: func(command *cobra.Command, arguments []string) {
		app.engine.CancelTask(arguments[0])
		printResult(struct{}{})
	},
}
