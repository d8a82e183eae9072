package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/browsey/browsey/pkg/search"
)

var searchConfiguration struct {
	start  string
	taskID string
}

var searchCommand = &cobra.Command{
	Use:   "search <query>",
	Short: "Recursively search for entries whose name contains query",
	Args:  cobra.ExactArgs(1),
	Run: func(command *cobra.Command, arguments []string) {
		query := arguments[0]

		err := app.engine.SearchStream(searchConfiguration.start, query, searchConfiguration.taskID, func(progress search.Progress) {
			app.sink.Emit("search-progress", progress)
		})
		if err != nil {
			fatal(err)
		}
		printResult(struct{}{})
	},
}

func init() {
	flags := searchCommand.Flags()
	flags.StringVar(&searchConfiguration.start, "start", "", "Directory to start the search from")
	flags.StringVar(&searchConfiguration.taskID, "task-id", uuid.New().String(), "Task id used for cancellation")
	searchCommand.MarkFlagRequired("start")
}
