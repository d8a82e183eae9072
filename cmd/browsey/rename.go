package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/browsey/browsey/pkg/transfer"
)

var renameCommand = &cobra.Command{
	Use:   "rename <source> <new-name>",
	Short: "Rename a single entry",
	Args:  cobra.ExactArgs(2),
	Run: func(command *cobra.Command, arguments []string) {
		result, err := app.engine.RenameEntry(arguments[0], arguments[1])
		if err != nil {
			fatal(err)
		}
		printResult(result)
	},
}

var renameManyConfiguration struct {
	requestsJSON string
}

var renameManyCommand = &cobra.Command{
	Use:   "rename-many",
	Short: "Rename a batch of entries atomically",
	Args:  cobra.NoArgs,
	Run: func(command *cobra.Command, arguments []string) {
		raw := []byte(renameManyConfiguration.requestsJSON)
		if renameManyConfiguration.requestsJSON == "-" {
			var err error
			raw, err = io.ReadAll(os.Stdin)
			if err != nil {
				fatal(err)
			}
		}

		var requests []transfer.RenameRequest
		if err := json.Unmarshal(raw, &requests); err != nil {
			fatal(newUsageError("--requests must be a JSON array of {source,newName} objects: %s", err.Error()))
		}

		result, err := app.engine.RenameMany(requests)
		if err != nil {
			fatal(err)
		}
		printResult(result)
	},
}

func init() {
	flags := renameManyCommand.Flags()
	flags.StringVar(&renameManyConfiguration.requestsJSON, "requests", "-", `JSON array of {"source":...,"newName":...}, or "-" to read from stdin`)
}
