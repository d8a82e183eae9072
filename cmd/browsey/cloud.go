package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/browsey/browsey/pkg/cloudpath"
)

var cloudCommand = &cobra.Command{
	Use:   "cloud",
	Short: "Inspect configured rclone remotes",
}

var cloudListRemotesCommand = &cobra.Command{
	Use:   "list-remotes",
	Short: "List every configured rclone remote",
	Args:  cobra.NoArgs,
	Run: func(command *cobra.Command, arguments []string) {
		remotes, err := app.engine.ListCloudRemotes(context.Background())
		if err != nil {
			fatal(err)
		}
		printResult(remotes)
	},
}

var cloudListEntriesCommand = &cobra.Command{
	Use:   "list-entries <cloud-path>",
	Short: "List the contents of a cloud directory",
	Args:  cobra.ExactArgs(1),
	Run: func(command *cobra.Command, arguments []string) {
		path, err := cloudpath.Parse(arguments[0])
		if err != nil {
			fatal(err)
		}
		entries, err := app.engine.ListCloudEntries(context.Background(), path)
		if err != nil {
			fatal(err)
		}
		printResult(entries)
	},
}

var cloudNormalizeCommand = &cobra.Command{
	Use:   "normalize-path <cloud-path>",
	Short: "Parse and re-render a cloud path string",
	Args:  cobra.ExactArgs(1),
	Run: func(command *cobra.Command, arguments []string) {
		normalized, err := app.engine.NormalizeCloudPath(arguments[0])
		if err != nil {
			fatal(err)
		}
		printResult(struct {
			Path string `json:"path"`
		}{Path: normalized})
	},
}

func init() {
	cloudCommand.AddCommand(cloudListRemotesCommand, cloudListEntriesCommand, cloudNormalizeCommand)
}
