package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/browsey/browsey/pkg/events"
	"github.com/browsey/browsey/pkg/transfer"
)

var pasteConfiguration struct {
	dest   string
	mode   string
	policy string
	taskID string
}

var pasteCommand = &cobra.Command{
	Use:   "paste <source>...",
	Short: "Copy or cut sources into a destination directory",
	Args:  cobra.MinimumNArgs(1),
	Run: func(command *cobra.Command, arguments []string) {
		mode, err := parseMode(pasteConfiguration.mode)
		if err != nil {
			fatal(err)
		}
		policy, err := parsePolicy(pasteConfiguration.policy)
		if err != nil {
			fatal(err)
		}

		onProgress := func(bytesDone int64) {
			app.sink.Emit("progress", events.ProgressPayload{
				TaskID:    pasteConfiguration.taskID,
				BytesDone: bytesDone,
			})
		}

		result, err := app.engine.PasteClipboard(arguments, pasteConfiguration.dest, mode, policy, pasteConfiguration.taskID, onProgress)
		if err != nil {
			fatal(err)
		}
		printResult(result)
	},
}

func init() {
	flags := pasteCommand.Flags()
	flags.StringVar(&pasteConfiguration.dest, "dest", "", "Destination directory")
	flags.StringVar(&pasteConfiguration.mode, "mode", "copy", "copy or cut")
	flags.StringVar(&pasteConfiguration.policy, "policy", "skip", "skip, overwrite, rename, or merge")
	flags.StringVar(&pasteConfiguration.taskID, "task-id", uuid.New().String(), "Task id used for progress events and cancellation")
	pasteCommand.MarkFlagRequired("dest")
}

func parseMode(raw string) (transfer.Mode, error) {
	switch raw {
	case "copy":
		return transfer.Copy, nil
	case "cut":
		return transfer.Cut, nil
	default:
		return 0, newUsageError("mode must be \"copy\" or \"cut\", got %q", raw)
	}
}

func parsePolicy(raw string) (transfer.CollisionPolicy, error) {
	switch raw {
	case "skip":
		return transfer.Skip, nil
	case "overwrite":
		return transfer.Overwrite, nil
	case "rename":
		return transfer.RenameSuffix, nil
	case "merge":
		return transfer.MergeForDirs, nil
	default:
		return 0, newUsageError("policy must be one of skip, overwrite, rename, merge; got %q", raw)
	}
}
