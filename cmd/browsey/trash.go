package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/browsey/browsey/pkg/trash"
)

var trashCommand = &cobra.Command{
	Use:   "trash",
	Short: "Move, restore, purge, and list trashed items",
}

var trashMoveCommand = &cobra.Command{
	Use:   "move <path>...",
	Short: "Move paths to the trash",
	Args:  cobra.MinimumNArgs(1),
	Run: func(command *cobra.Command, arguments []string) {
		if err := app.engine.MoveToTrash(arguments); err != nil {
			fatal(err)
		}
		printResult(struct{}{})
	},
}

var trashRestoreCommand = &cobra.Command{
	Use:   "restore <id>...",
	Short: "Restore trashed items by id",
	Args:  cobra.MinimumNArgs(1),
	Run: func(command *cobra.Command, arguments []string) {
		if err := app.engine.RestoreTrashItems(arguments); err != nil {
			fatal(err)
		}
		printResult(struct{}{})
	},
}

var trashPurgeCommand = &cobra.Command{
	Use:   "purge <id>...",
	Short: "Permanently delete trashed items by id",
	Args:  cobra.MinimumNArgs(1),
	Run: func(command *cobra.Command, arguments []string) {
		if err := app.engine.PurgeTrashItems(arguments); err != nil {
			fatal(err)
		}
		printResult(struct{}{})
	},
}

var trashListConfiguration struct {
	sortBy     string
	descending bool
}

var trashListCommand = &cobra.Command{
	Use:   "list",
	Short: "List items currently in the trash",
	Args:  cobra.NoArgs,
	Run: func(command *cobra.Command, arguments []string) {
		field, err := parseSortField(trashListConfiguration.sortBy)
		if err != nil {
			fatal(err)
		}

		items, err := app.engine.ListTrash(trash.SortSpec{Field: field, Descending: trashListConfiguration.descending})
		if err != nil {
			fatal(err)
		}

		if !rootConfiguration.json {
			printTrashItemsHuman(items)
			return
		}
		printResult(struct {
			Entries []trash.Item `json:"entries"`
		}{Entries: items})
	},
}

// printTrashItemsHuman renders the trash listing the way a terminal user
// reads it, sizes formatted with humanize rather than raw byte counts.
func printTrashItemsHuman(items []trash.Item) {
	if len(items) == 0 {
		fmt.Println("Trash is empty.")
		return
	}
	for _, item := range items {
		label := color.CyanString(item.OriginalPath)
		fmt.Printf("%s  %s  deleted %s\n", label, humanize.Bytes(uint64(item.Size)), humanize.Time(item.DeletedAt))
	}
}

func init() {
	trashCommand.AddCommand(trashMoveCommand, trashRestoreCommand, trashPurgeCommand, trashListCommand)

	flags := trashListCommand.Flags()
	flags.StringVar(&trashListConfiguration.sortBy, "sort", "deleted-at", "deleted-at, name, or size")
	flags.BoolVar(&trashListConfiguration.descending, "descending", false, "Reverse sort order")
}

func parseSortField(raw string) (trash.SortField, error) {
	switch raw {
	case "deleted-at":
		return trash.SortByDeletedAt, nil
	case "name":
		return trash.SortByName, nil
	case "size":
		return trash.SortBySize, nil
	default:
		return 0, newUsageError("sort must be one of deleted-at, name, size; got %q", raw)
	}
}
