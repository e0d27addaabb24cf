package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/dyluth/bugbash/internal/dialog"
	"github.com/dyluth/bugbash/internal/printer"
	"github.com/spf13/cobra"
)

var (
	removeYes  bool
	removeHard bool
)

var removeCmd = &cobra.Command{
	Use:   "remove <bash-id> <item-id>...",
	Short: "Remove items from a bug bash",
	Long: `Remove one or more items from a bug bash.

By default this only strips the bash's tags from the items; the work
items themselves survive untouched. With --hard the work items are
deleted from the tracking service as well.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Skip the confirmation prompt")
	removeCmd.Flags().BoolVar(&removeHard, "hard", false, "Also delete the work items from the tracking service")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	ids, err := parseItemIDs(args[1:])
	if err != nil {
		return err
	}

	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx := context.Background()
	bash, err := loadBash(ctx, sess, args[0])
	if err != nil {
		return err
	}

	items, missing := pickItems(sess.creator.BashWorkItems(ctx, bash), ids)
	for _, id := range missing {
		printer.Warning("item %d is not in this bug bash, skipping\n", id)
	}
	if len(items) == 0 {
		return printer.Error("no matching items", "None of the given ids belong to this bug bash.", nil)
	}

	question := fmt.Sprintf("Remove %d item(s) from '%s'?", len(items), bash.Title)
	if removeHard {
		question = fmt.Sprintf("Permanently delete %d work item(s)?", len(items))
	}
	if !confirm(question, removeYes) {
		printer.Info("Aborted.\n")
		return nil
	}

	if removeHard {
		itemIDs := make([]int, len(items))
		for i, item := range items {
			itemIDs[i] = item.ID
		}
		if !sess.creator.DeleteWorkItems(ctx, itemIDs) {
			return printer.Error("failed to delete work items", "The tracking service rejected the deletion.", nil)
		}
		printer.Success("Deleted %d work item(s)\n", len(items))
		return nil
	}

	if !sess.creator.RemoveWorkItems(ctx, bash, items) {
		return printer.Error("failed to remove items", "The tracking service rejected the tag update.", nil)
	}
	printer.Success("Removed %d item(s) from '%s'\n", len(items), bash.Title)
	return nil
}

// confirm asks via the terminal unless --yes pre-approved.
func confirm(question string, yes bool) bool {
	var confirmer dialog.Confirmer = &dialog.Terminal{In: os.Stdin, Out: os.Stdout}
	if yes {
		confirmer = dialog.Auto(true)
	}
	return confirmer.Confirm(question)
}
