package commands

import (
	"context"
	"fmt"

	"github.com/dyluth/bugbash/internal/printer"
	"github.com/spf13/cobra"
)

var (
	deleteYes       bool
	deleteKeepItems bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete <bash-id>",
	Short: "Delete a bug bash",
	Long: `Delete a bug bash record.

The reported work items survive; by default their bash tags are
stripped so they no longer reference the deleted bash. Use
--keep-items to leave the tags in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
	deleteCmd.Flags().BoolVar(&deleteKeepItems, "keep-items", false, "Leave the bash tags on reported items")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	if !confirm(fmt.Sprintf("Delete bug bash '%s'?", bash.Title), deleteYes) {
		printer.Info("Aborted.\n")
		return nil
	}

	if !deleteKeepItems {
		items := sess.creator.BashWorkItems(ctx, bash)
		if len(items) > 0 {
			printer.Step("Untagging %d item(s)...\n", len(items))
			if !sess.creator.RemoveWorkItems(ctx, bash, items) {
				printer.Warning("failed to untag some items; the bash was not deleted\n")
				return printer.Error(
					"failed to delete bug bash",
					"The reported items could not be untagged.",
					[]string{"Retry, or pass --keep-items to delete the bash record anyway."},
				)
			}
		}
	}

	if !sess.creator.DeleteBugBash(ctx, bash) {
		return printer.Error(
			"failed to delete bug bash",
			"The document store rejected the deletion. See the log output above for the cause.",
			nil,
		)
	}

	printer.Success("Deleted bug bash '%s'\n", bash.Title)
	return nil
}
