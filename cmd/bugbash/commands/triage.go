package commands

import (
	"context"
	"strconv"

	"github.com/dyluth/bugbash/internal/printer"
	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
	"github.com/spf13/cobra"
)

var acceptCmd = &cobra.Command{
	Use:   "accept <bash-id> <item-id>...",
	Short: "Accept items in a bug bash",
	Long: `Mark one or more reported items as accepted.

Accepting replaces any earlier rejection. Items someone else changed
since the listing are skipped rather than overwritten; re-run to retry
against their latest version.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTriage(args, "accept")
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject <bash-id> <item-id>...",
	Short: "Reject items in a bug bash",
	Long: `Mark one or more reported items as rejected.

Rejecting replaces any earlier acceptance. Items someone else changed
since the listing are skipped rather than overwritten; re-run to retry
against their latest version.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTriage(args, "reject")
	},
}

func init() {
	rootCmd.AddCommand(acceptCmd)
	rootCmd.AddCommand(rejectCmd)
}

func runTriage(args []string, verb string) error {
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

	failed := 0
	for _, item := range items {
		var updated *bugbash.WorkItem
		if verb == "accept" {
			updated = sess.creator.AcceptWorkItem(ctx, item)
		} else {
			updated = sess.creator.RejectWorkItem(ctx, item)
		}
		if updated == nil {
			printer.Warning("item %d changed since listing, skipping\n", item.ID)
			failed++
			continue
		}
		printer.Success("%sed item %d: %s\n", verb, updated.ID, updated.Title())
	}

	if failed > 0 || len(missing) > 0 {
		return printer.Error(
			"some items were not updated",
			"Items listed above were skipped.",
			[]string{"Re-run the command for the skipped items."},
		)
	}
	return nil
}

func parseItemIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, printer.Error(
				"invalid item id",
				"Item ids are the numeric work item ids shown by 'bugbash items'.",
				nil,
			)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// pickItems resolves the requested ids against the bash's items,
// reporting any that are not part of the bash.
func pickItems(items []*bugbash.WorkItem, ids []int) (found []*bugbash.WorkItem, missing []int) {
	byID := make(map[int]*bugbash.WorkItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			found = append(found, item)
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing
}
