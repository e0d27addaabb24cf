package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dyluth/bugbash/internal/view"
	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
	"github.com/spf13/cobra"
)

var (
	itemsJSON   bool
	itemsSort   string
	itemsDesc   bool
	itemsFilter string
	itemsStatus string
)

var itemsCmd = &cobra.Command{
	Use:   "items <bash-id>",
	Short: "List the work items reported in a bug bash",
	Long: `List the work items reported in a bug bash, with their triage status.

Items can be sorted on any field reference name (plus the ID and
created-date pseudo-columns) and filtered with free text, which matches
id, title, state, assignee, creator, area path and status.

Examples:
  bugbash items 1726000000000
  bugbash items 1726000000000 --sort System.CreatedDate --desc
  bugbash items 1726000000000 --filter "login" --status pending`,
	Args: cobra.ExactArgs(1),
	RunE: runItems,
}

func init() {
	itemsCmd.Flags().BoolVar(&itemsJSON, "json", false, "Output in JSON format")
	itemsCmd.Flags().StringVar(&itemsSort, "sort", view.ColumnID, "Sort column (field reference name, or ID)")
	itemsCmd.Flags().BoolVar(&itemsDesc, "desc", false, "Sort descending")
	itemsCmd.Flags().StringVar(&itemsFilter, "filter", "", "Free-text filter")
	itemsCmd.Flags().StringVar(&itemsStatus, "status", "", "Only items with this status (accepted, rejected, pending)")
	rootCmd.AddCommand(itemsCmd)
}

func runItems(cmd *cobra.Command, args []string) error {
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

	items := sess.creator.BashWorkItems(ctx, bash)
	if itemsFilter != "" {
		items = view.FilterWorkItems(items, itemsFilter)
	}
	if itemsStatus != "" {
		items = filterByStatus(items, itemsStatus)
	}
	items = view.SortWorkItems(items, itemsSort, itemsDesc)

	if itemsJSON {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal work items: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(items) == 0 {
		fmt.Println("No items.")
		return nil
	}

	fmt.Printf("%-8s %-10s %-40s %-14s %s\n", "ID", "STATUS", "TITLE", "STATE", "CREATED BY")
	for _, item := range items {
		fmt.Printf("%-8d %-10s %-40s %-14s %s\n",
			item.ID, view.ItemStatus(item), truncate(item.Title(), 40),
			item.State(), item.CreatedBy())
	}
	return nil
}

func filterByStatus(items []*bugbash.WorkItem, status string) []*bugbash.WorkItem {
	accepted, rejected, pending := view.PartitionWorkItems(items)
	switch status {
	case "accepted":
		return accepted
	case "rejected":
		return rejected
	case "pending":
		return pending
	}
	return items
}
