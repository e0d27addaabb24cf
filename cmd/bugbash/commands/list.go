package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dyluth/bugbash/internal/view"
	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
	"github.com/spf13/cobra"
)

var (
	listJSON bool
	listAll  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bug bashes",
	Long: `List the bug bashes stored for the configured project and team,
grouped into past, current and upcoming by their scheduled windows.

By default only current and upcoming bashes are shown; use --all to
include finished ones. Use --json for machine-readable output.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listAll, "all", false, "Include past bug bashes")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx := context.Background()
	sess.creator.InitializeBugBashes(ctx)

	all := view.SortBugBashes(sess.bashes.GetAll(), "", false)
	past, current, upcoming := view.PartitionBugBashes(all, time.Now())

	if listJSON {
		payload := map[string][]*bugbash.BugBash{
			"current":  current,
			"upcoming": upcoming,
		}
		if listAll {
			payload["past"] = past
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal bug bashes: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(current)+len(upcoming) == 0 && (!listAll || len(past) == 0) {
		fmt.Println("No bug bashes found.")
		fmt.Println()
		fmt.Println("Run 'bugbash create' to start one.")
		return nil
	}

	printBashGroup("CURRENT", current)
	printBashGroup("UPCOMING", upcoming)
	if listAll {
		printBashGroup("PAST", past)
	}
	return nil
}

func printBashGroup(heading string, bashes []*bugbash.BugBash) {
	if len(bashes) == 0 {
		return
	}
	fmt.Printf("%s\n", heading)
	fmt.Printf("  %-16s %-32s %-12s %-17s %s\n", "ID", "TITLE", "TYPE", "START", "END")
	for _, b := range bashes {
		fmt.Printf("  %-16s %-32s %-12s %-17s %s\n",
			b.ID, truncate(b.Title, 32), b.WorkItemType,
			formatTime(b.StartTime), formatTime(b.EndTime))
	}
	fmt.Println()
}

// truncate shortens on runes; titles may hold multi-byte characters.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
