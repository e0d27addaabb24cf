package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dyluth/bugbash/internal/nav"
	"github.com/dyluth/bugbash/internal/printer"
	"github.com/dyluth/bugbash/internal/view"
	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <bash-id>",
	Short: "Show a bug bash and its triage progress",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
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
	accepted, rejected, pending := view.PartitionWorkItems(items)

	if showJSON {
		payload := struct {
			Bash     *bugbash.BugBash    `json:"bugBash"`
			Accepted []*bugbash.WorkItem `json:"accepted"`
			Rejected []*bugbash.WorkItem `json:"rejected"`
			Pending  []*bugbash.WorkItem `json:"pending"`
		}{bash, accepted, rejected, pending}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal bug bash: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printer.Printf("%s\n\n", bash.Title)
	printer.Detail("ID", bash.ID)
	printer.Detail("Description", bash.Description)
	printer.Detail("Item type", bash.WorkItemType)
	printer.Detail("Form fields", strings.Join(bash.ManualFields, ", "))
	printer.Detail("Start", formatTime(bash.StartTime))
	printer.Detail("End", formatTime(bash.EndTime))
	printer.Detail("Schedule", scheduleLabel(bash))
	printer.Detail("Tag", bugbash.BashTag(bash.ID))
	printer.Detail("Link", panelLink(sess, bash.ID))

	printer.Printf("\nItems: %d total, %d accepted, %d rejected, %d pending\n",
		len(items), len(accepted), len(rejected), len(pending))
	if len(items) > 0 {
		printer.Printf("\nRun 'bugbash items %s' to list them.\n", bash.ID)
	}
	return nil
}

func scheduleLabel(b *bugbash.BugBash) string {
	switch view.Schedule(b, time.Now()) {
	case view.BucketPast:
		return "past"
	case view.BucketUpcoming:
		return "upcoming"
	default:
		return "current"
	}
}

// panelLink builds the triage panel deep link for a bash, the same URL
// fragment the hosted panel navigates with.
func panelLink(sess *session, id string) string {
	values := nav.Format(nav.State{Action: bugbash.URLActionView, ID: id})
	return fmt.Sprintf("%s/%s/_apps/hub/bugbash#%s",
		sess.cfg.Tracking.BaseURL, sess.cfg.Scope.Project, values.Encode())
}
