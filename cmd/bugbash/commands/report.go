package commands

import (
	"context"
	"strings"

	"github.com/dyluth/bugbash/internal/printer"
	"github.com/spf13/cobra"
)

var reportFields []string

var reportCmd = &cobra.Command{
	Use:   "report <bash-id>",
	Short: "Report a new item in a bug bash",
	Long: `Report a new work item in a bug bash.

The item is created with the bash's work item type, tagged so the bash
can find it, and filled from the bash's template (if one is configured)
with your --field values layered on top.

Example:
  bugbash report 1726000000000 \
    --field System.Title="Login button unresponsive" \
    --field Microsoft.VSTS.Common.Priority=1`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringArrayVarP(&reportFields, "field", "f", nil, "Field value as refname=value (repeatable)")
	reportCmd.MarkFlagRequired("field")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	values := make(map[string]string, len(reportFields))
	for _, pair := range reportFields {
		name, value, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return printer.Error(
				"invalid --field value",
				"Fields are given as refname=value, e.g. System.Title=\"Broken link\".",
				nil,
			)
		}
		values[name] = value
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

	item := sess.creator.CreateWorkItem(ctx, bash, values)
	if item == nil {
		return printer.Error(
			"failed to report item",
			"The work item service rejected the creation. See the log output above for the cause.",
			nil,
		)
	}

	printer.Success("Reported item %d: %s\n", item.ID, item.Title())
	return nil
}
