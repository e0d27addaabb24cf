package commands

import (
	"context"

	"github.com/dyluth/bugbash/internal/printer"
	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
	"github.com/spf13/cobra"
)

var (
	editTitle          string
	editDescription    string
	editType           string
	editFields         []string
	editTemplate       string
	editAcceptTemplate string
	editRejectTemplate string
	editStart          string
	editEnd            string
)

var editCmd = &cobra.Command{
	Use:   "edit <bash-id>",
	Short: "Edit an existing bug bash",
	Long: `Edit an existing bug bash. Only the flags you pass are changed.

The update is guarded by optimistic concurrency: if someone else saved
the bash after it was read, the edit is refused and nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "New description")
	editCmd.Flags().StringVar(&editType, "type", "", "New work item type")
	editCmd.Flags().StringArrayVar(&editFields, "fields", nil, "Replace the report form fields (repeatable)")
	editCmd.Flags().StringVar(&editTemplate, "template", "", "New work item template")
	editCmd.Flags().StringVar(&editAcceptTemplate, "accept-template", "", "New accept template")
	editCmd.Flags().StringVar(&editRejectTemplate, "reject-template", "", "New reject template")
	editCmd.Flags().StringVar(&editStart, "start", "", "New schedule start (date, RFC3339, or +duration)")
	editCmd.Flags().StringVar(&editEnd, "end", "", "New schedule end (date, RFC3339, or +duration)")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	editable := bugbash.NewEditable(bash)
	if cmd.Flags().Changed("title") {
		editable.UpdateTitle(editTitle)
	}
	if cmd.Flags().Changed("description") {
		editable.UpdateDescription(editDescription)
	}
	if cmd.Flags().Changed("type") {
		editable.UpdateWorkItemType(editType)
	}
	if cmd.Flags().Changed("fields") {
		editable.UpdateManualFields(editFields)
	}
	if cmd.Flags().Changed("template") {
		editable.UpdateTemplateID(editTemplate)
	}
	if cmd.Flags().Changed("accept-template") {
		editable.UpdateConfigTemplate(bugbash.TemplateKeyAccept, editAcceptTemplate)
	}
	if cmd.Flags().Changed("reject-template") {
		editable.UpdateConfigTemplate(bugbash.TemplateKeyReject, editRejectTemplate)
	}
	if err := applyTimeFlags(editable, editStart, editEnd); err != nil {
		return err
	}

	if !editable.IsDirty() {
		printer.Info("Nothing to change.\n")
		return nil
	}
	if err := editable.Validate(); err != nil {
		return printer.Error("invalid bug bash", err.Error(), nil)
	}

	saved := sess.creator.UpdateBugBash(ctx, editable.Model())
	if saved == nil {
		return printer.ErrorWithContext(
			"failed to update bug bash",
			"The save was refused. The most common cause is a concurrent edit: someone saved this bash after you read it.",
			map[string]string{"Bash": args[0]},
			[]string{"Re-run the edit; it will re-read the latest version."},
		)
	}
	editable.SetSaved(saved)

	printer.Success("Updated bug bash '%s'\n", saved.Title)
	return nil
}

// loadBash ensures the bash is cached and in scope, or reports a
// not-found error.
func loadBash(ctx context.Context, sess *session, id string) (*bugbash.BugBash, error) {
	if !sess.creator.EnsureBugBash(ctx, id) {
		return nil, printer.ErrorWithContext(
			"bug bash not found",
			"No bug bash with that id exists in the configured project and team.",
			map[string]string{"Bash": id, "Project": sess.cfg.Scope.Project, "Team": sess.cfg.Scope.Team},
			[]string{"Run 'bugbash list --all' to see the known bug bashes."},
		)
	}
	return sess.bashes.GetItem(id), nil
}
