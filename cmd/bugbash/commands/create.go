package commands

import (
	"context"

	"github.com/dyluth/bugbash/internal/printer"
	"github.com/dyluth/bugbash/internal/timespec"
	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
	"github.com/spf13/cobra"
)

var (
	createTitle          string
	createDescription    string
	createType           string
	createFields         []string
	createTemplate       string
	createAcceptTemplate string
	createRejectTemplate string
	createStart          string
	createEnd            string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new bug bash",
	Long: `Create a new bug bash in the configured project and team.

The bash gets a generated identifier and is immediately available for
reporting items against.

Examples:
  # A bash with no schedule (always current)
  bugbash create --title "Login flow bash" --type Bug --fields System.Title

  # A scheduled bash
  bugbash create --title "Release 2.4 bash" --type Bug \
    --fields System.Title --fields Microsoft.VSTS.Common.Priority \
    --start 2026-09-08 --end 2026-09-12`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createTitle, "title", "t", "", "Bash title (required)")
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "Bash description")
	createCmd.Flags().StringVar(&createType, "type", "", "Work item type reported items use (required)")
	createCmd.Flags().StringArrayVar(&createFields, "fields", nil, "Field reference name shown on the report form (repeatable, required)")
	createCmd.Flags().StringVar(&createTemplate, "template", "", "Work item template applied to new items")
	createCmd.Flags().StringVar(&createAcceptTemplate, "accept-template", "", "Template applied when an item is accepted")
	createCmd.Flags().StringVar(&createRejectTemplate, "reject-template", "", "Template applied when an item is rejected")
	createCmd.Flags().StringVar(&createStart, "start", "", "Schedule start (date, RFC3339, or +duration)")
	createCmd.Flags().StringVar(&createEnd, "end", "", "Schedule end (date, RFC3339, or +duration)")
	createCmd.MarkFlagRequired("title")
	createCmd.MarkFlagRequired("type")
	createCmd.MarkFlagRequired("fields")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	editable := bugbash.NewEditableNew()
	editable.UpdateTitle(createTitle)
	editable.UpdateDescription(createDescription)
	editable.UpdateWorkItemType(createType)
	editable.UpdateManualFields(createFields)
	if createTemplate != "" {
		editable.UpdateTemplateID(createTemplate)
	}
	if createAcceptTemplate != "" {
		editable.UpdateConfigTemplate(bugbash.TemplateKeyAccept, createAcceptTemplate)
	}
	if createRejectTemplate != "" {
		editable.UpdateConfigTemplate(bugbash.TemplateKeyReject, createRejectTemplate)
	}

	if err := applyTimeFlags(editable, createStart, createEnd); err != nil {
		return err
	}

	if err := editable.Validate(); err != nil {
		return printer.Error("invalid bug bash", err.Error(), nil)
	}

	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	saved := sess.creator.CreateBugBash(context.Background(), editable.Model())
	if saved == nil {
		return printer.Error(
			"failed to create bug bash",
			"The document store rejected the write. See the log output above for the cause.",
			nil,
		)
	}
	editable.SetSaved(saved)

	printer.Success("Created bug bash '%s' (id: %s)\n", saved.Title, saved.ID)
	printer.Info("\nReport items with:\n  bugbash report %s --field %s=\"...\"\n", saved.ID, firstOr(saved.ManualFields, bugbash.FieldTitle))
	return nil
}

// applyTimeFlags parses the --start/--end strings onto the editable,
// leaving unset flags as nil (no bound on that side).
func applyTimeFlags(editable *bugbash.Editable, start, end string) error {
	startAt, endAt, err := timespec.ParseRange(start, end)
	if err != nil {
		return printer.Error(
			"invalid schedule",
			err.Error(),
			[]string{"Use a date (2026-09-08), RFC3339 (2026-09-08T09:00:00Z), or a duration from now (+72h)."},
		)
	}
	if startAt != nil {
		editable.UpdateStartTime(startAt)
	}
	if endAt != nil {
		editable.UpdateEndTime(endAt)
	}
	return nil
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}
