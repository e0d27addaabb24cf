package commands

import (
	"context"
	"fmt"

	"github.com/dyluth/bugbash/internal/printer"
	"github.com/spf13/cobra"
)

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "List fields, types and templates from the tracking service",
	Long: `List the work item fields, types and templates the tracking service
offers for the configured project and team. Useful when picking values
for 'bugbash create'.`,
	RunE: runReference,
}

func init() {
	rootCmd.AddCommand(referenceCmd)
}

func runReference(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.creator.InitializeReferenceData(context.Background())
	if len(sess.fields.GetAll()) == 0 && len(sess.fields.GetTypes()) == 0 {
		return printer.Error(
			"no reference data",
			"The tracking service returned nothing. See the log output above for the cause.",
			nil,
		)
	}

	fmt.Println("WORK ITEM TYPES")
	for _, t := range sess.fields.GetTypes() {
		fmt.Printf("  %-20s %s\n", t.Name, t.Description)
	}

	fmt.Println("\nFIELDS")
	for _, f := range sess.fields.GetAll() {
		fmt.Printf("  %-40s %-24s %s\n", f.ReferenceName, f.Name, f.Type)
	}

	if refs := sess.templates.GetAll(); len(refs) > 0 {
		fmt.Println("\nTEMPLATES")
		for _, ref := range refs {
			fmt.Printf("  %-38s %-24s %s\n", ref.ID, ref.Name, ref.WorkItemType)
		}
	}
	return nil
}
