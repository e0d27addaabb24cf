package commands

import (
	"context"

	"github.com/dyluth/bugbash/internal/printer"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-read all bug bashes from storage",
	Long: `Re-read the bug bash list from the document store and report how
many records are visible to the configured project and team.`,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx := context.Background()
	sess.creator.InitializeBugBashes(ctx)
	sess.creator.RefreshBugBashes(ctx)

	printer.Success("%d bug bash(es) in scope\n", len(sess.bashes.GetAll()))
	return nil
}
