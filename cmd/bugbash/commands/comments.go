package commands

import (
	"context"
	"fmt"

	"github.com/dyluth/bugbash/internal/printer"
	"github.com/spf13/cobra"
)

var commentsPost string

var commentsCmd = &cobra.Command{
	Use:   "comments <bash-id> <item-id>",
	Short: "Show or add to an item's discussion",
	Long: `Show the discussion on a reported item, newest comment first.

With --post, the text is added as a new comment before listing.

Examples:
  bugbash comments 1726000000000 42
  bugbash comments 1726000000000 42 --post "Reproduced on the staging cluster"`,
	Args: cobra.ExactArgs(2),
	RunE: runComments,
}

func init() {
	commentsCmd.Flags().StringVar(&commentsPost, "post", "", "Add this text as a new comment")
	rootCmd.AddCommand(commentsCmd)
}

func runComments(cmd *cobra.Command, args []string) error {
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

	items, _ := pickItems(sess.creator.BashWorkItems(ctx, bash), ids)
	if len(items) == 0 {
		return printer.Error(
			"item not in this bug bash",
			"Discussion is only shown for items reported in the bash.",
			[]string{fmt.Sprintf("Run 'bugbash items %s' to see the reported items.", bash.ID)},
		)
	}
	item := items[0]

	if commentsPost != "" {
		posted := sess.creator.CommentOnItem(ctx, item, commentsPost)
		if posted == nil {
			return printer.Error(
				"failed to post comment",
				"The tracking service rejected the comment. See the log output above for the cause.",
				nil,
			)
		}
		printer.Success("Commented on item %d\n", item.ID)
	}

	comments := sess.creator.ItemComments(ctx, item)
	if len(comments) == 0 {
		fmt.Println("No comments.")
		return nil
	}

	printer.Printf("Discussion for item %d: %s\n\n", item.ID, item.Title())
	for _, comment := range comments {
		printer.Printf("%s  %s (rev %d)\n", comment.RevisedDate.Local().Format("2006-01-02 15:04"), comment.RevisedBy, comment.Revision)
		printer.Printf("  %s\n\n", comment.Text)
	}
	return nil
}
