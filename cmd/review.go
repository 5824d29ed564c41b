package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review every item that is due",
	RunE:  runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	q, err := a.Manager.LoadDueItems(ctx, a.Config.User)
	if err != nil {
		return err
	}
	if q.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing is due right now.")
		return nil
	}

	_, err = runSession(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), a.Manager, q, a.Manager.Now)
	return err
}
